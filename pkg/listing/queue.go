package listing

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"
)

// queueSource describes one collection the pending queue is built from. The
// staging collection holds submissions that already carry their kind; live
// collections allow in-place pending records and get tagged with their own
// kind.
type queueSource struct {
	collection string
	kind       Kind
}

func pendingSources() []queueSource {
	return []queueSource{
		{collection: StagingCollection},
		{collection: KindShop.Collection(), kind: KindShop},
		{collection: KindInstructor.Collection(), kind: KindInstructor},
	}
}

// PendingQueue fans out over every source collection, keeps the pending
// records, normalizes them into PendingItems and returns one queue sorted
// newest-first. Records with no usable timestamp sort as epoch zero rather
// than being dropped. If any single fetch fails the whole build fails; no
// partial queue is ever returned.
func (s *service) PendingQueue(ctx context.Context) ([]PendingItem, error) {
	sources := pendingSources()
	results := make([][]PendingItem, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			records, err := s.store.List(ctx, src.collection)
			if err != nil {
				return &QueueError{Source: src.collection, Err: err}
			}
			results[i] = collectPending(records, src.kind, src.collection == StagingCollection)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var queue []PendingItem
	for _, items := range results {
		queue = append(queue, items...)
	}

	sort.SliceStable(queue, func(i, j int) bool {
		return queue[i].SubmittedAt.After(queue[j].SubmittedAt)
	})
	return queue, nil
}

// collectPending keeps the pending records from one collection and tags
// them. An empty kind means the records name their own kind (staging).
func collectPending(records []*Listing, kind Kind, staging bool) []PendingItem {
	var items []PendingItem
	for _, l := range records {
		if l.Status != StatusPending {
			continue
		}
		itemKind := kind
		if itemKind == "" {
			itemKind = l.Kind
		}
		items = append(items, PendingItem{
			ID:          l.ID,
			Type:        itemKind,
			Staging:     staging,
			SubmittedAt: l.EffectiveSubmittedAt(),
			Listing:     l,
		})
	}
	return items
}
