package listing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Promoter copies an approved staging submission into its kind's live
// collection. Selecting the strategy by Kind keeps the promote-on-approve
// behavior per kind instead of branching on collection names.
type Promoter interface {
	Promote(ctx context.Context, store Store, staging *Listing, now time.Time) (*Listing, error)
}

// promotedFromField links a live record back to the staging submission it
// was copied from, and guards against promoting the same submission twice.
const promotedFromField = "promotedFrom"

// shopPayloadFields is the allow-list of payload fields copied from a
// staging shop submission into the live record. Review metadata is
// deliberately absent.
var shopPayloadFields = []string{
	"name",
	"location",
	"state",
	"address",
	"contactName",
	"contactEmail",
	"contactPhone",
	"website",
	"instagramUrl",
	"facebookUrl",
	"googleMapLink",
	"price",
	"imageUrl",
	"mediaLinks",
	"comment",
	"discountCode",
}

// shopPromoter promotes approved staging shop submissions into the live
// shops collection. The staging record is left in place; promotion is a
// copy, not a move.
type shopPromoter struct{}

var _ Promoter = shopPromoter{}

func (shopPromoter) Promote(ctx context.Context, store Store, staging *Listing, now time.Time) (*Listing, error) {
	existing, err := store.QueryByField(ctx, KindShop.Collection(), promotedFromField, staging.ID.String())
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrAlreadyPromoted
	}

	payload := make(map[string]any, len(shopPayloadFields)+1)
	for _, field := range shopPayloadFields {
		if v, ok := staging.Payload[field]; ok {
			payload[field] = v
		}
	}
	payload[promotedFromField] = staging.ID.String()

	live := &Listing{
		Kind:        KindShop,
		Status:      StatusApproved,
		CreatedAt:   now,
		SubmittedAt: staging.EffectiveSubmittedAt(),
		UpdatedAt:   now,
		Payload:     payload,
	}

	var id uuid.UUID
	if id, err = store.Insert(ctx, KindShop.Collection(), live); err != nil {
		return nil, err
	}
	live.ID = id
	return live, nil
}
