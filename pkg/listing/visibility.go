package listing

// VisibleTo reports whether a single listing is released to the audience.
// Admins see everything. The public sees approved records plus legacy
// records with no status at all; pending and rejected are withheld. The
// predicate depends only on Status, never on the payload shape.
func VisibleTo(l *Listing, audience Audience) bool {
	if audience == AudienceAdmin {
		return true
	}
	return l.Status == StatusApproved || l.Status == ""
}

// FilterForAudience returns the subset of listings visible to the audience,
// preserving input order. Pure function; the input slice is not modified.
func FilterForAudience(listings []*Listing, audience Audience) []*Listing {
	if audience == AudienceAdmin {
		return listings
	}
	out := make([]*Listing, 0, len(listings))
	for _, l := range listings {
		if VisibleTo(l, audience) {
			out = append(out, l)
		}
	}
	return out
}
