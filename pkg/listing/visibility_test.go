package listing

import "testing"

// TestVisibleTo tests the audience visibility predicate
func TestVisibleTo(t *testing.T) {
	tests := []struct {
		name     string
		status   Status
		audience Audience
		want     bool
	}{
		{name: "public sees approved", status: StatusApproved, audience: AudiencePublic, want: true},
		{name: "public sees legacy no-status", status: "", audience: AudiencePublic, want: true},
		{name: "public blocked from pending", status: StatusPending, audience: AudiencePublic, want: false},
		{name: "public blocked from rejected", status: StatusRejected, audience: AudiencePublic, want: false},
		{name: "admin sees approved", status: StatusApproved, audience: AudienceAdmin, want: true},
		{name: "admin sees pending", status: StatusPending, audience: AudienceAdmin, want: true},
		{name: "admin sees rejected", status: StatusRejected, audience: AudienceAdmin, want: true},
		{name: "admin sees legacy", status: "", audience: AudienceAdmin, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &Listing{Kind: KindSchool, Status: tt.status}
			if got := VisibleTo(l, tt.audience); got != tt.want {
				t.Errorf("VisibleTo(status=%q, %s) = %v, want %v", tt.status, tt.audience, got, tt.want)
			}
		})
	}
}

func TestFilterForAudience(t *testing.T) {
	legacy := &Listing{Kind: KindShop}
	approved := &Listing{Kind: KindShop, Status: StatusApproved}
	pending := &Listing{Kind: KindShop, Status: StatusPending}
	rejected := &Listing{Kind: KindShop, Status: StatusRejected}

	in := []*Listing{legacy, pending, approved, rejected}

	got := FilterForAudience(in, AudiencePublic)
	if len(got) != 2 {
		t.Fatalf("public filter kept %d records, want 2", len(got))
	}
	// Order-preserving: legacy came before approved in the input.
	if got[0] != legacy || got[1] != approved {
		t.Error("public filter did not preserve input order")
	}

	if admin := FilterForAudience(in, AudienceAdmin); len(admin) != len(in) {
		t.Errorf("admin filter kept %d records, want %d", len(admin), len(in))
	}
}
