package listing

import "testing"

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"shop", KindShop, true},
		{"instructor", KindInstructor, true},
		{"media", KindMedia, true},
		{"event", KindEvent, true},

		// Collection-style plural segments resolve to their kind.
		{"shops", KindShop, true},
		{"instructors", KindInstructor, true},
		{"schools", KindSchool, true},
		{"djs", KindDJ, true},
		{"events", KindEvent, true},
		{"festivals", KindFestival, true},
		{"competitions", KindCompetition, true},

		{"  Events ", KindEvent, true},
		{"SHOPS", KindShop, true},

		{"venue", "", false},
		{"venues", "", false},
		{"medias", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseKind(tt.in)
			if ok != tt.ok {
				t.Fatalf("ParseKind(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestKindCollection(t *testing.T) {
	// Collection names must round-trip through ParseKind for every kind.
	for _, kind := range Kinds() {
		got, ok := ParseKind(kind.Collection())
		if !ok || got != kind {
			t.Errorf("ParseKind(%q) = %q, %v, want %q", kind.Collection(), got, ok, kind)
		}
	}

	if KindMedia.Collection() != "media" {
		t.Errorf("media collection = %q, want %q", KindMedia.Collection(), "media")
	}
	if KindShop.Collection() != "shops" {
		t.Errorf("shop collection = %q, want %q", KindShop.Collection(), "shops")
	}
}
