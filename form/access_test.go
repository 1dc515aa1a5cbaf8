package form

import "testing"

func TestAccessPredicates(t *testing.T) {
	s := testSchema()
	owner := Actor{ID: "owner-1", Authenticated: true}
	other := Actor{ID: "owner-2", Authenticated: true}

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"read anonymous", CanRead(s, Anonymous), true},
		{"read other", CanRead(s, other), true},
		{"list anonymous", CanList(Anonymous), false},
		{"list authenticated", CanList(other), true},
		{"mutate owner", CanMutate(s, owner), true},
		{"mutate other", CanMutate(s, other), false},
		{"mutate anonymous", CanMutate(s, Anonymous), false},
		{"submit active", CanSubmit(s), true},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	s.IsActive = false
	if CanSubmit(s) {
		t.Error("submit inactive = true, want false")
	}
	// Deactivation never touches the owner's rights.
	if !CanMutate(s, owner) {
		t.Error("mutate owner on inactive form = false, want true")
	}
}

func TestMutateRequiresAuthenticatedOwner(t *testing.T) {
	s := testSchema()
	// Matching id without authentication must not pass; this is what an
	// unverifiable token claim would look like.
	spoofed := Actor{ID: s.OwnerID, Authenticated: false}
	if CanMutate(s, spoofed) {
		t.Error("unauthenticated actor with matching id may mutate")
	}
}
