package memory

import (
	"testing"

	"product-guide-be/pkg/store"
)

func TestSessionRepositoryRoundTrip(t *testing.T) {
	repo := NewSessionRepository()

	if _, found := repo.Get("missing"); found {
		t.Error("unknown id should not be found")
	}

	session := &store.Session{ID: "s1"}
	session.Slots.BindHairType("curly")
	repo.Save(session)

	got, found := repo.Get("s1")
	if !found {
		t.Fatal("saved session should be found")
	}
	if got.Slots.HairType != "curly" {
		t.Errorf("HairType = %q, want %q", got.Slots.HairType, "curly")
	}

	// The store keeps the same pointer; mutations survive a re-save.
	got.Slots.BindConcern("frizz")
	repo.Save(got)
	again, _ := repo.Get("s1")
	if !again.Slots.Complete() {
		t.Error("session should carry both slots after update")
	}

	repo.Delete("s1")
	if _, found := repo.Get("s1"); found {
		t.Error("deleted session should not be found")
	}
}
