package dialogue

import (
	"testing"

	"product-guide-be/pkg/store"
)

func TestDeriveState(t *testing.T) {
	tests := []struct {
		name  string
		slots store.Slots
		want  State
	}{
		{
			name:  "nothing bound",
			slots: store.Slots{},
			want:  StateAwaitingHairType,
		},
		{
			name:  "hair type only",
			slots: store.Slots{HairType: "curly"},
			want:  StateAwaitingConcern,
		},
		{
			name:  "concern only still asks hair type first",
			slots: store.Slots{Concern: "frizz"},
			want:  StateAwaitingHairType,
		},
		{
			name:  "both bound",
			slots: store.Slots{HairType: "curly", Concern: "frizz"},
			want:  StateReadyToRecommend,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveState(tt.slots); got != tt.want {
				t.Errorf("DeriveState(%+v) = %v, want %v", tt.slots, got, tt.want)
			}
		})
	}
}

func TestIsReset(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"reset", true},
		{"restart", true},
		{"start over", true},
		{"RESET", true},
		{"  Start Over  ", true},
		{"please reset", false},
		{"restarting", false},
		{"", false},
		{"hello", false},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			if got := IsReset(tt.message); got != tt.want {
				t.Errorf("IsReset(%q) = %v, want %v", tt.message, got, tt.want)
			}
		})
	}
}
