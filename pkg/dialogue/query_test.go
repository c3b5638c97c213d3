package dialogue

import (
	"testing"

	"product-guide-be/pkg/store"
)

func TestBuildQuery(t *testing.T) {
	slots := store.Slots{HairType: "curly", Concern: "frizz"}

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{
			name:    "no extra preferences",
			message: "frizz",
			want:    "product for curly hair with frizz concern",
		},
		{
			name:    "extra preference words survive",
			message: "frizz, something lightweight please",
			want:    "product for curly hair with frizz concern something lightweight",
		},
		{
			name:    "acknowledgement only",
			message: "ok thanks",
			want:    "product for curly hair with frizz concern",
		},
		{
			name:    "slot terms stripped from extras",
			message: "curly frizz matte finish",
			want:    "product for curly hair with frizz concern matte finish",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildQuery(slots, tt.message); got != tt.want {
				t.Errorf("BuildQuery(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}

func TestExtraPreferencesPreservesOrder(t *testing.T) {
	slots := store.Slots{HairType: "fine", Concern: "volume"}
	got := ExtraPreferences("I want volume, light texture spray, nothing greasy", slots)
	want := "want light texture spray nothing greasy"
	if got != want {
		t.Errorf("ExtraPreferences() = %q, want %q", got, want)
	}
}
