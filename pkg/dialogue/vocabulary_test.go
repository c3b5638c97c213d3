package dialogue

import (
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		vocab Vocabulary
		want  string
	}{
		{
			name:  "simple hair type",
			text:  "I have curly hair",
			vocab: HairTypes,
			want:  "curly",
		},
		{
			name:  "case insensitive",
			text:  "My hair is WAVY",
			vocab: HairTypes,
			want:  "wavy",
		},
		{
			name:  "whole word only, no substring hit",
			text:  "I want more defined curls... define it for me",
			vocab: HairTypes,
			want:  "",
		},
		{
			name:  "fine matches as a word",
			text:  "my hair is fine and flat",
			vocab: HairTypes,
			want:  "fine",
		},
		{
			name:  "vocabulary order beats text order",
			text:  "kind of curly, mostly wavy",
			vocab: HairTypes,
			want:  "wavy",
		},
		{
			name:  "punctuation adjacent",
			text:  "curly!",
			vocab: HairTypes,
			want:  "curly",
		},
		{
			name:  "no match",
			text:  "I use a blue comb",
			vocab: HairTypes,
			want:  "",
		},
		{
			name:  "concern extraction",
			text:  "frizz is killing me",
			vocab: Concerns,
			want:  "frizz",
		},
		{
			name:  "definition does not match inside a longer word",
			text:  "redefinitions aside, I want hold",
			vocab: Concerns,
			want:  "hold",
		},
		{
			name:  "empty text",
			text:  "",
			vocab: Concerns,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Extract(tt.text, tt.vocab); got != tt.want {
				t.Errorf("Extract(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
