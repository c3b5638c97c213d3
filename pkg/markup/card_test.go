package markup

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		card     Card
		contains []string
		excludes []string
	}{
		{
			name: "plain card with how to use",
			card: Card{
				Title:    "Salt Spray",
				URL:      "https://example.com/products/salt-spray",
				HowToUse: "Spray onto damp hair.",
			},
			contains: []string{
				`<a href="https://example.com/products/salt-spray" target="_blank" rel="noopener noreferrer">Salt Spray</a>`,
				"<br>Spray onto damp hair.",
			},
		},
		{
			name: "bullet used when no usage section",
			card: Card{
				Title:   "Clay",
				URL:     "https://example.com/products/clay",
				Bullets: []string{"Strong hold, matte finish"},
			},
			contains: []string{"<br>Strong hold, matte finish"},
		},
		{
			name: "ingredients as last resort",
			card: Card{
				Title:       "Oil",
				URL:         "https://example.com/products/oil",
				Ingredients: "Argan oil, jojoba",
			},
			contains: []string{"<br>Argan oil, jojoba"},
		},
		{
			name: "no detail renders bare link",
			card: Card{
				Title: "Shampoo",
				URL:   "https://example.com/products/shampoo",
			},
			excludes: []string{"<br>"},
		},
		{
			name: "script in title is stripped",
			card: Card{
				Title: `Pomade<script>alert("x")</script>`,
				URL:   "https://example.com/products/pomade",
			},
			contains: []string{">Pomade</a>"},
			excludes: []string{"<script>", "alert"},
		},
		{
			name: "angle brackets and ampersands escaped",
			card: Card{
				Title:    "Wax & Co <Original>",
				URL:      "https://example.com/products/wax",
				HowToUse: "Use < a pea & rub in",
			},
			contains: []string{"Wax &amp; Co", "&lt; a pea &amp; rub in"},
			excludes: []string{"<Original>"},
		},
		{
			name: "javascript url collapses to hash",
			card: Card{
				Title: "Trap",
				URL:   "javascript:alert(1)",
			},
			contains: []string{`<a href="#"`},
			excludes: []string{"javascript:"},
		},
		{
			name: "relative url collapses to hash",
			card: Card{
				Title: "Relative",
				URL:   "/products/relative",
			},
			contains: []string{`<a href="#"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.card)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Render() = %q, missing %q", got, want)
				}
			}
			for _, avoid := range tt.excludes {
				if strings.Contains(got, avoid) {
					t.Errorf("Render() = %q, must not contain %q", got, avoid)
				}
			}
		})
	}
}

func TestDetailLinePriority(t *testing.T) {
	card := Card{
		Title:       "Cream",
		URL:         "https://example.com/products/cream",
		HowToUse:    "Work through towel-dried hair.",
		Bullets:     []string{"Medium hold"},
		Ingredients: "Water, shea butter",
	}
	got := Render(card)
	if !strings.Contains(got, "Work through towel-dried hair.") {
		t.Errorf("how-to-use should win over bullets: %q", got)
	}
	if strings.Contains(got, "Medium hold") || strings.Contains(got, "shea butter") {
		t.Errorf("only one detail line expected: %q", got)
	}
}
