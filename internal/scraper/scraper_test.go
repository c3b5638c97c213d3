package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const productPage = `<!doctype html>
<html>
<head>
  <title>Fallback Title</title>
  <meta property="og:title" content="Featherweight Spray">
  <meta name="description" content="A light mist for effortless texture.">
  <meta property="og:image" content="https://cdn.example.com/spray.jpg">
  <script type="application/ld+json">
  {"@type":"Product","description":"Weightless texture spray for all hair types.","offers":{"price":"32.00"}}
  </script>
</head>
<body>
  <ul>
    <li>Flexible hold with a matte finish</li>
    <li>Free shipping over $50</li>
    <li>Adds volume and texture without residue</li>
    <li>ok</li>
  </ul>
  <h3>How to use</h3>
  <p>Shake well.</p>
  <p>Mist onto damp hair.</p>
  <h3>Ingredients</h3>
  <p>Water, sea salt, rice starch.</p>
</body>
</html>`

func parseTestPage(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return doc.Selection
}

func TestParseProductPage(t *testing.T) {
	record := parseProductPage("https://example.com/products/spray", parseTestPage(t, productPage))

	if record.Title != "Featherweight Spray" {
		t.Errorf("Title = %q, want og:title value", record.Title)
	}
	if record.Description != "Weightless texture spray for all hair types." {
		t.Errorf("Description = %q, want ld+json description", record.Description)
	}
	if record.Price != "32.00" {
		t.Errorf("Price = %q, want %q", record.Price, "32.00")
	}
	if record.Image != "https://cdn.example.com/spray.jpg" {
		t.Errorf("Image = %q", record.Image)
	}
	if record.Id != record.URL || record.URL != "https://example.com/products/spray" {
		t.Errorf("Id/URL mismatch: %q / %q", record.Id, record.URL)
	}

	if len(record.Bullets) != 2 {
		t.Fatalf("Bullets = %v, want exactly the two keyword bullets", record.Bullets)
	}
	if record.Bullets[0] != "Flexible hold with a matte finish" {
		t.Errorf("unexpected first bullet: %q", record.Bullets[0])
	}

	if record.HowToUse != "Shake well. Mist onto damp hair." {
		t.Errorf("HowToUse = %q", record.HowToUse)
	}
	if record.Ingredients != "Water, sea salt, rice starch." {
		t.Errorf("Ingredients = %q", record.Ingredients)
	}
}

func TestParseProductPageMinimal(t *testing.T) {
	minimal := `<html><head><title> Bare Product </title></head><body><p>nothing here</p></body></html>`
	record := parseProductPage("https://example.com/products/bare", parseTestPage(t, minimal))

	if record.Title != "Bare Product" {
		t.Errorf("Title = %q", record.Title)
	}
	if record.Price != "" || record.Image != "" {
		t.Errorf("expected empty price/image, got %q / %q", record.Price, record.Image)
	}
	if len(record.Bullets) != 0 {
		t.Errorf("expected no bullets, got %v", record.Bullets)
	}
}

func TestGuessTags(t *testing.T) {
	tests := []struct {
		name  string
		title string
		desc  string
		want  []string
	}{
		{"curl in description", "Cream", "defines your curls", []string{"curly"}},
		{"spray title", "Sea Salt Spray", "", []string{"spray"}},
		{"pomade via cement", "Hair Cement", "", []string{"pomade"}},
		{"multiple", "Curl Clay", "", []string{"curly", "clay"}},
		{"none", "Shampoo", "daily cleanser", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := guessTags(tt.title, tt.desc)
			if len(got) != len(tt.want) {
				t.Fatalf("guessTags(%q, %q) = %v, want %v", tt.title, tt.desc, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("tag %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
