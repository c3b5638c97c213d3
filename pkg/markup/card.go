// Package markup renders retrieved product records into safe inline
// HTML. All record fields are treated as untrusted content: tags are
// stripped first, then the remaining text is entity-escaped.
package markup

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Card is the read-only snapshot of the single product chosen for the
// reply.
type Card struct {
	Title       string
	URL         string
	HowToUse    string
	Bullets     []string
	Ingredients string
}

var stripPolicy = bluemonday.StrictPolicy()

// Clean strips any markup from untrusted text and escapes what is left
// for embedding into the reply HTML. Callers composing prose around a
// rendered card run retrieved or model-produced text through this too.
func Clean(text string) string {
	stripped := stripPolicy.Sanitize(text)
	// bluemonday entity-encodes on the way out; unescape before the
	// final EscapeString so entities are not double-encoded.
	return html.EscapeString(strings.TrimSpace(html.UnescapeString(stripped)))
}

// safeHref accepts only absolute http(s) URLs. Anything else (javascript:,
// data:, malformed) collapses to "#" so the link stays inert.
func safeHref(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "#"
	}
	return html.EscapeString(u.String())
}

// detailLine picks at most one supporting detail, by priority: usage
// instructions, else the first bullet, else the ingredient summary.
func detailLine(card Card) string {
	if strings.TrimSpace(card.HowToUse) != "" {
		return Clean(card.HowToUse)
	}
	for _, b := range card.Bullets {
		if strings.TrimSpace(b) != "" {
			return Clean(b)
		}
	}
	if strings.TrimSpace(card.Ingredients) != "" {
		return Clean(card.Ingredients)
	}
	return ""
}

// Render produces the clickable product reference: the title linked to
// the product URL in a new navigation context, followed by at most one
// detail line.
func Render(card Card) string {
	link := fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer">%s</a>`,
		safeHref(card.URL), Clean(card.Title))
	if detail := detailLine(card); detail != "" {
		return link + "<br>" + detail
	}
	return link
}
