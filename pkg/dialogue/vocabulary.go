package dialogue

import (
	"regexp"
	"strings"
	"sync"
)

// Vocabulary is a fixed, ordered list of recognized terms for one slot.
// List order defines match priority: when a message contains several
// terms, the one earliest in the list wins, not the one earliest in the
// text.
type Vocabulary []string

// HairTypes and Concerns are the two closed vocabularies the guide can
// collect. The order is deliberate and load-bearing for extraction.
var (
	HairTypes = Vocabulary{"straight", "wavy", "curly", "coily", "fine", "thick", "thin", "oily", "dry"}
	Concerns  = Vocabulary{"frizz", "volume", "shine", "hold", "definition", "hydration", "damage", "dandruff", "texture"}
)

var (
	patternMu    sync.Mutex
	wordPatterns = map[string]*regexp.Regexp{}
)

func wordPattern(term string) *regexp.Regexp {
	patternMu.Lock()
	defer patternMu.Unlock()
	if re, ok := wordPatterns[term]; ok {
		return re
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
	wordPatterns[term] = re
	return re
}

// Extract scans text for the first vocabulary term present as a whole
// word, case-insensitive. Substring hits do not count: "fine" does not
// match inside "define". Returns the empty string when nothing matches.
func Extract(text string, vocab Vocabulary) string {
	lowered := strings.ToLower(text)
	for _, term := range vocab {
		if wordPattern(term).MatchString(lowered) {
			return term
		}
	}
	return ""
}
