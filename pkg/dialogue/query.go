package dialogue

import (
	"fmt"
	"strings"

	"product-guide-be/pkg/store"
)

// acknowledgements are filler messages that carry no preference signal
// and must not leak into the retrieval query.
var acknowledgements = map[string]struct{}{
	"ok": {}, "okay": {}, "k": {}, "yes": {}, "yep": {}, "no": {}, "sure": {},
	"thanks": {}, "thank": {}, "you": {}, "please": {}, "hi": {}, "hey": {},
	"hello": {}, "i": {}, "have": {}, "my": {}, "is": {}, "a": {}, "an": {},
	"the": {}, "hair": {}, "and": {}, "main": {}, "issue": {}, "concern": {},
}

// ExtraPreferences returns the free text of the current message with
// slot terms and trivial acknowledgements removed, preserving word
// order. The result is the "extra preferences" suffix of the query.
func ExtraPreferences(message string, slots store.Slots) string {
	var kept []string
	for _, raw := range strings.Fields(strings.ToLower(message)) {
		word := strings.Trim(raw, ".,!?;:'\"()")
		if word == "" {
			continue
		}
		if _, ack := acknowledgements[word]; ack {
			continue
		}
		if word == slots.HairType || word == slots.Concern {
			continue
		}
		kept = append(kept, word)
	}
	return strings.Join(kept, " ")
}

// BuildQuery deterministically encodes both bound slots, plus any
// remaining free text from the current message, into the retrieval
// query string. Callers must only invoke it once both slots are bound.
func BuildQuery(slots store.Slots, message string) string {
	query := fmt.Sprintf("product for %s hair with %s concern", slots.HairType, slots.Concern)
	if extra := ExtraPreferences(message, slots); extra != "" {
		query += " " + extra
	}
	return query
}
