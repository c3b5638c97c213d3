package dialogue

import (
	"strings"

	"product-guide-be/pkg/store"
)

// State is the derived conversational state. It is never stored: it is
// a pure function of which slots are bound.
type State int

const (
	StateAwaitingHairType State = iota
	StateAwaitingConcern
	StateReadyToRecommend
)

func (s State) String() string {
	switch s {
	case StateAwaitingHairType:
		return "AWAITING_HAIR_TYPE"
	case StateAwaitingConcern:
		return "AWAITING_CONCERN"
	default:
		return "READY_TO_RECOMMEND"
	}
}

// DeriveState maps slot presence to the controller state. Hair type is
// always asked before concern.
func DeriveState(slots store.Slots) State {
	if slots.HairType == "" {
		return StateAwaitingHairType
	}
	if slots.Concern == "" {
		return StateAwaitingConcern
	}
	return StateReadyToRecommend
}

// resetPhrases short-circuit a turn before any slot extraction.
var resetPhrases = map[string]struct{}{
	"reset":      {},
	"restart":    {},
	"start over": {},
}

// IsReset reports whether the message is a reserved control phrase,
// compared case-insensitively after trimming surrounding whitespace.
func IsReset(message string) bool {
	normalized := strings.ToLower(strings.TrimSpace(message))
	_, ok := resetPhrases[normalized]
	return ok
}
