package store

import "time"

// Turn is a single exchange entry in a session transcript.
type Turn struct {
	Role string `json:"role"` // "user" | "assistant"
	Text string `json:"text"`
}

// Slots holds the structured facts collected from free text.
// A slot is bound at most once per session: the first recognized value
// wins and later messages cannot overwrite it (only Reset clears it).
type Slots struct {
	HairType string `json:"hair_type"`
	Concern  string `json:"concern"`
}

// BindHairType binds the hair type slot if it is still unset.
// Returns true when the value was accepted.
func (s *Slots) BindHairType(v string) bool {
	if s.HairType != "" || v == "" {
		return false
	}
	s.HairType = v
	return true
}

// BindConcern binds the concern slot if it is still unset.
func (s *Slots) BindConcern(v string) bool {
	if s.Concern != "" || v == "" {
		return false
	}
	s.Concern = v
	return true
}

// Complete reports whether both slots are bound.
func (s *Slots) Complete() bool {
	return s.HairType != "" && s.Concern != ""
}

// Session represents the active conversation state kept per session id.
// History is append-only and never pruned.
type Session struct {
	ID        string    `json:"id"`
	Slots     Slots     `json:"slots"`
	History   []Turn    `json:"history"`
	CreatedAt time.Time `json:"created_at"`
}

// Append records one turn on the transcript.
func (s *Session) Append(role, text string) {
	s.History = append(s.History, Turn{Role: role, Text: text})
}

// SessionStore is the injected key-value contract for session state.
// The in-memory implementation is the default; a durable or distributed
// store can substitute behind the same three operations.
type SessionStore interface {
	Get(sessionID string) (*Session, bool)
	Save(session *Session)
	Delete(sessionID string)
}
