package store

import "testing"

func TestSlotsBindFirstMatchWins(t *testing.T) {
	var s Slots

	if !s.BindHairType("curly") {
		t.Fatal("first bind should be accepted")
	}
	if s.BindHairType("wavy") {
		t.Error("second bind should be rejected")
	}
	if s.HairType != "curly" {
		t.Errorf("HairType = %q, want %q", s.HairType, "curly")
	}

	if s.BindConcern("") {
		t.Error("empty value should not bind")
	}
	if !s.BindConcern("frizz") {
		t.Error("concern bind should be accepted")
	}
	if !s.Complete() {
		t.Error("both slots bound, Complete() should be true")
	}
}

func TestSessionAppend(t *testing.T) {
	s := &Session{ID: "abc"}
	s.Append("user", "hello")
	s.Append("assistant", "hi")

	if len(s.History) != 2 {
		t.Fatalf("history length = %d, want 2", len(s.History))
	}
	if s.History[0].Role != "user" || s.History[0].Text != "hello" {
		t.Errorf("unexpected first turn: %+v", s.History[0])
	}
	if s.History[1].Role != "assistant" {
		t.Errorf("unexpected second turn: %+v", s.History[1])
	}
}
