package models

import (
	"encoding"
	"fmt"
)

// CardState is the learning stage of a card. Only these four values are
// persisted; "graduated" is a derived label, never a stored state.
type CardState int

const (
	StateNew        CardState = iota + 1 // never reviewed
	StateLearning                        // in initial learning steps
	StateReview                          // in the long-term review cycle
	StateRelearning                      // lapsed from review, relearning
)

var (
	stateNames  = [...]string{StateNew: "new", StateLearning: "learning", StateReview: "review", StateRelearning: "relearning"}
	stateByName = map[string]CardState{
		"new":        StateNew,
		"learning":   StateLearning,
		"review":     StateReview,
		"relearning": StateRelearning,
	}
)

var (
	_ fmt.Stringer             = CardState(0)
	_ encoding.TextMarshaler   = CardState(0)
	_ encoding.TextUnmarshaler = (*CardState)(nil)
)

// IsValid reports whether s is one of the four persisted states.
func (s CardState) IsValid() bool {
	return s >= StateNew && s <= StateRelearning
}

func (s CardState) String() string {
	if s.IsValid() {
		return stateNames[s]
	}
	return fmt.Sprintf("CardState(%d)", int(s))
}

// ParseCardState converts a stored state name into a CardState.
func ParseCardState(s string) (CardState, error) {
	v, ok := stateByName[s]
	if !ok {
		return 0, fmt.Errorf("invalid card state: %q", s)
	}
	return v, nil
}

// MarshalText implements encoding.TextMarshaler.
func (s CardState) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("invalid card state: %d", int(s))
	}
	return []byte(stateNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *CardState) UnmarshalText(text []byte) error {
	v, err := ParseCardState(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
