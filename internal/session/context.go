// Package session owns the per-participant conversational state and the
// stores that persist it between turns. The engine mutates a Context in
// place; the store guarantees one writer per participant at a time.
package session

import (
	"encoding/json"
	"fmt"
)

// State is the dialogue position within a session. The zero value is
// StateNone.
type State int

const (
	// StateNone: no pending question; every resolution path is open.
	StateNone State = iota
	// StateWaitingForCar: the previous turn asked which vehicle is meant.
	StateWaitingForCar
	// StateWaitingForIntent: a vehicle is selected; waiting to hear what
	// about it.
	StateWaitingForIntent
)

var stateNames = map[State]string{
	StateNone:             "NONE",
	StateWaitingForCar:    "WAITING_FOR_CAR",
	StateWaitingForIntent: "WAITING_FOR_INTENT",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Valid reports whether s is one of the three defined states.
func (s State) Valid() bool {
	_, ok := stateNames[s]
	return ok
}

// MarshalJSON encodes the state by name so persisted sessions stay readable
// across releases.
func (s State) MarshalJSON() ([]byte, error) {
	name, ok := stateNames[s]
	if !ok {
		return nil, fmt.Errorf("session: cannot marshal invalid state %d", int(s))
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes a state name; unknown names are an error so a
// corrupted record surfaces instead of silently misbehaving.
func (s *State) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for st, n := range stateNames {
		if n == name {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("session: unknown state %q", name)
}

// Stats counts how turns were resolved within one session.
type Stats struct {
	Intent    int `json:"intent"`
	Retrieved int `json:"retrieved"`
	Failure   int `json:"failure"`
}

// Sentinel LastIntent values that are not catalog intents.
const (
	IntentHelp     = "help"
	IntentOfftopic = "offtopic"
)

// Context is the conversational memory for one participant. Created on the
// first turn, mutated exactly once per turn by the engine.
type Context struct {
	State          State    `json:"state"`
	CurrentVehicle string   `json:"current_vehicle,omitempty"`
	LastReply      string   `json:"last_reply,omitempty"`
	LastIntent     string   `json:"last_intent,omitempty"`
	History        []string `json:"history,omitempty"`
	Stats          Stats    `json:"stats"`
}

// NewContext returns a fresh session in StateNone.
func NewContext() *Context {
	return &Context{}
}

// PushHistory appends the raw utterance and trims to the limit, dropping the
// oldest entries first.
func (c *Context) PushHistory(utterance string, limit int) {
	c.History = append(c.History, utterance)
	if limit > 0 && len(c.History) > limit {
		c.History = c.History[len(c.History)-limit:]
	}
}
