package statemachine

import (
	"errors"
	"strings"
)

// State is a step of a single in-flight order attempt
type State string

const (
	StateIdle           State = "IDLE"
	StateValidating     State = "VALIDATING"
	StateRejected       State = "REJECTED"
	StateDuplicateFound State = "DUPLICATE_FOUND"
	StateCommitted      State = "COMMITTED"
)

// Trigger names the event that moves an attempt between states
type Trigger string

const (
	TriggerSubmit    Trigger = "submit"
	TriggerReject    Trigger = "reject"
	TriggerDuplicate Trigger = "duplicate"
	TriggerCommit    Trigger = "commit"
	TriggerOverride  Trigger = "override"
	TriggerCancel    Trigger = "cancel"
	TriggerReset     Trigger = "reset"
)

// Transition defines a valid state change and what causes it
type Transition struct {
	From    State   `json:"from"`
	To      State   `json:"to"`
	Trigger Trigger `json:"trigger"`
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Customer presses "place order"
	{From: StateIdle, To: StateValidating, Trigger: TriggerSubmit},
	{From: StateCommitted, To: StateValidating, Trigger: TriggerSubmit},
	{From: StateDuplicateFound, To: StateValidating, Trigger: TriggerSubmit},
	// Empty cart or missing contact fields
	{From: StateValidating, To: StateRejected, Trigger: TriggerReject},
	{From: StateRejected, To: StateIdle, Trigger: TriggerReset},
	// A record already exists under this phone
	{From: StateValidating, To: StateDuplicateFound, Trigger: TriggerDuplicate},
	{From: StateValidating, To: StateCommitted, Trigger: TriggerCommit},
	// Customer decides on the duplicate warning
	{From: StateDuplicateFound, To: StateCommitted, Trigger: TriggerOverride},
	{From: StateDuplicateFound, To: StateIdle, Trigger: TriggerCancel},
	// The store refused the write
	{From: StateValidating, To: StateIdle, Trigger: TriggerReset},
}

type transitionKey struct {
	From    State
	To      State
	Trigger Trigger
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Trigger}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(state State) []State {
	var nexts []State
	seen := map[State]bool{}
	for _, t := range validTransitions {
		if t.From == state && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if trigger may move an attempt from one state to another
func CanTransition(from, to State, trigger Trigger) error {
	if transitionMap[transitionKey{From: from, To: to, Trigger: trigger}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " → " + string(to) +
			" is not allowed on '" + string(trigger) + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(state State) string {
	nexts := ValidTransitionsFrom(state)
	if len(nexts) == 0 {
		return "none"
	}
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	out := make([]Transition, len(validTransitions))
	copy(out, validTransitions)
	return out
}

// AllStates lists every state in lifecycle order
var AllStates = []State{StateIdle, StateValidating, StateRejected, StateDuplicateFound, StateCommitted}

// Settled reports whether a new submission may start from state
func Settled(state State) bool {
	return CanTransition(state, StateValidating, TriggerSubmit) == nil
}

// SettledStates returns the states a submission may start from
func SettledStates() []State {
	var out []State
	for _, s := range AllStates {
		if Settled(s) {
			out = append(out, s)
		}
	}
	return out
}
