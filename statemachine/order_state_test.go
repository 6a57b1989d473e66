package statemachine

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from    State
		to      State
		trigger Trigger
		ok      bool
	}{
		{StateIdle, StateValidating, TriggerSubmit, true},
		{StateValidating, StateRejected, TriggerReject, true},
		{StateRejected, StateIdle, TriggerReset, true},
		{StateValidating, StateDuplicateFound, TriggerDuplicate, true},
		{StateValidating, StateCommitted, TriggerCommit, true},
		{StateDuplicateFound, StateCommitted, TriggerOverride, true},
		{StateDuplicateFound, StateIdle, TriggerCancel, true},
		{StateCommitted, StateValidating, TriggerSubmit, true},
		{StateIdle, StateCommitted, TriggerOverride, false},
		{StateIdle, StateIdle, TriggerCancel, false},
		{StateCommitted, StateIdle, TriggerCancel, false},
		{StateRejected, StateValidating, TriggerSubmit, false},
		{StateValidating, StateCommitted, TriggerOverride, false},
	}
	for _, tt := range tests {
		err := CanTransition(tt.from, tt.to, tt.trigger)
		if tt.ok {
			assert.NoError(t, err, "%s -> %s on %s", tt.from, tt.to, tt.trigger)
		} else {
			assert.Error(t, err, "%s -> %s on %s", tt.from, tt.to, tt.trigger)
		}
	}
}

func TestCanTransitionErrorListsNextStates(t *testing.T) {
	err := CanTransition(StateDuplicateFound, StateRejected, TriggerReject)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "VALIDATING, COMMITTED, IDLE")
	}
}

func TestSettledStates(t *testing.T) {
	assert.Equal(t, []State{StateIdle, StateDuplicateFound, StateCommitted}, SettledStates())
	for _, s := range AllStates {
		assert.Equal(t, Settled(s), slices.Contains(SettledStates(), s), s)
	}
}

func TestSettled(t *testing.T) {
	assert.True(t, Settled(StateIdle))
	assert.True(t, Settled(StateCommitted))
	assert.True(t, Settled(StateDuplicateFound))
	assert.False(t, Settled(StateValidating))
	assert.False(t, Settled(StateRejected))
}

func TestGetAllTransitionsReturnsCopy(t *testing.T) {
	all := GetAllTransitions()
	all[0].To = StateRejected
	assert.Equal(t, StateValidating, GetAllTransitions()[0].To)
}
