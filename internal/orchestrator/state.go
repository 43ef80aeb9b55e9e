// state.go implements the turn state machine.
//
// Transitions are validated so an illegal sequence (for example
// executing a tool that was never approved) fails loudly instead of
// silently proceeding.

package orchestrator

import "fmt"

// State represents the orchestrator's position within a turn.
type State string

const (
	StateIdle          State = "idle"
	StateStreaming     State = "streaming"
	StateToolRequested State = "tool_requested"
	StateApproving     State = "approving"
	StateExecuting     State = "executing"
)

var validTransitions = map[State][]State{
	StateIdle:          {StateStreaming},
	StateStreaming:     {StateToolRequested, StateIdle},
	StateToolRequested: {StateApproving},
	StateApproving:     {StateExecuting, StateToolRequested, StateStreaming},
	StateExecuting:     {StateToolRequested, StateStreaming},
}

// stateMachine tracks the current state. The conversation flow is a
// single cooperative thread, so no locking is needed.
type stateMachine struct {
	current State
}

func newStateMachine() *stateMachine {
	return &stateMachine{current: StateIdle}
}

// transition moves to a new state, failing on an invalid sequence.
func (sm *stateMachine) transition(to State) error {
	for _, allowed := range validTransitions[sm.current] {
		if allowed == to {
			sm.current = to
			return nil
		}
	}
	return fmt.Errorf("invalid state transition: %s -> %s", sm.current, to)
}

// reset returns to Idle unconditionally. Used when a turn aborts.
func (sm *stateMachine) reset() {
	sm.current = StateIdle
}
