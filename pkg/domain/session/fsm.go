package session

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Lifecycle events.
const (
	EventApply = "apply"
	EventFail  = "fail"
	EventUndo  = "undo"
)

// State constants for statekit integration. Values are kept in sync with the
// Status constants in session.go.
const (
	stateRecorded = "recorded"
	stateApplied  = "applied"
	stateUndone   = "undone"
	stateFailed   = "failed"
)

// init validates at startup that FSM state constants match Status values.
func init() {
	pairs := map[string]Status{
		stateRecorded: StatusRecorded,
		stateApplied:  StatusApplied,
		stateUndone:   StatusUndone,
		stateFailed:   StatusFailed,
	}
	for state, status := range pairs {
		if state != string(status) {
			panic(fmt.Sprintf("FSM state %q does not match Status %q - constants are out of sync", state, status))
		}
	}
}

type lifecycleContext struct{}

// lifecycle wraps the statekit interpreter for session status transitions.
type lifecycle struct {
	interpreter *statekit.Interpreter[lifecycleContext]
}

func newLifecycle(initial string) (*lifecycle, error) {
	builder := statekit.NewMachine[lifecycleContext]("session-lifecycle").
		WithInitial(statekit.StateID(initial)).
		WithContext(lifecycleContext{})

	builder.State(stateRecorded).
		On(EventApply).Target(stateApplied).
		On(EventFail).Target(stateFailed).
		Done()

	builder.State(stateApplied).
		On(EventUndo).Target(stateUndone).
		On(EventFail).Target(stateFailed).
		Done()

	builder.State(stateUndone).Done()
	builder.State(stateFailed).Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build session lifecycle: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()
	return &lifecycle{interpreter: interpreter}, nil
}

// Fire attempts a transition and reports whether it was legal.
func (l *lifecycle) Fire(event string) error {
	before := l.Current()
	l.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	if l.Current() == before {
		return fmt.Errorf("the action %q is not allowed while the session is %q", event, before)
	}
	return nil
}

func (l *lifecycle) Current() string {
	return string(l.interpreter.State().Value)
}
