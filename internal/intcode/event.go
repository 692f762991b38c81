package intcode

import "fmt"

// EventKind is the kind of externally observable event that ends a run
// invocation.
type EventKind uint8

// Event kinds.
const (
	EventOutput     EventKind = iota + 1 // an output instruction produced a value
	EventCompleted                       // the program halted
	EventNeedsInput                      // an input instruction found no pending input
)

func (k EventKind) String() string {
	switch k {
	case EventOutput:
		return "output"
	case EventCompleted:
		return "completed"
	case EventNeedsInput:
		return "needs input"
	default:
		return "unknown"
	}
}

// Event is the result of a run invocation. Value is only set for outputs.
type Event struct {
	Kind  EventKind
	Value int64
}

func (e Event) String() string {
	if e.Kind == EventOutput {
		return fmt.Sprintf("output(%d)", e.Value)
	}
	return e.Kind.String()
}
