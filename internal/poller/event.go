package poller

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventKind classifies the outcome of a pass.
type EventKind int

const (
	EventSuccess EventKind = iota
	EventEmpty
	EventError
	EventPersistError
)

func (k EventKind) String() string {
	switch k {
	case EventSuccess:
		return "success"
	case EventEmpty:
		return "empty"
	case EventError:
		return "error"
	case EventPersistError:
		return "persist_error"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event reports one finished pass.
type Event struct {
	ID       uuid.UUID
	Pass     int
	At       time.Time
	Kind     EventKind
	Markets  int
	Duration time.Duration
	Err      error
}

func (e Event) String() string {
	switch e.Kind {
	case EventSuccess:
		return fmt.Sprintf("pass %d: %d markets saved", e.Pass, e.Markets)
	case EventEmpty:
		return fmt.Sprintf("pass %d: no betting options found yet", e.Pass)
	default:
		return fmt.Sprintf("pass %d: %s: %v", e.Pass, e.Kind, e.Err)
	}
}

// EventHandler receives pass events.
type EventHandler interface {
	HandleEvent(Event)
}

// EventHandlerFunc is a function adapter for EventHandler.
type EventHandlerFunc func(Event)

func (f EventHandlerFunc) HandleEvent(e Event) {
	f(e)
}
