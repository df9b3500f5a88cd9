package action

// EventKind identifies registry lifecycle events.
type EventKind string

const (
	EventStarted    EventKind = "started"
	EventRejected   EventKind = "rejected"
	EventFinished   EventKind = "finished"
	EventRefused    EventKind = "refused"
	EventRebucketed EventKind = "rebucketed"
)

// Event records something that happened to a top-level action.
type Event struct {
	Kind     EventKind
	ActionID uint64
	Name     string
	Category Category
	Previous Category
	Result   Result
	Reason   string
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
