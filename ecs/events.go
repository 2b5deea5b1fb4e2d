package ecs

// EventType identifies what happened during a step.
type EventType string

const (
	EventChunkGenerated  EventType = "chunk_generated"
	EventEffectStarted   EventType = "effect_started"
	EventEffectRefreshed EventType = "effect_refreshed"
	EventEffectEnded     EventType = "effect_ended"
	EventLanded          EventType = "landed"
	EventPickupCollected EventType = "pickup_collected"
	EventPlayerLost      EventType = "player_lost"
)

// Event is a step-scoped notification for presentation code (audio cues,
// HUD flashes). Data holds an event-specific payload.
type Event struct {
	Type EventType
	Data any
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

// Len reports the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
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

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
