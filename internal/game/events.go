package game

import "time"

func now() time.Time { return time.Now() }

// EventType identifies a session event with type safety.
type EventType string

const (
	EventTypeRoundAppended EventType = "round_appended"
	EventTypeRoundEdited   EventType = "round_edited"
	EventTypeGameComplete  EventType = "game_complete"
)

// String returns the string form of the event type.
func (et EventType) String() string {
	return string(et)
}

// Event is anything the session publishes after a mutation.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundAppendedEvent fires after a new round is pushed onto the history.
// Edits never produce it, so observers that must only react to genuinely
// new rounds (streak counters, commentary) subscribe to this one.
type RoundAppendedEvent struct {
	Index     int
	Round     Round
	timestamp time.Time
}

func (e RoundAppendedEvent) EventType() EventType { return EventTypeRoundAppended }
func (e RoundAppendedEvent) Timestamp() time.Time { return e.timestamp }

// RoundEditedEvent fires after a historical round is overwritten in place.
type RoundEditedEvent struct {
	Index     int
	Round     Round
	timestamp time.Time
}

func (e RoundEditedEvent) EventType() EventType { return EventTypeRoundEdited }
func (e RoundEditedEvent) Timestamp() time.Time { return e.timestamp }

// GameCompleteEvent fires once every player has dealt every enabled
// contract.
type GameCompleteEvent struct {
	Standings []Standing
	timestamp time.Time
}

func (e GameCompleteEvent) EventType() EventType { return EventTypeGameComplete }
func (e GameCompleteEvent) Timestamp() time.Time { return e.timestamp }

// Observer receives session events.
type Observer interface {
	HandleEvent(Event)
}

// EventBus fans session events out to observers. Everything is synchronous
// and single-threaded: Publish runs each observer to completion before
// returning, matching the session's run-to-completion model.
type EventBus struct {
	observers []Observer
}

// NewEventBus creates an empty event bus.
func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe registers an observer for all subsequent events.
func (b *EventBus) Subscribe(o Observer) {
	b.observers = append(b.observers, o)
}

// Publish delivers the event to every observer in subscription order.
func (b *EventBus) Publish(e Event) {
	for _, o := range b.observers {
		o.HandleEvent(e)
	}
}
