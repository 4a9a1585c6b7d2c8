package ecs

import "sync"

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventStateChanged = "state_changed"
	EventDamage       = "damage"
	EventShot         = "shot"
	EventPickup       = "pickup"
	EventDeath        = "death"
)

// StateChange is published when an NPC state machine changes state.
type StateChange struct {
	Entity Entity
	Actor  string
	From   string
	To     string
	At     float64
}

// Damage is published whenever the player loses health.
type Damage struct {
	Source string
	Amount int
	At     float64
}

// Shot is published for every shot the player fires.
type Shot struct {
	Weapon string
	Hit    bool
	Victim Entity
	At     float64
}

// PickupCollected is published when a pickup applies its boost.
type PickupCollected struct {
	Entity Entity
	Kind   string
	Value  int
	At     float64
}

// Death is published when the player, an enemy or the boss dies.
type Death struct {
	Entity Entity
	Actor  string
	At     float64
}

// EventQueue is a FIFO queue. Systems that fan work out across goroutines
// push into it concurrently, so it carries its own lock.
type EventQueue struct {
	mu    sync.Mutex
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.mu.Lock()
	q.items = append(q.items, evt)
	q.mu.Unlock()
}

// Len reports how many events are queued.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil {
		return nil
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	return out
}
