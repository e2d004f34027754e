package ecs

// Event is a one-shot notification pushed by systems during a frame. Each
// event fires exactly once per causing transition; consumers drain the queue
// after World.Update.
type Event struct {
	Type string
	Data any
}

// Event type names.
const (
	EventJump       = "jump"
	EventDoubleJump = "double_jump"
	EventDash       = "dash"
	EventDamage     = "damage"
	EventDeath      = "death"
	EventCollect    = "collect"
)

// JumpEvent is emitted when a ground, coyote, or buffered jump executes.
type JumpEvent struct {
	Entity Entity
}

// DoubleJumpEvent is emitted when an air jump executes.
type DoubleJumpEvent struct {
	Entity Entity
	Tier   int
}

// DashEvent is emitted when a dash activates.
type DashEvent struct {
	Entity Entity
	// Tier is 0 for the basic dash, 1-3 for dash module tiers.
	Tier  int
	Speed float64
}

// DamageEvent is emitted when damage lands (never while invulnerable).
type DamageEvent struct {
	Entity Entity
	Amount int
	Source string
}

// DeathEvent is emitted when health reaches zero.
type DeathEvent struct {
	Entity Entity
	Reason string
}

// CollectEvent is emitted once per collected item.
type CollectEvent struct {
	Entity Entity
	Kind   string
	X, Y   float64
	Points int
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

// Drain returns all queued events and clears the queue.
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
