package component

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ID identifies a registered component kind.
type ID uint32

var nextID atomic.Uint32

// Handle is the typed key for one component kind. Handles are created once
// at package init via NewComponent and shared by value.
type Handle[T any] struct {
	id ID
}

// NewComponent registers a new component kind.
func NewComponent[T any]() Handle[T] {
	return Handle[T]{id: ID(nextID.Add(1))}
}

func (h Handle[T]) ID() ID {
	return h.id
}

func (h Handle[T]) Valid() bool {
	return h.id != 0
}
