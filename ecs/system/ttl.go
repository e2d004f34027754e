package system

import (
	"github.com/milk9111/coderunner/ecs"
	"github.com/milk9111/coderunner/ecs/component"
)

// TTLSystem retires short-lived entities, such as the pickup flash left
// behind by a collected item. Frames count update ticks, not wall time.
type TTLSystem struct {
	expired []ecs.Entity
}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	s.expired = s.expired[:0]
	ecs.ForEach(w, component.TTLComponent, func(e ecs.Entity, ttl *component.TTL) {
		if ttl == nil {
			return
		}
		ttl.Frames--
		if ttl.Frames <= 0 {
			s.expired = append(s.expired, e)
		}
	})
	for _, e := range s.expired {
		ecs.DestroyEntity(w, e)
	}
}
