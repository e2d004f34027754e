package system

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/milk9111/coderunner/ecs"
	"github.com/milk9111/coderunner/ecs/component"
)

// CollectibleHoverSystem bobs collectibles around their anchor with a
// ping-pong tween per entity. Tweens are created lazily and pruned when
// their entity dies.
type CollectibleHoverSystem struct {
	tweens map[ecs.Entity]*hoverState
}

type hoverState struct {
	tw   *gween.Tween
	amp  float32
	dur  float32
	down bool
}

func NewCollectibleHoverSystem() *CollectibleHoverSystem {
	return &CollectibleHoverSystem{tweens: map[ecs.Entity]*hoverState{}}
}

func (s *CollectibleHoverSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := float32(w.DeltaMS() / 1000.0)

	ecs.ForEach2(w, component.HoverComponent, component.TransformComponent, func(e ecs.Entity, h *component.Hover, t *component.Transform) {
		st, ok := s.tweens[e]
		if !ok {
			if h.Amplitude == 0 {
				h.Amplitude = 4
			}
			if h.Period == 0 {
				h.Period = 0.75
			}
			if h.BaseY == 0 {
				h.BaseY = t.Y
			}
			st = &hoverState{
				amp: float32(h.Amplitude),
				dur: float32(h.Period),
			}
			st.tw = gween.New(-st.amp, st.amp, st.dur, ease.InOutSine)
			st.tw.Update(float32(h.Phase))
			s.tweens[e] = st
		}

		off, done := st.tw.Update(dt)
		if done {
			st.down = !st.down
			from, to := -st.amp, st.amp
			if st.down {
				from, to = st.amp, -st.amp
			}
			st.tw = gween.New(from, to, st.dur, ease.InOutSine)
		}
		t.Y = h.BaseY + float64(off)
	})

	for e := range s.tweens {
		if !ecs.IsAlive(w, e) {
			delete(s.tweens, e)
		}
	}
}
