package component

// Health stores hit points plus two independent grace windows: a wall-clock
// invulnerability window opened by taking damage, and a frame-based spawn
// grace that suppresses hazard damage outright (see HazardShielded).
type Health struct {
	Current int
	Max     int

	Invulnerability TimedGrace
	SpawnGrace      FrameGrace

	// LastHitAt is the game time in seconds of the last applied hit.
	LastHitAt float64
}

var HealthComponent = NewComponent[Health]()

// NewHealth creates a full health pool with the given grace window lengths.
func NewHealth(max int, invulnMS float64, spawnGraceFrames int) *Health {
	if max <= 0 {
		max = 1
	}
	h := &Health{
		Current:         max,
		Max:             max,
		Invulnerability: TimedGrace{WindowMS: invulnMS},
		SpawnGrace:      FrameGrace{WindowFrames: spawnGraceFrames},
	}
	h.SpawnGrace.Start()
	return h
}

// DamageOutcome reports what one TakeDamage call did.
type DamageOutcome struct {
	Applied bool
	Died    bool
}

// TakeDamage applies damage unless the invulnerability window is open, in
// which case it is a no-op. On an applied hit it opens the window and
// records the hit time. Lethal sources pass amount equal to current health.
func (h *Health) TakeDamage(amount int, now float64) DamageOutcome {
	if h == nil || amount <= 0 || h.Current <= 0 {
		return DamageOutcome{}
	}
	if h.Invulnerability.Active() {
		return DamageOutcome{}
	}
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	h.Invulnerability.Start()
	h.LastHitAt = now
	return DamageOutcome{Applied: true, Died: h.Current == 0}
}

// HazardShielded reports whether hazard damage is currently suppressed by
// the spawn grace. This check is independent of the invulnerability window.
func (h *Health) HazardShielded() bool {
	return h != nil && h.SpawnGrace.Active()
}

// Heal restores health up to Max.
func (h *Health) Heal(amount int) {
	if h == nil || amount <= 0 {
		return
	}
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// RaiseMax grows the health pool and heals by the same amount.
func (h *Health) RaiseMax(amount int) {
	if h == nil || amount <= 0 {
		return
	}
	h.Max += amount
	h.Heal(amount)
}

// Tick advances both grace windows by one frame.
func (h *Health) Tick(dtMS float64) {
	if h == nil {
		return
	}
	h.Invulnerability.Tick(dtMS)
	h.SpawnGrace.Tick(dtMS)
}

// Reset refills health and restarts the spawn grace, closing any open
// invulnerability window. Used on respawn.
func (h *Health) Reset() {
	if h == nil {
		return
	}
	h.Current = h.Max
	h.Invulnerability.RemainingMS = 0
	h.SpawnGrace.Start()
}
