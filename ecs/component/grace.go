package component

// GraceWindow is a countdown during which some class of damage is ignored.
// The two implementations differ only in their clock: wall-clock
// milliseconds for the post-hit invulnerability window, update ticks for the
// spawn grace. Both countdowns are deliberately independent of each other.
type GraceWindow interface {
	// Active reports whether the window is still open.
	Active() bool
	// Tick advances the window clock by one frame of dtMS milliseconds.
	Tick(dtMS float64)
	// Start (re)opens the window at its configured length.
	Start()
}

// TimedGrace counts down wall-clock milliseconds.
type TimedGrace struct {
	WindowMS    float64
	RemainingMS float64
}

func (g *TimedGrace) Active() bool {
	return g != nil && g.RemainingMS > 0
}

func (g *TimedGrace) Tick(dtMS float64) {
	if g == nil || g.RemainingMS <= 0 {
		return
	}
	g.RemainingMS -= dtMS
	if g.RemainingMS < 0 {
		g.RemainingMS = 0
	}
}

func (g *TimedGrace) Start() {
	if g == nil {
		return
	}
	g.RemainingMS = g.WindowMS
}

// FrameGrace counts down update ticks, independent of frame pacing. It
// guards the window between spawn and the first few resolved frames, before
// any time-based window has meaningfully elapsed.
type FrameGrace struct {
	WindowFrames    int
	RemainingFrames int
}

func (g *FrameGrace) Active() bool {
	return g != nil && g.RemainingFrames > 0
}

func (g *FrameGrace) Tick(float64) {
	if g == nil {
		return
	}
	if g.RemainingFrames > 0 {
		g.RemainingFrames--
	}
}

func (g *FrameGrace) Start() {
	if g == nil {
		return
	}
	g.RemainingFrames = g.WindowFrames
}
