package component

// Jump timing windows, all wall-clock milliseconds.
const (
	// JumpBufferMS is how long an early press stays queued.
	JumpBufferMS = 150.0
	// CoyoteTimeMS is how long after leaving ground a press still counts as
	// a ground jump.
	CoyoteTimeMS = 100.0
	// DoubleJumpMinAirMS guards against a same-frame landing/input race: a
	// double jump is only offered once the character has been airborne this
	// long.
	DoubleJumpMinAirMS = 50.0
)

// JumpKind is the outcome of one frame of jump resolution.
type JumpKind int

const (
	JumpNone JumpKind = iota
	JumpGround
	JumpCoyote
	JumpDouble
)

// Jump holds the jump state machine: edge-triggered input, the buffered
// press countdown, double-jump availability scoped to the current air
// session, and time since the last landing.
type Jump struct {
	PrevPressed         bool
	JustPressed         bool
	DoubleJumpAvailable bool
	AirTimeMS           float64
	BufferMS            float64

	wasGrounded bool
}

var JumpComponent = NewComponent[Jump]()

// NewJump returns jump state for a freshly spawned, grounded character.
func NewJump() *Jump {
	return &Jump{DoubleJumpAvailable: true, wasGrounded: true}
}

// Resolve runs one frame of the jump state machine and returns which jump,
// if any, executed. It must run after motion integration and collision
// resolution so grounded reflects the current frame; running it earlier
// reintroduces the double-jump grant/deny race this ordering exists to kill.
//
// suppressed skips press processing for the frame (a dash-module activation
// claims the shared input); timers still advance.
func (j *Jump) Resolve(pressed, grounded, doubleJumpOwned, suppressed bool, dtMS float64) JumpKind {
	if j == nil {
		return JumpNone
	}

	if grounded && !j.wasGrounded {
		// landing ends the air session
		j.DoubleJumpAvailable = true
	}
	j.wasGrounded = grounded

	j.JustPressed = pressed && !j.PrevPressed
	j.PrevPressed = pressed
	if j.JustPressed && !suppressed {
		j.BufferMS = JumpBufferMS
	}

	j.BufferMS -= dtMS
	if j.BufferMS < 0 {
		j.BufferMS = 0
	}

	executed := JumpNone
	if j.BufferMS > 0 && !suppressed {
		switch {
		case grounded:
			executed = JumpGround
			j.BufferMS = 0
		case doubleJumpOwned && j.DoubleJumpAvailable && j.AirTimeMS >= DoubleJumpMinAirMS:
			executed = JumpDouble
			j.DoubleJumpAvailable = false
			j.BufferMS = 0
		case j.AirTimeMS < CoyoteTimeMS:
			executed = JumpCoyote
			j.BufferMS = 0
		}
		// otherwise the press stays buffered until the window runs out
	}

	if grounded {
		j.AirTimeMS = 0
	} else {
		j.AirTimeMS += dtMS
	}

	return executed
}

// DoubleJumpMultiplier converts an owned double-jump tier into the vy
// multiplier applied to jump power.
func DoubleJumpMultiplier(tier int) float64 {
	switch {
	case tier >= 2:
		return 1.1
	case tier == 1:
		return 1.0
	default:
		return 0.85
	}
}
