package component

import "math"

// IntegrateHorizontal advances horizontal velocity for one frame. Nonzero
// input accelerates toward the signed max speed and turns the character; no
// input decays velocity with strong ground friction plus an additive
// deceleration, or weaker multiplicative air resistance when airborne.
// Sub-dead-zone speeds snap to zero to stop jitter.
func (c *Character) IntegrateHorizontal(moveX float64, p *Player, speedBoost bool, dtMS float64) {
	if c == nil || p == nil {
		return
	}
	dt := dtMS / 1000.0

	maxSpeed := p.BaseSpeed
	if speedBoost {
		maxSpeed *= p.SpeedBoostFactor
	}

	if moveX != 0 {
		if moveX > 0 {
			c.Facing = FacingRight
		} else {
			c.Facing = FacingLeft
		}
		c.VX += moveX * p.Accel * dt
		if c.VX > maxSpeed {
			c.VX = maxSpeed
		} else if c.VX < -maxSpeed {
			c.VX = -maxSpeed
		}
		return
	}

	// friction factors are tuned per 60 Hz frame; scale to the actual delta
	frames := dt * 60.0
	if c.Grounded {
		c.VX *= math.Pow(p.GroundFriction, frames)
		decel := p.GroundDecel * dt
		switch {
		case c.VX > decel:
			c.VX -= decel
		case c.VX < -decel:
			c.VX += decel
		default:
			c.VX = 0
		}
	} else {
		c.VX *= math.Pow(p.AirResistance, frames)
	}

	if math.Abs(c.VX) < p.DeadZone {
		c.VX = 0
	}
}

// IntegrateVertical accumulates gravity and clamps at the terminal fall
// speed. Floor contact during vertical collision resolution zeroes vy and
// reports grounded, so standing characters read vy = 0 after the frame.
func (c *Character) IntegrateVertical(p *Player, dtMS float64) {
	if c == nil || p == nil {
		return
	}
	c.VY += p.Gravity * dtMS / 1000.0
	if c.VY > p.MaxFallSpeed {
		c.VY = p.MaxFallSpeed
	}
}
