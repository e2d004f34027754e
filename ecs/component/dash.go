package component

// DashKind tags which dash ability resolved for an activation. The two kinds
// are mutually exclusive per activation; when both are owned the module wins.
type DashKind int

const (
	DashNone DashKind = iota
	DashBasic
	DashModule
)

// DashParams are the fixed parameters of one dash ability variant.
type DashParams struct {
	Speed      float64
	DurationMS float64
	CooldownMS float64
}

// BasicDashParams is the boolean-gated basic dash.
var BasicDashParams = DashParams{Speed: 300, DurationMS: 150, CooldownMS: 2000}

var dashModuleTiers = [...]DashParams{
	{Speed: 400, DurationMS: 200, CooldownMS: 1500},
	{Speed: 500, DurationMS: 250, CooldownMS: 1200},
	{Speed: 600, DurationMS: 300, CooldownMS: 900},
}

// DashTierParams returns the parameters for a dash module tier (1-3).
func DashTierParams(tier int) (DashParams, bool) {
	if tier < 1 || tier > len(dashModuleTiers) {
		return DashParams{}, false
	}
	return dashModuleTiers[tier-1], true
}

// Dash holds the dash state machine: idle/dashing plus a concurrently
// tracked cooldown. Direction locks to facing at activation and ignores
// mid-dash facing changes.
type Dash struct {
	Dashing             bool
	Direction           Facing
	Speed               float64
	RemainingDurationMS float64
	RemainingCooldownMS float64

	ActiveKind DashKind
	ActiveTier int
}

var DashComponent = NewComponent[Dash]()

// TryActivate resolves an edge-triggered dash press against the owned
// abilities. Module activation takes precedence over the basic dash on the
// same press. Returns the resolved kind, DashNone when nothing activated
// (no ability, mid-dash, cooling down) - all silent no-ops by design of the
// ability-misuse taxonomy.
func (d *Dash) TryActivate(basicOwned bool, moduleTier int, facing Facing) DashKind {
	if d == nil || d.Dashing || d.RemainingCooldownMS > 0 {
		return DashNone
	}

	kind := DashNone
	tier := 0
	var params DashParams
	if p, ok := DashTierParams(moduleTier); ok {
		kind = DashModule
		tier = moduleTier
		params = p
	} else if basicOwned {
		kind = DashBasic
		params = BasicDashParams
	}
	if kind == DashNone {
		return DashNone
	}

	d.Dashing = true
	d.Direction = facing
	d.Speed = params.Speed
	d.RemainingDurationMS = params.DurationMS
	d.RemainingCooldownMS = params.CooldownMS
	d.ActiveKind = kind
	d.ActiveTier = tier
	return kind
}

// Tick advances dash timers. The cooldown decrements unconditionally; the
// duration only while dashing. Returns true while the dash is forcing
// horizontal velocity this frame.
func (d *Dash) Tick(dtMS float64) bool {
	if d == nil {
		return false
	}
	if d.RemainingCooldownMS > 0 {
		d.RemainingCooldownMS -= dtMS
		if d.RemainingCooldownMS < 0 {
			d.RemainingCooldownMS = 0
		}
	}
	if !d.Dashing {
		return false
	}
	d.RemainingDurationMS -= dtMS
	if d.RemainingDurationMS <= 0 {
		d.RemainingDurationMS = 0
		d.Dashing = false
		d.ActiveKind = DashNone
		return false
	}
	return true
}

// VX returns the forced horizontal velocity while dashing.
func (d *Dash) VX() float64 {
	if d == nil || !d.Dashing {
		return 0
	}
	return float64(d.Direction) * d.Speed
}
