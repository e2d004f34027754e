package component

// Upgrades is the set of abilities the player currently owns. It is owned by
// the character controller and mutated only through its ApplyUpgrade entry
// point; every other system reads snapshots.
type Upgrades struct {
	DoubleJump     bool
	DoubleJumpTier int // 0-2, scales the double-jump power multiplier
	BasicDash      bool
	DashModuleTier int // 0 = not owned, 1-3
	SpeedBoost     bool

	// JumpBonus is the accumulated additive bonus applied to jump power.
	// Jump power is negative (screen-down y), so bonuses are negative too.
	JumpBonus float64
}

var UpgradesComponent = NewComponent[Upgrades]()

// Player is the immutable movement tuning loaded from the player prefab.
// Speeds are world units per second; friction factors are per-frame
// multipliers normalized to 60 updates per second.
type Player struct {
	BaseSpeed        float64
	SpeedBoostFactor float64
	Accel            float64
	GroundFriction   float64
	GroundDecel      float64
	AirResistance    float64
	Gravity          float64
	MaxFallSpeed     float64
	JumpPower        float64
	DeadZone         float64

	InvulnerabilityMS float64
	SpawnGraceFrames  int
	MaxHealth         int

	Width  float64
	Height float64
}

var PlayerComponent = NewComponent[Player]()
