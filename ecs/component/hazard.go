package component

// HazardKind identifies what dealt the damage. Spike, saw, laser, and
// crusher are level volumes; fall and out-of-bounds are synthesized by the
// physics bounds checks and are always lethal.
type HazardKind string

const (
	HazardSpike       HazardKind = "spike"
	HazardSaw         HazardKind = "saw"
	HazardLaser       HazardKind = "laser"
	HazardCrusher     HazardKind = "crusher"
	HazardFall        HazardKind = "fall"
	HazardOutOfBounds HazardKind = "outOfBounds"
)

const hazardContactDamage = 2

// Damage returns how much one hit of this kind drains given the victim's
// current health. Lethal kinds drain the full pool in one call.
func (k HazardKind) Damage(currentHealth int) int {
	switch k {
	case HazardFall, HazardOutOfBounds:
		return currentHealth
	default:
		return hazardContactDamage
	}
}

// Lethal reports whether the kind always kills outright.
func (k HazardKind) Lethal() bool {
	return k == HazardFall || k == HazardOutOfBounds
}

// Hazard marks an entity as a damaging volume. BaseX/BaseY anchor the
// volume; a phase script may toggle Active and move the volume around the
// anchor each frame (saw patrols, laser duty cycles, crusher travel).
type Hazard struct {
	Kind   HazardKind
	Width  float64
	Height float64
	BaseX  float64
	BaseY  float64

	// Script names a tengo phase script under prefabs/scripts, without
	// extension. Empty means the hazard is always active and static.
	Script string

	Active  bool
	OffsetX float64
	OffsetY float64

	// PhysID links this entity to its volume in the physics world.
	PhysID int
}

var HazardComponent = NewComponent[Hazard]()
