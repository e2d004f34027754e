package prefabs

import "fmt"

// UpgradeKind is how an upgrade mutates player state.
type UpgradeKind string

const (
	// UpgradeFlag sets a boolean ability; reapplying is a no-op.
	UpgradeFlag UpgradeKind = "flag"
	// UpgradeTier raises a leveled ability by one, capped at Max.
	UpgradeTier UpgradeKind = "tier"
	// UpgradeAdditive accumulates Value into a numeric field on every apply.
	UpgradeAdditive UpgradeKind = "additive"
	// UpgradeHealth raises max health by Value and heals the same amount.
	UpgradeHealth UpgradeKind = "health"
)

// UpgradeField names the player state field an upgrade targets.
type UpgradeField string

const (
	FieldDoubleJump     UpgradeField = "doubleJump"
	FieldDoubleJumpTier UpgradeField = "doubleJumpTier"
	FieldBasicDash      UpgradeField = "basicDash"
	FieldSpeedBoost     UpgradeField = "speedBoost"
	FieldDashModuleTier UpgradeField = "dashModuleTier"
	FieldJumpBonus      UpgradeField = "jumpBonus"
)

// UpgradeDef is one catalog entry.
type UpgradeDef struct {
	Name  string       `yaml:"name"`
	Kind  UpgradeKind  `yaml:"kind"`
	Field UpgradeField `yaml:"field"`
	Value float64      `yaml:"value"`
	Max   int          `yaml:"max"`
}

// UpgradeCatalog maps upgrade ids to their effects. Loaded once from
// upgrades.yaml and handed to the character controller as an immutable
// configuration value.
type UpgradeCatalog map[string]UpgradeDef

// LoadUpgradeCatalog loads and validates upgrades.yaml.
func LoadUpgradeCatalog() (UpgradeCatalog, error) {
	catalog, err := LoadSpec[UpgradeCatalog]("upgrades.yaml")
	if err != nil {
		return nil, err
	}
	for id, def := range catalog {
		switch def.Kind {
		case UpgradeFlag, UpgradeAdditive:
		case UpgradeTier:
			if def.Max <= 0 {
				return nil, fmt.Errorf("prefabs: upgrades.yaml: %s: tier upgrade needs a positive max", id)
			}
		case UpgradeHealth:
			if def.Value <= 0 {
				return nil, fmt.Errorf("prefabs: upgrades.yaml: %s: health upgrade needs a positive value", id)
			}
		default:
			return nil, fmt.Errorf("prefabs: upgrades.yaml: %s: unknown kind %q", id, def.Kind)
		}
	}
	return catalog, nil
}
