package game

// Balance holds the tunable gameplay constants. The zero value is not
// useful; start from DefaultBalance.
type Balance struct {
	// ComfortBase is the comfort a day transition recomputes from.
	ComfortBase      int `yaml:"comfort_base"`
	StarvationDamage int `yaml:"starvation_damage"`
	ExposureDamage   int `yaml:"exposure_damage"`
	WarningThreshold int `yaml:"warning_threshold"`

	SupplyIntervalDays int `yaml:"supply_interval_days"`
	SupplyQuantity     int `yaml:"supply_quantity"`

	RestEnergy int `yaml:"rest_energy"`
	RestHealth int `yaml:"rest_health"`

	PlayerBaseDamage   int     `yaml:"player_base_damage"`
	PlayerDamageSpread int     `yaml:"player_damage_spread"`
	EnemyDamageSpread  int     `yaml:"enemy_damage_spread"`
	EnemyDamageOffset  int     `yaml:"enemy_damage_offset"`
	MinEnemyDamage     int     `yaml:"min_enemy_damage"`
	FleeChance         float64 `yaml:"flee_chance"`
	ApexBonusChance    float64 `yaml:"apex_bonus_chance"`
	HazardDamage       int     `yaml:"hazard_damage"`
}

func DefaultBalance() Balance {
	return Balance{
		ComfortBase:      100,
		StarvationDamage: 10,
		ExposureDamage:   5,
		WarningThreshold: 20,

		SupplyIntervalDays: 3,
		SupplyQuantity:     2,

		RestEnergy: 50,
		RestHealth: 5,

		PlayerBaseDamage:   5,
		PlayerDamageSpread: 10,
		EnemyDamageSpread:  5,
		EnemyDamageOffset:  2,
		MinEnemyDamage:     1,
		FleeChance:         0.4,
		ApexBonusChance:    0.5,
		HazardDamage:       3,
	}
}

// SupplyItem is the ration stack delivered on supply days.
func SupplyItem(qty int) InventoryItem {
	return InventoryItem{
		ID:          "canned_food",
		Name:        "Canned Food",
		Type:        ItemFood,
		Quantity:    qty,
		Description: "A dented tin of preserved food.",
		Properties:  &ItemProperties{HungerRestore: 30},
	}
}
