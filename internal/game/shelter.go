package game

// ShelterTier describes one shelter level.
type ShelterTier struct {
	Level        int
	WarmthBonus  int
	MaxOccupancy int
}

var shelterTiers = [...]ShelterTier{
	{Level: 0, WarmthBonus: 0, MaxOccupancy: 1},
	{Level: 1, WarmthBonus: 10, MaxOccupancy: 2},
	{Level: 2, WarmthBonus: 25, MaxOccupancy: 3},
	{Level: 3, WarmthBonus: 40, MaxOccupancy: 4},
}

// MaxShelterLevel is the highest level with a tier entry.
const MaxShelterLevel = len(shelterTiers) - 1

// ShelterWarmthBonus returns the comfort bonus for a shelter level; levels
// outside the tier table contribute nothing.
func ShelterWarmthBonus(level int) int {
	if level < 0 || level >= len(shelterTiers) {
		return 0
	}
	return shelterTiers[level].WarmthBonus
}

// ShelterStateForLevel builds a ShelterState whose bonus and occupancy agree
// with level.
func ShelterStateForLevel(level int) ShelterState {
	occupancy := shelterTiers[len(shelterTiers)-1].MaxOccupancy
	if level >= 0 && level < len(shelterTiers) {
		occupancy = shelterTiers[level].MaxOccupancy
	}
	if level < 0 {
		occupancy = shelterTiers[0].MaxOccupancy
	}
	return ShelterState{
		Level:        level,
		WarmthBonus:  ShelterWarmthBonus(level),
		MaxOccupancy: occupancy,
	}
}

// MaterialRequirement is a quantity of one item consumed by a build or recipe.
type MaterialRequirement struct {
	ItemID   string `json:"item_id" yaml:"item"`
	Quantity int    `json:"quantity" yaml:"quantity"`
}

// HasMaterials reports whether the ledger covers every requirement.
func HasMaterials(p PlayerState, reqs []MaterialRequirement) bool {
	for _, req := range reqs {
		if p.Quantity(req.ItemID) < req.Quantity {
			return false
		}
	}
	return true
}

// MissingMaterials lists the requirements the ledger cannot cover, with the
// shortfall as quantity.
func MissingMaterials(p PlayerState, reqs []MaterialRequirement) []MaterialRequirement {
	var missing []MaterialRequirement
	for _, req := range reqs {
		if have := p.Quantity(req.ItemID); have < req.Quantity {
			missing = append(missing, MaterialRequirement{ItemID: req.ItemID, Quantity: req.Quantity - have})
		}
	}
	return missing
}

// CanUpgradeShelter reports whether the player can pay for the next shelter
// level. reqs are the requirements of the current level's upgrade.
func CanUpgradeShelter(p PlayerState, reqs []MaterialRequirement) bool {
	if p.ShelterLevel >= MaxShelterLevel {
		return false
	}
	return HasMaterials(p, reqs)
}
