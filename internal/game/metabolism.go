package game

const (
	dailyHungerCost = 10
	// Every hungerRampDays days survived adds one point to the daily hunger cost.
	hungerRampDays = 10
)

type HungerLevel string

const (
	HungerFull     HungerLevel = "full"
	HungerNormal   HungerLevel = "normal"
	HungerHungry   HungerLevel = "hungry"
	HungerStarving HungerLevel = "starving"
)

// HungerDecay returns the hunger left after a day passes. The daily cost
// grows with the day number.
func HungerDecay(hunger, day int) int {
	return max(0, hunger-(dailyHungerCost+day/hungerRampDays))
}

// ClassifyHunger buckets a hunger value for display.
func ClassifyHunger(hunger int) HungerLevel {
	switch {
	case hunger >= 70:
		return HungerFull
	case hunger >= 30:
		return HungerNormal
	case hunger >= 10:
		return HungerHungry
	default:
		return HungerStarving
	}
}

// SeasonalPenalty is the comfort lost to the weather of a season.
func SeasonalPenalty(season Season) int {
	switch season {
	case SeasonSummer:
		return 5
	case SeasonAutumn:
		return 10
	case SeasonWinter:
		return 20
	default:
		return 0
	}
}

// Comfort combines a baseline with clothing warmth, the shelter bonus and the
// seasonal penalty. Only clothing-typed items count; the result is clamped to
// [0, 100]. Temperature does not contribute beyond its season.
func Comfort(base int, clothing []InventoryItem, shelterLevel int, temperature int, season Season) int {
	comfort := base
	for _, item := range clothing {
		if item.Type != ItemClothing {
			continue
		}
		comfort += item.Props().Warmth * item.Quantity
	}
	comfort += ShelterWarmthBonus(shelterLevel)
	comfort -= SeasonalPenalty(season)
	return clampStat(comfort)
}
