package game

import "fmt"

// advanceDay moves the game to the next day: climate, hunger decay, comfort,
// starvation and exposure damage, at most one warning, and the supply drop.
func (e *Engine) advanceDay(s Snapshot) Snapshot {
	next := s.Clone()
	p := &next.Player
	b := e.balance

	day := p.GameDay + 1
	climate := ClimateForDay(day, e.rng)
	hunger := HungerDecay(p.Hunger, day)
	comfort := Comfort(b.ComfortBase, equippedClothing(p.Equipment), p.ShelterLevel, climate.Temperature, climate.Season)

	health := p.Health
	if hunger <= 0 {
		health -= b.StarvationDamage
	}
	if comfort <= 0 {
		health -= b.ExposureDamage
	}

	p.GameDay = day
	p.Season = climate.Season
	p.Temperature = climate.Temperature
	p.Hunger = hunger
	p.Comfort = comfort
	p.Health = health
	clampPlayer(p)

	dead := p.Health <= 0
	next.IsGameOver = s.IsGameOver || dead
	next.Timestamp = e.clock.Now()
	next.Statistics.TotalDaysSurvived++

	switch {
	case dead:
		e.log(&next, SeverityDanger, "Your health has run out. You did not survive.")
	case p.Hunger <= b.WarningThreshold:
		e.log(&next, SeverityWarning, fmt.Sprintf("You are starving (hunger %d).", p.Hunger))
	case p.Comfort <= b.WarningThreshold:
		e.log(&next, SeverityWarning, fmt.Sprintf("You are freezing and miserable (comfort %d).", p.Comfort))
	}

	if b.SupplyIntervalDays > 0 && day%b.SupplyIntervalDays == 0 && b.SupplyQuantity > 0 {
		supply := SupplyItem(b.SupplyQuantity)
		p.Inventory = AddItem(p.Inventory, supply)
		e.log(&next, SeveritySuccess, fmt.Sprintf("Found a supply cache: %s x%d.", supply.Name, supply.Quantity))
	}

	return next
}
