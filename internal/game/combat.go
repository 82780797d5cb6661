package game

import "fmt"

type Phase int

const (
	PhasePlayerTurn Phase = iota
	PhaseVictory
	PhaseDefeat
	PhaseFled
)

func (p Phase) String() string {
	switch p {
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	case PhaseFled:
		return "fled"
	default:
		return "unknown"
	}
}

// Resolved reports whether the encounter is over.
func (p Phase) Resolved() bool {
	return p != PhasePlayerTurn
}

// Encounter is one fight. It is a value: every move returns the next
// encounter and a report of what the caller must apply.
type Encounter struct {
	ID      string
	Enemy   Enemy
	EnemyHP int
	Turn    int
	Status  StatusEffect
	Phase   Phase
}

// TurnReport describes the effects of one combat move. Actions are to be
// applied to the snapshot in order; Drops are item ids to resolve and add.
type TurnReport struct {
	Lines       []string
	Actions     []Action
	Cues        []Cue
	DamageDealt int
	DamageTaken int
	Drops       []LootDrop
	HiddenPath  bool
	Rejected    bool
}

func (r *TurnReport) say(format string, args ...any) {
	r.Lines = append(r.Lines, fmt.Sprintf(format, args...))
}

// NewEncounter starts a fight against enemy at full health.
func NewEncounter(id string, enemy Enemy) Encounter {
	return Encounter{
		ID:      id,
		Enemy:   enemy,
		EnemyHP: enemy.MaxHP,
		Turn:    1,
		Status:  enemy.Status,
		Phase:   PhasePlayerTurn,
	}
}

// Attached reports whether an attached hazard is still active.
func (enc Encounter) Attached() bool {
	return enc.Status == StatusAttached && !enc.Phase.Resolved()
}

// PlayerDamage rolls the player's attack.
func PlayerDamage(rng Rand, b Balance, eq Equipment) int {
	dmg := rng.IntN(b.PlayerDamageSpread) + b.PlayerBaseDamage
	if eq.Weapon != nil {
		dmg += eq.Weapon.Props().AttackPower
	}
	return dmg
}

// EnemyDamage rolls an enemy strike after armor, never below the balance minimum.
func EnemyDamage(rng Rand, b Balance, enemy Enemy, eq Equipment) int {
	raw := rng.IntN(b.EnemyDamageSpread) + enemy.Attack - b.EnemyDamageOffset
	if eq.Armor != nil {
		raw -= eq.Armor.Props().DefensePower
	}
	return max(b.MinEnemyDamage, raw)
}

// Attack resolves the player's strike and, if the enemy survives, its reply.
func (enc Encounter) Attack(p PlayerState, rng Rand, b Balance) (Encounter, TurnReport) {
	var report TurnReport
	if enc.Phase.Resolved() {
		report.Rejected = true
		report.say("The fight is already over.")
		return enc, report
	}

	dmg := PlayerDamage(rng, b, p.Equipment)
	enc.EnemyHP = max(0, enc.EnemyHP-dmg)
	report.DamageDealt = dmg
	report.Cues = append(report.Cues, CuePlayerAttack)
	report.say("You hit the %s for %d damage.", enc.Enemy.Name, dmg)

	if enc.EnemyHP <= 0 {
		return enc.win(rng, b, report)
	}
	if enc.Status == StatusAttached {
		enc.Turn++
		report.say("The %s stays latched on.", enc.Enemy.Name)
		return enc, report
	}
	return enc.enemyTurn(p, rng, b, report)
}

// Flee tries to escape. It is refused outright while an attached hazard clings
// to the player; a failed attempt gives the enemy its turn.
func (enc Encounter) Flee(p PlayerState, rng Rand, b Balance) (Encounter, TurnReport) {
	var report TurnReport
	if enc.Phase.Resolved() {
		report.Rejected = true
		report.say("The fight is already over.")
		return enc, report
	}
	if enc.Attached() {
		report.Rejected = true
		report.say("The %s is stuck to you. You cannot run!", enc.Enemy.Name)
		return enc, report
	}
	if Chance(rng, b.FleeChance) {
		enc.Phase = PhaseFled
		report.Cues = append(report.Cues, CueFled)
		report.say("You got away from the %s.", enc.Enemy.Name)
		return enc, report
	}
	report.say("You failed to escape!")
	return enc.enemyTurn(p, rng, b, report)
}

// HazardTick applies one round of damage over time from an attached enemy.
func (enc Encounter) HazardTick(p PlayerState, b Balance) (Encounter, TurnReport) {
	var report TurnReport
	if !enc.Attached() {
		report.Rejected = true
		return enc, report
	}
	dmg := b.HazardDamage
	report.DamageTaken = dmg
	report.Actions = append(report.Actions, UpdateStats{Stat: StatHealth, Delta: -dmg})
	report.Cues = append(report.Cues, CueEnemyAttack)
	report.say("The %s's spines dig in. You lose %d health.", enc.Enemy.Name, dmg)
	if p.Health-dmg <= 0 {
		enc.Phase = PhaseDefeat
		report.Cues = append(report.Cues, CueDefeat)
		report.say("You collapse from your wounds.")
	}
	return enc, report
}

func (enc Encounter) enemyTurn(p PlayerState, rng Rand, b Balance, report TurnReport) (Encounter, TurnReport) {
	dmg := EnemyDamage(rng, b, enc.Enemy, p.Equipment)
	report.DamageTaken = dmg
	report.Actions = append(report.Actions, UpdateStats{Stat: StatHealth, Delta: -dmg})
	report.Cues = append(report.Cues, CueEnemyAttack)
	report.say("The %s strikes you for %d damage.", enc.Enemy.Name, dmg)
	enc.Turn++
	if p.Health-dmg <= 0 {
		enc.Phase = PhaseDefeat
		report.Cues = append(report.Cues, CueDefeat)
		report.say("You were defeated by the %s.", enc.Enemy.Name)
	}
	return enc, report
}

func (enc Encounter) win(rng Rand, b Balance, report TurnReport) (Encounter, TurnReport) {
	enc.Phase = PhaseVictory
	report.Cues = append(report.Cues, CueVictory)
	report.say("You defeated the %s!", enc.Enemy.Name)

	report.Drops = RollLoot(rng, enc.Enemy.Loot)
	if enc.Enemy.Apex && Chance(rng, b.ApexBonusChance) {
		report.HiddenPath = true
		report.Cues = append(report.Cues, CueDiscovery)
		report.say("Behind the %s you spot a hidden tunnel leading deeper.", enc.Enemy.Name)
	}
	report.Actions = append(report.Actions, RecordVictory{EnemyID: enc.Enemy.ID, Rare: report.HiddenPath})
	return enc, report
}
