package game

// Cue names a one-way presentation signal, typically a sound.
type Cue string

const (
	CueCombatStart  Cue = "combat_start"
	CuePlayerAttack Cue = "player_attack"
	CueEnemyAttack  Cue = "enemy_attack"
	CueVictory      Cue = "victory"
	CueDefeat       Cue = "defeat"
	CueFled         Cue = "fled"
	CueItemUsed     Cue = "item_used"
	CueDiscovery    Cue = "discovery"
	CueNarration    Cue = "narration"
)

type Notification struct {
	Cue      Cue
	Text     string
	ItemType ItemType
}

// Notifier receives cues and narration. Implementations must not block for
// long and can never affect game outcomes.
type Notifier interface {
	Notify(Notification)
}

type NopNotifier struct{}

func (NopNotifier) Notify(Notification) {}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }
