package parser

type IntentKind int

const (
	Command IntentKind = iota
	Query
	Help
	Unknown
)

// Target names the pool an argument is resolved against.
type Target int

const (
	NoTarget Target = iota
	TargetInventory
	TargetEquipped
	TargetArea
	TargetRecipe
)

type Intent struct {
	Raw        string
	Normalised string
	Kind       IntentKind
	Verb       string
	Args       []string
	Confidence float64
	Clarify    *ClarifyQuestion
}

type ClarifyQuestion struct {
	Prompt  string
	Options []Intent
}

// ParseContext lists the names currently in scope. Entries are matched
// after normalisation, so display names and ids both work.
type ParseContext struct {
	Inventory  []string
	Equipped   []string
	Areas      []string
	Recipes    []string
	LastEntity string
}

func (c ParseContext) pool(t Target) []string {
	switch t {
	case TargetInventory:
		return c.Inventory
	case TargetEquipped:
		return c.Equipped
	case TargetArea:
		return c.Areas
	case TargetRecipe:
		return c.Recipes
	default:
		return nil
	}
}

type CommandDef struct {
	Canonical string
	Aliases   []string
	MinArgs   int
	Target    Target
	Kind      IntentKind
}
