package parser

import (
	"slices"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type commandPhrase struct {
	canonical string
	alias     string
	tokens    []string
}

type Registry struct {
	commands map[string]CommandDef
	phrases  []commandPhrase
}

func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]CommandDef),
	}
}

// RegisterCommand adds c and its aliases. Re-registering a canonical verb
// replaces its definition.
func (r *Registry) RegisterCommand(c CommandDef) {
	c.Canonical = Normalise(c.Canonical)
	if c.Canonical == "" {
		return
	}
	if _, exists := r.commands[c.Canonical]; exists {
		r.phrases = slices.DeleteFunc(r.phrases, func(p commandPhrase) bool { return p.canonical == c.Canonical })
	}
	r.commands[c.Canonical] = c

	r.phrases = append(r.phrases, commandPhrase{
		canonical: c.Canonical,
		alias:     c.Canonical,
		tokens:    tokenise(c.Canonical),
	})
	for _, a := range c.Aliases {
		n := Normalise(a)
		if n == "" {
			continue
		}
		r.phrases = append(r.phrases, commandPhrase{
			canonical: c.Canonical,
			alias:     n,
			tokens:    tokenise(n),
		})
	}
}

func (r *Registry) command(canonical string) (CommandDef, bool) {
	canonical = Normalise(canonical)
	cmd, ok := r.commands[canonical]
	return cmd, ok
}

type commandCandidate struct {
	Canonical string
	Alias     string
	Consumed  int
	Score     float64
	Source    string
}

func (r *Registry) matchCommand(tokens []string) (commandCandidate, []commandCandidate) {
	if len(tokens) == 0 {
		return commandCandidate{}, nil
	}
	in := strings.Join(tokens, " ")
	cands := make([]commandCandidate, 0, len(r.phrases))
	for _, phrase := range r.phrases {
		if len(phrase.tokens) == 0 {
			continue
		}
		consumed := min(len(tokens), len(phrase.tokens))
		prefix := strings.Join(tokens[:consumed], " ")

		if consumed == len(phrase.tokens) && prefix == phrase.alias {
			score := 1.0
			source := "exact"
			if phrase.alias != phrase.canonical {
				score = 0.97
				source = "alias"
			}
			cands = append(cands, commandCandidate{
				Canonical: phrase.canonical,
				Alias:     phrase.alias,
				Consumed:  consumed,
				Score:     score,
				Source:    source,
			})
			continue
		}

		if len(phrase.tokens) == 1 && strings.HasPrefix(phrase.alias, tokens[0]) && len(tokens[0]) >= 2 {
			cands = append(cands, commandCandidate{
				Canonical: phrase.canonical,
				Alias:     phrase.alias,
				Consumed:  1,
				Score:     0.9,
				Source:    "prefix",
			})
			continue
		}

		// Fuzzy only when this phrase had no exact or prefix hit.
		cut := consumed
		compare := prefix
		if len(phrase.tokens) > 1 && len(tokens) >= len(phrase.tokens) {
			cut = len(phrase.tokens)
			compare = strings.Join(tokens[:cut], " ")
		}
		if cut == 0 || compare == "" {
			continue
		}
		if len(compare) < 3 {
			continue
		}
		dist := levenshtein.ComputeDistance(compare, phrase.alias)
		limit := levenshteinLimit(len(phrase.alias))
		if dist > limit {
			continue
		}
		score := 0.72 - (0.08 * float64(dist))
		if strings.Contains(in, phrase.alias) {
			score += 0.04
		}
		if phrase.alias != phrase.canonical {
			score += 0.03
		}
		cands = append(cands, commandCandidate{
			Canonical: phrase.canonical,
			Alias:     phrase.alias,
			Consumed:  cut,
			Score:     score,
			Source:    "lev",
		})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Score == cands[j].Score {
			if cands[i].Consumed == cands[j].Consumed {
				return cands[i].Canonical < cands[j].Canonical
			}
			return cands[i].Consumed > cands[j].Consumed
		}
		return cands[i].Score > cands[j].Score
	})

	if len(cands) == 0 {
		return commandCandidate{}, nil
	}
	best := cands[0]
	alts := make([]commandCandidate, 0, 4)
	seen := map[string]bool{best.Canonical: true}
	for _, c := range cands[1:] {
		if seen[c.Canonical] {
			continue
		}
		seen[c.Canonical] = true
		alts = append(alts, c)
		if len(alts) >= 4 {
			break
		}
	}
	return best, alts
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// DefaultRegistry holds every verb the game understands.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	commands := []CommandDef{
		{Canonical: "help", Aliases: []string{"h", "commands", "?"}, Kind: Help},
		{Canonical: "status", Aliases: []string{"stats", "me", "how am i"}, Kind: Query},
		{Canonical: "inventory", Aliases: []string{"inv", "bag", "items", "check bag"}, Kind: Query},
		{Canonical: "areas", Aliases: []string{"map", "places", "locations"}, Kind: Query},
		{Canonical: "recipes", Aliases: []string{"recipe list", "blueprints"}, Kind: Query},
		{Canonical: "shelter", Aliases: []string{"base", "home"}, Kind: Query},
		{Canonical: "eat", Aliases: []string{"consume", "drink", "heal with"}, MinArgs: 1, Target: TargetInventory},
		{Canonical: "rest", Aliases: []string{"sleep", "nap", "wait"}},
		{Canonical: "explore", Aliases: []string{"go", "go to", "visit", "travel", "search"}, MinArgs: 1, Target: TargetArea},
		{Canonical: "attack", Aliases: []string{"fight", "hit", "strike"}},
		{Canonical: "flee", Aliases: []string{"run", "run away", "escape"}},
		{Canonical: "leave", Aliases: []string{"return", "go back", "go home", "head home"}},
		{Canonical: "equip", Aliases: []string{"wear", "wield", "hold"}, MinArgs: 1, Target: TargetInventory},
		{Canonical: "unequip", Aliases: []string{"remove", "take off", "unwield"}, MinArgs: 1, Target: TargetEquipped},
		{Canonical: "craft", Aliases: []string{"make", "build"}, MinArgs: 1, Target: TargetRecipe},
		{Canonical: "upgrade", Aliases: []string{"upgrade shelter", "improve shelter", "build shelter"}},
		{Canonical: "tunnel", Aliases: []string{"enter tunnel", "hidden path", "dive deeper"}},
		{Canonical: "rescue", Aliases: []string{"radio", "call rescue", "sos"}},
		{Canonical: "save"},
		{Canonical: "load"},
		{Canonical: "reset", Aliases: []string{"restart", "new game"}},
		{Canonical: "quit", Aliases: []string{"exit", "q"}},
	}
	for _, cmd := range commands {
		r.RegisterCommand(cmd)
	}
	return r
}

// Verbs lists the canonical verbs in registration order.
func (r *Registry) Verbs() []string {
	var out []string
	seen := map[string]bool{}
	for _, p := range r.phrases {
		if !seen[p.canonical] {
			seen[p.canonical] = true
			out = append(out, p.canonical)
		}
	}
	return out
}
