package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type Parser struct {
	registry *Registry
}

func New() *Parser {
	return &Parser{registry: DefaultRegistry()}
}

func (p *Parser) RegisterCommand(c CommandDef) {
	p.registry.RegisterCommand(c)
}

func (p *Parser) Verbs() []string { return p.registry.Verbs() }

// Parse maps free text to an intent. Low-confidence or ambiguous input
// comes back with Clarify set instead of a guess.
func (p *Parser) Parse(ctx ParseContext, raw string) Intent {
	intent := Intent{
		Raw:        raw,
		Normalised: Normalise(raw),
		Kind:       Unknown,
	}
	if intent.Normalised == "" {
		intent.Clarify = &ClarifyQuestion{Prompt: "Enter a command. Type help for a list."}
		return intent
	}

	tokens := tokenise(intent.Normalised)
	cmdMatch, alternates := p.registry.matchCommand(tokens)
	if cmdMatch.Canonical == "" || cmdMatch.Score < 0.6 {
		if inferred := p.inferFreeTextIntent(ctx, intent.Raw, intent.Normalised); inferred != nil {
			return *inferred
		}
		intent.Clarify = &ClarifyQuestion{
			Prompt: "I couldn't map that to a command. Try help, status, explore, eat, rest, craft, attack, flee.",
		}
		return intent
	}

	if len(alternates) > 0 {
		alt := alternates[0]
		if alt.Consumed >= cmdMatch.Consumed && (cmdMatch.Score-alt.Score) < 0.05 && alt.Score > 0.65 {
			intent.Clarify = &ClarifyQuestion{
				Prompt: "Did you mean:",
				Options: []Intent{
					p.bareIntent(raw, cmdMatch.Canonical, cmdMatch.Score),
					p.bareIntent(raw, alt.Canonical, alt.Score),
				},
			}
			return intent
		}
	}

	def, _ := p.registry.command(cmdMatch.Canonical)
	intent.Verb = def.Canonical
	intent.Kind = def.Kind
	intent.Confidence = clampScore(cmdMatch.Score)

	argTokens := tokens[min(cmdMatch.Consumed, len(tokens)):]
	args, clarify, argScore := resolveArgs(ctx, def, argTokens)
	if clarify != nil {
		intent.Clarify = clarify
		intent.Confidence = 0.45
		return intent
	}
	intent.Args = args
	if len(args) > 0 {
		intent.Confidence = clampScore(intent.Confidence*0.75 + argScore*0.25)
	}

	if len(intent.Args) < def.MinArgs {
		options := entityOptions(ctx, def, 5)
		prompt := fmt.Sprintf("What should I %s?", def.Canonical)
		if len(options) == 0 {
			prompt = fmt.Sprintf("%s needs a target, and there is nothing to %s.", def.Canonical, def.Canonical)
		}
		intent.Clarify = &ClarifyQuestion{Prompt: prompt, Options: options}
		intent.Confidence = 0.42
		return intent
	}

	if intent.Confidence < 0.52 {
		intent.Clarify = &ClarifyQuestion{Prompt: "I have low confidence in that parse. Please rephrase."}
	}
	return intent
}

func (p *Parser) bareIntent(raw, verb string, score float64) Intent {
	def, _ := p.registry.command(verb)
	return Intent{Raw: raw, Normalised: verb, Kind: def.Kind, Verb: verb, Confidence: score}
}

// resolveArgs treats the remaining tokens as one entity phrase and resolves
// it against the command's target pool. Verbs without a target keep the
// tokens as given.
func resolveArgs(ctx ParseContext, def CommandDef, tokens []string) ([]string, *ClarifyQuestion, float64) {
	tokens = stripFillers(tokens)
	if len(tokens) == 0 {
		return nil, nil, 0.9
	}
	if def.Target == NoTarget {
		return tokens, nil, 0.9
	}

	phrase := strings.Join(tokens, " ")
	score := 0.9
	if len(tokens) == 1 && isPronoun(tokens[0]) {
		if strings.TrimSpace(ctx.LastEntity) == "" {
			return nil, &ClarifyQuestion{Prompt: "What does that refer to?"}, 0.4
		}
		phrase = Normalise(ctx.LastEntity)
		score -= 0.08
	}

	pool := normaliseAll(ctx.pool(def.Target))
	if def.Target == TargetEquipped {
		pool = mergeUnique(pool, []string{"weapon", "armor"})
	}
	matches, confidence, tie := bestMatches(phrase, pool)
	if tie {
		options := make([]Intent, 0, 2)
		for i := 0; i < 2; i++ {
			options = append(options, Intent{
				Kind:       def.Kind,
				Verb:       def.Canonical,
				Args:       []string{matches[i]},
				Confidence: confidence - float64(i)*0.01,
			})
		}
		return nil, &ClarifyQuestion{Prompt: fmt.Sprintf("Did you mean %s:", def.Canonical), Options: options}, 0.52
	}
	if len(matches) == 1 {
		return []string{matches[0]}, nil, minScore(score, confidence)
	}
	// Unknown names pass through; the game reports what is missing.
	return []string{phrase}, nil, 0.6
}

func normaliseAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if n := Normalise(v); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func bestMatches(token string, all []string) ([]string, float64, bool) {
	token = Normalise(token)
	if len(all) == 0 || token == "" {
		return nil, 0, false
	}
	type scored struct {
		val   string
		score float64
	}
	results := make([]scored, 0, len(all))
	seen := map[string]bool{}
	for _, cand := range all {
		if seen[cand] {
			continue
		}
		seen[cand] = true
		score := 0.0
		switch {
		case token == cand:
			score = 1.0
		case strings.HasPrefix(cand, token) && len(token) >= 2:
			score = 0.9
		case containsWord(cand, token) && len(token) >= 3:
			score = 0.8
		default:
			dist := levenshtein.ComputeDistance(token, cand)
			if dist > levenshteinLimit(len(cand)) {
				continue
			}
			score = 0.72 - (0.08 * float64(dist))
		}
		results = append(results, scored{val: cand, score: clampScore(score)})
	}
	if len(results) == 0 {
		return nil, 0, false
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score == results[j].score {
			return results[i].val < results[j].val
		}
		return results[i].score > results[j].score
	})

	best := results[0]
	tie := len(results) > 1 && (best.score-results[1].score) < 0.05 && results[1].score > 0.6
	if tie {
		return []string{best.val, results[1].val}, best.score, true
	}
	return []string{best.val}, best.score, false
}

func entityOptions(ctx ParseContext, def CommandDef, maxOptions int) []Intent {
	options := make([]Intent, 0, maxOptions)
	for _, entity := range mergeUnique(ctx.pool(def.Target), nil) {
		options = append(options, Intent{
			Kind:       def.Kind,
			Verb:       def.Canonical,
			Args:       []string{entity},
			Confidence: 0.88,
		})
		if len(options) >= maxOptions {
			break
		}
	}
	return options
}

func (p *Parser) inferFreeTextIntent(ctx ParseContext, raw string, normalised string) *Intent {
	n := normalised
	makeIntent := func(kind IntentKind, verb string, args []string, confidence float64) *Intent {
		return &Intent{
			Raw:        raw,
			Normalised: normalised,
			Kind:       kind,
			Verb:       verb,
			Args:       args,
			Confidence: clampScore(confidence),
		}
	}

	if containsAnyPhrase(n, "what do i have", "what have i got", "my inventory", "check my bag", "open bag") {
		return makeIntent(Query, "inventory", nil, 0.92)
	}
	if containsAnyPhrase(n, "where can i go", "where to go", "what places") {
		return makeIntent(Query, "areas", nil, 0.88)
	}
	if containsAnyPhrase(n, "call for help", "call for rescue", "send sos", "use the radio", "use radio") {
		return makeIntent(Command, "rescue", nil, 0.86)
	}
	if containsAnyPhrase(n, "run away", "get away", "escape") {
		return makeIntent(Command, "flee", nil, 0.86)
	}
	if containsAnyPhrase(n, "go home", "back to the shelter", "back to shelter", "head back") {
		return makeIntent(Command, "leave", nil, 0.84)
	}
	if containsAnyPhrase(n, "i m tired", "im tired", "i am tired", "need sleep", "need rest", "take a nap") {
		return makeIntent(Command, "rest", nil, 0.84)
	}
	if containsAnyPhrase(n, "i m hungry", "im hungry", "i am hungry", "need food", "something to eat") {
		intent := makeIntent(Command, "eat", nil, 0.7)
		if def, ok := p.registry.command("eat"); ok {
			if options := entityOptions(ctx, def, 5); len(options) > 0 {
				intent.Clarify = &ClarifyQuestion{Prompt: "What should I eat?", Options: options}
			}
		}
		return intent
	}
	if containsWord(n, "fight") || containsWord(n, "hit") || containsWord(n, "kill") {
		return makeIntent(Command, "attack", nil, 0.8)
	}

	// "head to the ruins", "lets explore the supermarket"
	for _, lead := range []string{"head to", "go to", "explore", "visit", "travel to"} {
		idx := strings.Index(" "+n+" ", " "+lead+" ")
		if idx < 0 {
			continue
		}
		rest := stripFillers(tokenise(n[min(len(n), idx+len(lead)):]))
		if len(rest) == 0 {
			continue
		}
		m, confidence, tie := bestMatches(strings.Join(rest, " "), normaliseAll(ctx.Areas))
		if len(m) == 1 && !tie {
			return makeIntent(Command, "explore", m, confidence*0.95)
		}
	}
	return nil
}

func containsAnyPhrase(value string, phrases ...string) bool {
	for _, phrase := range phrases {
		if containsWord(value, phrase) {
			return true
		}
	}
	return false
}

func containsWord(value, word string) bool {
	w := Normalise(word)
	if w == "" {
		return false
	}
	return strings.Contains(" "+value+" ", " "+w+" ")
}

func mergeUnique(a, b []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(a)+len(b))
	add := func(list []string) {
		for _, v := range list {
			n := Normalise(v)
			if n == "" || seen[n] {
				continue
			}
			seen[n] = true
			out = append(out, n)
		}
	}
	add(a)
	add(b)
	return out
}

func minScore(a, b float64) float64 {
	if b < a {
		return b
	}
	return a
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// IntentToCommandString renders an intent back to the canonical command a
// player could type.
func IntentToCommandString(intent Intent) string {
	verb := Normalise(intent.Verb)
	if verb == "" {
		return ""
	}
	args := make([]string, 0, len(intent.Args))
	for _, arg := range intent.Args {
		if n := Normalise(arg); n != "" {
			args = append(args, n)
		}
	}
	if len(args) == 0 {
		return verb
	}
	return verb + " " + strings.Join(args, " ")
}
