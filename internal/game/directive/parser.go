// Package directive extracts embedded machine directives from narrative
// text. Story text may carry line-level commands such as
// @@COMBAT_START(zone="bridge", cause=ambush); the parser strips them
// from the visible text and returns them as typed values. Parsing never
// fails: malformed directives are dropped silently.
package directive

import (
	"regexp"
	"strconv"
	"strings"
)

// CombatStart opens a combat encounter.
type CombatStart struct {
	Zone     string
	Cause    string
	Surprise string
}

// CombatEnemyAdd adds one enemy to the active (or autostarted) combat.
type CombatEnemyAdd struct {
	EnemyID string
	Name    string
	HP      *int
	AC      *int
	InitMod *int
	Threat  *int
}

// CombatEnd closes the combat encounter.
type CombatEnd struct {
	Result string
}

// RandomEvent injects a world event outside of combat.
type RandomEvent struct {
	Key      string
	Category string
	Severity *int
}

// Parsed is the full result of scanning one block of narrative text.
type Parsed struct {
	VisibleText string
	CombatStart *CombatStart
	EnemyAdds   []CombatEnemyAdd
	CombatEnd   *CombatEnd
	Events      []RandomEvent
	HadAny      bool
}

// Directive lines match the whole line, optionally wrapped in one pair
// of parentheses.
var (
	combatStartRe = regexp.MustCompile(`^\s*(?:\(\s*)?@@COMBAT_START\((.*?)\)\s*\)?\s*$`)
	enemyAddRe    = regexp.MustCompile(`^\s*(?:\(\s*)?@@COMBAT_ENEMY_ADD\((.*?)\)\s*\)?\s*$`)
	combatEndRe   = regexp.MustCompile(`^\s*(?:\(\s*)?@@COMBAT_END\((.*?)\)\s*\)?\s*$`)
	randomEventRe = regexp.MustCompile(`^\s*(?:\(\s*)?@@RANDOM_EVENT\((.*?)\)\s*\)?\s*$`)

	intRe = regexp.MustCompile(`^[+-]?\d+$`)
)

// splitArgs breaks a directive argument string into key=value pairs.
// Commas inside double quotes do not split; pairs without '=' are
// dropped.
func splitArgs(raw string) map[string]string {
	var parts []string
	var current strings.Builder
	inQuotes := false

	for _, r := range raw {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case r == ',' && !inQuotes:
			if part := strings.TrimSpace(current.String()); part != "" {
				parts = append(parts, part)
			}
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if part := strings.TrimSpace(current.String()); part != "" {
		parts = append(parts, part)
	}

	args := make(map[string]string, len(parts))
	for _, part := range parts {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		args[key] = strings.TrimSpace(value)
	}
	return args
}

// cleanString strips one layer of surrounding quotes and maps empty or
// "none" values to absent.
func cleanString(value string) string {
	cleaned := strings.TrimSpace(value)
	if len(cleaned) >= 2 && cleaned[0] == '"' && cleaned[len(cleaned)-1] == '"' {
		cleaned = strings.TrimSpace(cleaned[1 : len(cleaned)-1])
	}
	if cleaned == "" || strings.EqualFold(cleaned, "none") {
		return ""
	}
	return cleaned
}

// cleanInt parses a strictly numeric argument; anything else is absent.
func cleanInt(value string) *int {
	cleaned := cleanString(value)
	if cleaned == "" || !intRe.MatchString(cleaned) {
		return nil
	}
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return nil
	}
	return &n
}

// Parse scans text line by line for combat directives. Directive lines
// are removed from the visible text; everything else is rejoined and
// trimmed. Multiple enemy-add and random-event directives all apply, in
// order; for start and end the last one wins.
func Parse(text string) Parsed {
	var visible []string
	parsed := Parsed{}

	for _, line := range strings.Split(text, "\n") {
		if m := combatStartRe.FindStringSubmatch(line); m != nil {
			parsed.HadAny = true
			args := splitArgs(m[1])
			parsed.CombatStart = &CombatStart{
				Zone:     cleanString(args["zone"]),
				Cause:    cleanString(args["cause"]),
				Surprise: cleanString(args["surprise"]),
			}
			continue
		}
		if m := enemyAddRe.FindStringSubmatch(line); m != nil {
			parsed.HadAny = true
			args := splitArgs(m[1])
			enemyID := cleanString(args["enemy_id"])
			name := cleanString(args["name"])
			if enemyID != "" && name != "" {
				parsed.EnemyAdds = append(parsed.EnemyAdds, CombatEnemyAdd{
					EnemyID: enemyID,
					Name:    name,
					HP:      cleanInt(args["hp"]),
					AC:      cleanInt(args["ac"]),
					InitMod: cleanInt(args["init_mod"]),
					Threat:  cleanInt(args["threat"]),
				})
			}
			continue
		}
		if m := combatEndRe.FindStringSubmatch(line); m != nil {
			parsed.HadAny = true
			args := splitArgs(m[1])
			parsed.CombatEnd = &CombatEnd{Result: cleanString(args["result"])}
			continue
		}
		if m := randomEventRe.FindStringSubmatch(line); m != nil {
			parsed.HadAny = true
			args := splitArgs(m[1])
			if key := cleanString(args["key"]); key != "" {
				parsed.Events = append(parsed.Events, RandomEvent{
					Key:      key,
					Category: cleanString(args["category"]),
					Severity: cleanInt(args["severity"]),
				})
			}
			continue
		}
		visible = append(visible, line)
	}

	parsed.VisibleText = strings.TrimSpace(strings.Join(visible, "\n"))
	return parsed
}
