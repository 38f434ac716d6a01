package logui

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/skirmish-engine/skirmish/internal/game/combat"
)

// DefaultFactLimit bounds how many facts one patch can produce.
const DefaultFactLimit = 10

var (
	attackRe = regexp.MustCompile(`^Атака:\s*(.+?)\s*→\s*(.+?)\s*$`)
	actionRe = regexp.MustCompile(`^(?i)(Уклонение|Рывок|Отход|Помощь|Предмет|Побег):\s*(.+?)(?:\s*\(|\s*$)`)
	hpRe     = regexp.MustCompile(`^(?i)(.+?):\s*HP\s*(\d+)\s*/\s*(\d+)\s*$`)
	spaceRe  = regexp.MustCompile(`\s+`)
)

// pendingAttack holds an attack header until its result and HP lines
// arrive.
type pendingAttack struct {
	attacker string
	target   string
	outcome  string
}

func cleanName(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// cleanActor cuts trailing verb phrases from an action subject, e.g.
// "Герой пытается сбежать" → "Герой".
func cleanActor(raw string) string {
	actor := cleanName(raw)
	low := strings.ToLower(actor)
	for _, marker := range []string{" пытается ", " использует "} {
		if idx := strings.Index(low, marker); idx > 0 {
			return strings.TrimSpace(actor[:idx])
		}
	}
	return actor
}

// hpStateFact translates an HP ratio into a wound description.
func hpStateFact(name string, hpCur, hpMax int) string {
	if hpMax <= 0 {
		return ""
	}
	ratio := float64(hpCur) / float64(hpMax)
	switch {
	case ratio >= 0.75:
		return fmt.Sprintf("%s почти не ранен.", name)
	case ratio >= 0.40:
		return fmt.Sprintf("%s ранен.", name)
	case ratio >= 0.15:
		return fmt.Sprintf("%s сильно ранен.", name)
	default:
		return fmt.Sprintf("%s пошатывается и едва держится.", name)
	}
}

// ExtractFacts derives short natural-language facts from a patch for the
// narration layer. Mechanical lines (rolls, damage math, status) are
// ignored; attack headers are paired with their result and HP lines.
// Priority facts (kills, victory, defeat, escape) come first; all facts
// are deduplicated and capped at limit (<=0 means DefaultFactLimit).
func ExtractFacts(patch *combat.Patch, limit int) []string {
	if patch == nil || len(patch.Lines) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = DefaultFactLimit
	}

	var priority, regular []string
	var pending *pendingAttack
	escapeActor := ""

	flushPending := func() {
		if pending == nil {
			return
		}
		if pending.outcome != "" {
			regular = append(regular, pending.outcome)
		} else {
			regular = append(regular, fmt.Sprintf("%s атакует %s.", pending.attacker, pending.target))
		}
		pending = nil
	}

	for _, line := range patch.Lines {
		t := strings.TrimSpace(line.Text)
		if t == "" || t == RoundSeparator {
			continue
		}
		if line.Kind == "status" || strings.HasPrefix(t, "⚔") {
			continue
		}
		if strings.HasPrefix(t, "Бросок") || strings.HasPrefix(t, "Урон:") ||
			strings.HasPrefix(t, "Ход автоматически") || strings.Contains(t, " vs AC ") {
			continue
		}

		low := strings.ToLower(t)

		if m := attackRe.FindStringSubmatch(t); m != nil {
			flushPending()
			pending = &pendingAttack{attacker: cleanName(m[1]), target: cleanName(m[2])}
			continue
		}

		if m := actionRe.FindStringSubmatch(t); m != nil {
			actor := cleanActor(m[2])
			if actor == "" {
				continue
			}
			switch strings.ToLower(m[1]) {
			case "уклонение":
				regular = append(regular, fmt.Sprintf("%s уходит в защиту и сбивает темп.", actor))
			case "рывок":
				regular = append(regular, fmt.Sprintf("%s резко ускоряется и меняет дистанцию.", actor))
			case "отход":
				regular = append(regular, fmt.Sprintf("%s отступает, не подставляясь.", actor))
			case "помощь":
				regular = append(regular, fmt.Sprintf("%s помогает, открывая окно для следующей атаки.", actor))
			case "предмет":
				regular = append(regular, fmt.Sprintf("%s тянется к предмету и пытается использовать объект.", actor))
			case "побег":
				escapeActor = actor
			}
			continue
		}

		if strings.HasPrefix(low, "результат:") {
			if pending != nil {
				outcome := "не пробивает оборону"
				if strings.Contains(low, "попадание") || strings.Contains(low, "крит") {
					outcome = "попадает"
				} else if strings.Contains(low, "промах") {
					outcome = "промахивается"
				}
				pending.outcome = fmt.Sprintf("%s атакует %s и %s.", pending.attacker, pending.target, outcome)
				continue
			}
			if escapeActor != "" {
				if strings.Contains(low, "успеш") {
					priority = append(priority, fmt.Sprintf("%s вырывается из боя.", escapeActor))
				} else if strings.Contains(low, "не удался") || strings.Contains(low, "неуда") || strings.Contains(low, "сорван") {
					priority = append(priority, fmt.Sprintf("%s пытается уйти, но побег срывается.", escapeActor))
				}
				escapeActor = ""
				continue
			}
		}

		if m := hpRe.FindStringSubmatch(t); m != nil && pending != nil {
			if cleanName(m[1]) == pending.target {
				hpCur, _ := strconv.Atoi(m[2])
				hpMax, _ := strconv.Atoi(m[3])
				target := pending.target
				flushPending()
				if fact := hpStateFact(target, hpCur, hpMax); fact != "" {
					regular = append(regular, fact)
				}
			}
			continue
		}

		switch {
		case strings.HasPrefix(low, "победа"):
			priority = append(priority, "Победа — бой окончен.")
		case strings.HasPrefix(low, "поражение"):
			priority = append(priority, "Поражение — отряд выбывает.")
		case strings.Contains(low, "повержен"):
			priority = append(priority, "Противник повержен.")
		case strings.HasPrefix(low, "бой заверш"):
			priority = append(priority, "Бой завершён.")
		}
	}

	flushPending()

	seen := make(map[string]bool, len(priority)+len(regular))
	var facts []string
	for _, group := range [][]string{priority, regular} {
		for _, fact := range group {
			if fact != "" && !seen[fact] {
				seen[fact] = true
				facts = append(facts, fact)
			}
		}
	}
	if len(facts) > limit {
		facts = facts[:limit]
	}
	return facts
}
