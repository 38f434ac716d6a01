// Package logui reconciles raw combat patches with the displayed log
// history and derives short narration facts from them. It owns the
// presentation-side text conventions: the scene preamble, the default
// status line, and the round separator.
package logui

import (
	"fmt"
	"strings"

	"github.com/skirmish-engine/skirmish/internal/game/combat"
	"github.com/skirmish-engine/skirmish/internal/game/rules"
)

// RoundSeparator is inserted between rounds in the displayed log.
const RoundSeparator = "===================="

// preamblePrefix marks the scene-setting line so a second normalization
// pass never duplicates the preamble.
const preamblePrefix = "Бой начался между"

// History tracks what the UI has displayed so far for one session.
type History struct {
	Lines      []combat.Line
	LastStatus string
	LastRound  int
}

// hasPreamble reports whether a scene preamble was already shown.
func (h *History) hasPreamble() bool {
	for _, line := range h.Lines {
		if strings.HasPrefix(line.Text, preamblePrefix) {
			return true
		}
	}
	return false
}

// Apply records a normalized patch into the history. A reset patch
// clears prior lines first.
func (h *History) Apply(patch *combat.Patch, round int) {
	if patch == nil {
		return
	}
	if patch.Reset {
		h.Lines = nil
	}
	h.Lines = append(h.Lines, patch.Lines...)
	if patch.Status != "" {
		h.LastStatus = patch.Status
	}
	if round > 0 {
		h.LastRound = round
	}
}

// PreambleContext is the caller-supplied actor context used only for the
// scene-setting preamble text.
type PreambleContext struct {
	PlayerName string
	Level      int
	Class      string
	Stats      rules.Stats
}

// enemyAddedName extracts the enemy name from the first "Противник
// добавлен" line of the patch, or "".
func enemyAddedName(patch *combat.Patch) string {
	for _, line := range patch.Lines {
		rest, ok := strings.CutPrefix(line.Text, "Противник добавлен: ")
		if !ok {
			continue
		}
		if idx := strings.LastIndex(rest, " (HP "); idx > 0 {
			rest = rest[:idx]
		}
		return strings.TrimSpace(rest)
	}
	return ""
}

// Normalize reconciles a raw dispatcher patch with the display history:
// it prepends the scene preamble on the first enemy-add of a fresh
// panel, fills in the default live status, and appends the status as a
// trailing dedupable line with a round separator on round change.
//
// state may be nil when combat has ended; hist is read but not mutated —
// call History.Apply with the returned patch to record it.
func Normalize(patch *combat.Patch, hist *History, ctx PreambleContext, state *combat.CombatState) *combat.Patch {
	if patch == nil {
		return nil
	}

	out := &combat.Patch{
		Status: patch.Status,
		Open:   patch.Open,
		Reset:  patch.Reset,
		Lines:  append([]combat.Line(nil), patch.Lines...),
	}

	cleared := out.Reset || len(hist.Lines) == 0
	if enemy := enemyAddedName(out); enemy != "" && cleared && !hist.hasPreamble() {
		player := strings.TrimSpace(ctx.PlayerName)
		if player == "" {
			player = "Герой"
		}
		intro := fmt.Sprintf("%s (%s, уровень %d) вступает в схватку.", player, ctx.Class, ctx.Level)
		if ctx.Class == "" {
			intro = fmt.Sprintf("%s вступает в схватку.", player)
		}
		preamble := []combat.Line{
			{Text: fmt.Sprintf("%s %s и %s.", preamblePrefix, player, enemy)},
			{Text: intro},
		}
		out.Lines = append(preamble, out.Lines...)
	}

	if out.Status == "" && state != nil && state.Active {
		out.Status = fmt.Sprintf("⚔ Бой • Раунд %d • Ход: %s", state.RoundNo, state.CurrentTurnLabel())
	}

	if out.Status != "" {
		round := 0
		if state != nil {
			round = state.RoundNo
		}
		if !out.Reset && hist.LastRound > 0 && round > hist.LastRound {
			out.Lines = append(out.Lines, combat.Line{Text: RoundSeparator, Muted: true})
		}
		out.Lines = append(out.Lines, combat.Line{Text: out.Status, Muted: true, Kind: "status"})
	}

	return out
}
