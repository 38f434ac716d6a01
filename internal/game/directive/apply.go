package directive

import (
	"fmt"

	"github.com/skirmish-engine/skirmish/internal/game/combat"
)

// Defaults for enemy-add directives that omit the field.
const (
	defaultEnemyHP = 10
	defaultEnemyAC = 10
)

// Apply parses text and applies its combat directives to the session:
// start opens (or restarts) combat, enemy-adds create combatants
// (autostarting combat when none is active), end closes it. Returns the
// resulting UI patch, or nil when the text carried no directives.
func Apply(store *combat.Store, sessionID, text string) (*combat.Patch, Parsed) {
	parsed := Parse(text)
	if !parsed.HadAny {
		return nil, parsed
	}

	patch := &combat.Patch{}

	if parsed.CombatStart != nil {
		store.StartCombat(sessionID)
		patch.Reset = true
		patch.Open = true
		patch.Status = "⚔ Бой начался"
	}

	if len(parsed.EnemyAdds) > 0 {
		if state := store.Get(sessionID); state == nil || !state.Active {
			store.StartCombat(sessionID)
			patch.Reset = true
			patch.Open = true
		}

		for _, cmd := range parsed.EnemyAdds {
			hp := defaultEnemyHP
			if cmd.HP != nil {
				hp = *cmd.HP
			}
			ac := defaultEnemyAC
			if cmd.AC != nil {
				ac = *cmd.AC
			}
			store.AddEnemy(sessionID, cmd.EnemyID, cmd.Name, hp, ac)
			patch.AddMuted(fmt.Sprintf("Противник добавлен: %s (HP %d/%d, AC %d)", cmd.Name, hp, hp, ac))
		}
		patch.Open = true
	}

	if parsed.CombatEnd != nil {
		store.EndCombat(sessionID)
		return &combat.Patch{Status: "Бой завершён", Open: false}, parsed
	}

	if patch.Status == "" {
		if state := store.Get(sessionID); state != nil && state.Active {
			patch.Status = fmt.Sprintf("⚔ Бой • Раунд %d • Ход: %s", state.RoundNo, state.CurrentTurnLabel())
		}
	}

	if patch.Status == "" && !patch.Reset && len(patch.Lines) == 0 {
		return nil, parsed
	}
	return patch, parsed
}
