package combat

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/skirmish-engine/skirmish/internal/game/dice"
)

// autoResolve clears the front of the turn order until a combatant who
// can act normally is reached: enemies and dead or stable PCs at 0 HP
// are skipped; a downed PC drinks their weakest healing consumable or,
// lacking one, rolls a death save — either way the turn passes.
//
// The loop is bounded at len(order)+1 iterations so a corrupted order
// can never stall the engine. Returns true when any combatant was
// handled; in that case the caller's action is consumed. Ends combat
// when one side has no living member left.
func (d *Dispatcher) autoResolve(sessionID string, state *CombatState, patch *Patch) (bool, error) {
	handled := false
	limit := len(state.Order) + 1

	for i := 0; i < limit; i++ {
		key := state.currentKey()
		if key == "" {
			break
		}
		c, ok := state.Combatants[key]
		if !ok {
			return handled, fmt.Errorf("order references missing combatant %q: %w", key, ErrInconsistentState)
		}
		if c.Alive() {
			break
		}

		if c.Side == SideEnemy || c.IsDead || c.IsStable {
			patch.AddMuted(fmt.Sprintf("Ход пропущен: %s (0 HP).", c.Name))
			state.advanceTurn()
			handled = true
			continue
		}

		// Downed PC: auto-item first, death save otherwise.
		if idx, def := c.weakestHealingItem(d.items); idx >= 0 {
			heal := d.rollHealing(def)
			c.consumeInventoryItem(idx)
			c.applyHealing(heal)
			patch.AddMuted(fmt.Sprintf("Авто-предмет: %s использует %s (+%d HP).", c.Name, def.NameRU, heal))
			patch.AddLine(fmt.Sprintf("%s: HP %d/%d", c.Name, c.HPCurrent, c.HPMax))
			d.logger.Debug("auto item",
				zap.String("session", sessionID),
				zap.String("combatant", c.Key),
				zap.String("item", def.Key),
				zap.Int("heal", heal),
			)
		} else {
			applyDeathSave(c, dice.D20(d.src), patch)
			if !c.Alive() {
				patch.AddMuted(fmt.Sprintf("Ход пропущен: %s (0 HP).", c.Name))
			}
		}

		state.advanceTurn()
		handled = true
	}

	if handled && (!state.sideAlive(SidePC) || !state.sideAlive(SideEnemy)) {
		d.finishCombat(sessionID, state, patch)
	}
	return handled, nil
}

// finishCombat appends victory/defeat lines, closes the panel, and
// removes the session's combat.
func (d *Dispatcher) finishCombat(sessionID string, state *CombatState, patch *Patch) {
	if !state.sideAlive(SideEnemy) {
		patch.AddMuted("Победа: противники повержены.")
	}
	if !state.sideAlive(SidePC) {
		patch.AddMuted("Поражение: все герои выбыли.")
	}
	patch.Status = "Бой завершён"
	patch.Open = false
	state.Active = false
	d.store.EndCombat(sessionID)
}
