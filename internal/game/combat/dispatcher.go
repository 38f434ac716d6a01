package combat

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/skirmish-engine/skirmish/internal/game/dice"
	"github.com/skirmish-engine/skirmish/internal/game/rules"
)

// Action ids accepted by the dispatcher.
const (
	ActionEndTurn         = "combat_end_turn"
	ActionAttack          = "combat_attack"
	ActionDodge           = "combat_dodge"
	ActionDash            = "combat_dash"
	ActionDisengage       = "combat_disengage"
	ActionHelp            = "combat_help"
	ActionUseObject       = "combat_use_object"
	ActionUseObjectOnAlly = "combat_use_object_on_ally"
	ActionEscape          = "combat_escape"
	ActionStabilize       = "combat_stabilize"
)

var knownActions = map[string]bool{
	ActionEndTurn:         true,
	ActionAttack:          true,
	ActionDodge:           true,
	ActionDash:            true,
	ActionDisengage:       true,
	ActionHelp:            true,
	ActionUseObject:       true,
	ActionUseObjectOnAlly: true,
	ActionEscape:          true,
	ActionStabilize:       true,
}

// Default difficulty classes, overridable through Tunables.
const (
	defaultEscapeDC    = 13
	defaultStabilizeDC = 10
)

// Tunables are the dispatcher's adjustable rule constants. Zero values
// fall back to the defaults.
type Tunables struct {
	EscapeDC    int
	StabilizeDC int
}

// Dispatcher is the combat state machine: it maps (session, action)
// pairs to state mutations and UI patches. It holds no per-session
// state of its own; everything lives in the injected Store.
type Dispatcher struct {
	store       *Store
	items       *rules.ItemTable
	src         dice.Source
	logger      *zap.Logger
	escapeDC    int
	stabilizeDC int
}

// NewDispatcher wires a dispatcher.
//
// Precondition: store, items, src, and logger must be non-nil.
func NewDispatcher(store *Store, items *rules.ItemTable, src dice.Source, logger *zap.Logger, tun Tunables) *Dispatcher {
	if tun.EscapeDC == 0 {
		tun.EscapeDC = defaultEscapeDC
	}
	if tun.StabilizeDC == 0 {
		tun.StabilizeDC = defaultStabilizeDC
	}
	return &Dispatcher{
		store:       store,
		items:       items,
		src:         src,
		logger:      logger,
		escapeDC:    tun.EscapeDC,
		stabilizeDC: tun.StabilizeDC,
	}
}

// combatStatus formats the live status line.
func combatStatus(state *CombatState) string {
	return fmt.Sprintf("⚔ Бой • Раунд %d • Ход: %s", state.RoundNo, state.CurrentTurnLabel())
}

// selfHealActions may be taken by an unconscious combatant.
var selfHealActions = map[string]bool{
	ActionUseObject:       true,
	ActionUseObjectOnAlly: true,
	ActionEndTurn:         true,
}

// HandleAction runs one combat action for the session and returns the
// resulting UI patch.
//
// The precondition chain runs before any action body: no active combat
// returns ErrNotActive; an unconscious PC may only use an object or end
// the turn; then the auto-resolve loop clears skipped and downed
// combatants from the front of the order. When the loop does any work it
// consumes the action — the patch reports what happened instead.
func (d *Dispatcher) HandleAction(sessionID, action string) (*Patch, error) {
	state := d.store.Get(sessionID)
	if state == nil || !state.Active {
		return nil, fmt.Errorf("session %q: %w", sessionID, ErrNotActive)
	}
	if !knownActions[action] {
		return nil, fmt.Errorf("%q: %w", action, ErrUnknownAction)
	}

	d.logger.Debug("combat action",
		zap.String("session", sessionID),
		zap.String("action", action),
		zap.Int("round", state.RoundNo),
	)

	patch := &Patch{Open: true}

	if key := state.currentKey(); key != "" {
		actor, ok := state.Combatants[key]
		if !ok {
			return nil, fmt.Errorf("order references missing combatant %q: %w", key, ErrInconsistentState)
		}
		if actor.Downed() && !selfHealActions[action] {
			patch.AddMuted("Действие недоступно: ты без сознания (0 HP).")
			patch.Status = combatStatus(state)
			return patch, nil
		}
	}

	if action != ActionUseObject && action != ActionUseObjectOnAlly {
		handled, err := d.autoResolve(sessionID, state, patch)
		if err != nil {
			return nil, err
		}
		if !state.Active {
			return patch, nil
		}
		if handled {
			patch.Status = combatStatus(state)
			return patch, nil
		}
	}

	switch action {
	case ActionEndTurn:
		state.advanceTurn()
		patch.AddMuted(fmt.Sprintf("Ход передан: %s", state.CurrentTurnLabel()))
	case ActionDodge, ActionDash, ActionDisengage, ActionHelp:
		if err := d.applyStance(state, action, patch); err != nil {
			return nil, err
		}
	case ActionUseObject:
		if err := d.useObjectSelf(state, patch); err != nil {
			return nil, err
		}
	case ActionUseObjectOnAlly:
		if err := d.useObjectOnAlly(state, patch); err != nil {
			return nil, err
		}
	case ActionEscape:
		if err := d.escape(sessionID, state, patch); err != nil {
			return nil, err
		}
	case ActionStabilize:
		if err := d.stabilize(state, patch); err != nil {
			return nil, err
		}
	case ActionAttack:
		if err := d.performAttack(sessionID, state, patch); err != nil {
			return nil, err
		}
	}

	if state.Active {
		patch.Status = combatStatus(state)
	}
	return patch, nil
}

// currentActor returns the combatant at the front of the order.
func (st *CombatState) currentActor() (*Combatant, error) {
	key := st.currentKey()
	if key == "" {
		return nil, fmt.Errorf("empty turn order: %w", ErrInconsistentState)
	}
	actor, ok := st.Combatants[key]
	if !ok {
		return nil, fmt.Errorf("order references missing combatant %q: %w", key, ErrInconsistentState)
	}
	return actor, nil
}

// applyStance handles dodge, dash, disengage, and help: set the one-turn
// flag, log it, pass the turn.
func (d *Dispatcher) applyStance(state *CombatState, action string, patch *Patch) error {
	actor, err := state.currentActor()
	if err != nil {
		return err
	}

	switch action {
	case ActionDodge:
		actor.DodgeActive = true
		patch.AddLine(fmt.Sprintf("Уклонение: %s (атаки по нему с помехой до следующего хода).", actor.Name))
	case ActionDash:
		actor.DashActive = true
		patch.AddLine(fmt.Sprintf("Рывок: %s (дистанция удвоена на этот ход).", actor.Name))
	case ActionDisengage:
		actor.DisengageActive = true
		patch.AddLine(fmt.Sprintf("Отход: %s (отступает без провоцированных атак).", actor.Name))
	case ActionHelp:
		actor.HelpAttackAdvantage = true
		patch.AddLine(fmt.Sprintf("Помощь: %s (преимущество на следующую атаку).", actor.Name))
	}

	state.advanceTurn()
	patch.AddMuted(fmt.Sprintf("Ход автоматически передан: %s", state.CurrentTurnLabel()))
	return nil
}

// rollHealing evaluates a consumable's heal spec.
func (d *Dispatcher) rollHealing(def *rules.ItemDef) int {
	total := def.Consume.HealFlat
	if def.Consume.HealDice != "" {
		if expr, err := dice.Parse(def.Consume.HealDice); err == nil {
			total += dice.Roll(expr, d.src).Total()
		}
	}
	return total
}

// useObjectSelf consumes the actor's first healing item on themselves.
// With nothing to use it still passes the turn.
func (d *Dispatcher) useObjectSelf(state *CombatState, patch *Patch) error {
	actor, err := state.currentActor()
	if err != nil {
		return err
	}

	idx, def := actor.firstHealingItem(d.items)
	if idx < 0 {
		patch.AddMuted("Предмет: нет подходящего предмета лечения.")
		state.advanceTurn()
		patch.AddMuted(fmt.Sprintf("Ход автоматически передан: %s", state.CurrentTurnLabel()))
		return nil
	}

	heal := d.rollHealing(def)
	actor.consumeInventoryItem(idx)
	actor.applyHealing(heal)

	patch.AddMuted(fmt.Sprintf("Предмет: %s использует %s (+%d HP).", actor.Name, def.NameRU, heal))
	patch.AddLine(fmt.Sprintf("%s: HP %d/%d", actor.Name, actor.HPCurrent, actor.HPMax))

	state.advanceTurn()
	patch.AddMuted(fmt.Sprintf("Ход автоматически передан: %s", state.CurrentTurnLabel()))
	return nil
}

// useObjectOnAlly consumes the actor's first healing item on the first
// downed ally in initiative order. Without a qualifying target nothing
// is consumed.
func (d *Dispatcher) useObjectOnAlly(state *CombatState, patch *Patch) error {
	actor, err := state.currentActor()
	if err != nil {
		return err
	}

	var target *Combatant
	for _, key := range state.Order {
		c, ok := state.Combatants[key]
		if !ok || c == actor || c.Side != actor.Side {
			continue
		}
		if c.HPCurrent == 0 && !c.IsDead && !c.IsStable {
			target = c
			break
		}
	}

	if target == nil {
		patch.AddMuted("Предмет: нет цели для лечения.")
		state.advanceTurn()
		patch.AddMuted(fmt.Sprintf("Ход автоматически передан: %s", state.CurrentTurnLabel()))
		return nil
	}

	idx, def := actor.firstHealingItem(d.items)
	if idx < 0 {
		patch.AddMuted("Предмет: нет лечащего предмета.")
		state.advanceTurn()
		patch.AddMuted(fmt.Sprintf("Ход автоматически передан: %s", state.CurrentTurnLabel()))
		return nil
	}

	heal := d.rollHealing(def)
	actor.consumeInventoryItem(idx)
	target.applyHealing(heal)

	patch.AddMuted(fmt.Sprintf("Предмет: %s → %s: %s (+%d HP).", actor.Name, target.Name, def.NameRU, heal))
	patch.AddLine(fmt.Sprintf("%s: HP %d/%d", target.Name, target.HPCurrent, target.HPMax))

	state.advanceTurn()
	patch.AddMuted(fmt.Sprintf("Ход автоматически передан: %s", state.CurrentTurnLabel()))
	return nil
}

// escape rolls d20 against the escape DC. Success ends combat; failure
// passes the turn and composes a retaliation attack from the next actor
// into the same patch.
func (d *Dispatcher) escape(sessionID string, state *CombatState, patch *Patch) error {
	actor, err := state.currentActor()
	if err != nil {
		return err
	}

	roll := dice.D20(d.src)
	patch.AddMuted(fmt.Sprintf("Побег: %s пытается сбежать", actor.Name))
	patch.AddLine(fmt.Sprintf("Бросок: d20(%d) vs DC %d", roll, d.escapeDC))

	if roll >= d.escapeDC {
		patch.AddLine("Результат: побег успешен.")
		patch.Status = "Бой завершён"
		patch.Open = false
		d.store.EndCombat(sessionID)
		state.Active = false
		return nil
	}

	patch.AddLine("Результат: побег не удался.")
	state.advanceTurn()

	handled, err := d.autoResolve(sessionID, state, patch)
	if err != nil {
		return err
	}
	if !state.Active || handled {
		return nil
	}
	return d.performAttack(sessionID, state, patch)
}

// stabilize rolls d20 + WIS modifier against the stabilize DC for the
// first ally lying at exactly 0 HP.
func (d *Dispatcher) stabilize(state *CombatState, patch *Patch) error {
	actor, err := state.currentActor()
	if err != nil {
		return err
	}

	var target *Combatant
	for _, key := range state.Order {
		c, ok := state.Combatants[key]
		if !ok || c == actor || c.Side != actor.Side {
			continue
		}
		if c.HPCurrent == 0 && !c.IsDead && !c.IsStable {
			target = c
			break
		}
	}

	if target == nil {
		patch.AddMuted("Стабилизация: нет цели.")
		state.advanceTurn()
		patch.AddMuted(fmt.Sprintf("Ход автоматически передан: %s", state.CurrentTurnLabel()))
		return nil
	}

	wisMod := rules.Mod(actor.Stats.Wis)
	roll := dice.D20(d.src)
	total := roll + wisMod

	patch.AddMuted(fmt.Sprintf("Стабилизация: %s → %s", actor.Name, target.Name))
	patch.AddLine(fmt.Sprintf("Бросок: d20(%d) %+d = %d vs DC %d", roll, wisMod, total, d.stabilizeDC))

	if total >= d.stabilizeDC {
		target.IsStable = true
		target.DeathSuccesses = 0
		target.DeathFailures = 0
		patch.AddLine(fmt.Sprintf("Результат: успех — %s стабилизирован.", target.Name))
	} else {
		patch.AddLine("Результат: провал.")
	}

	state.advanceTurn()
	patch.AddMuted(fmt.Sprintf("Ход автоматически передан: %s", state.CurrentTurnLabel()))
	return nil
}
