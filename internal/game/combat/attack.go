package combat

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/skirmish-engine/skirmish/internal/game/dice"
)

// performAttack resolves one attack by the acting combatant against the
// first living opponent in initiative order.
//
// The attacker's help-advantage and the target's dodge-disadvantage
// cancel each other when both apply; otherwise the matching double roll
// is used. The advantage flag is consumed by the attack regardless of
// the outcome.
func (d *Dispatcher) performAttack(sessionID string, state *CombatState, patch *Patch) error {
	if len(state.Order) == 0 {
		patch.AddMuted("Бой завершён: целей не осталось.")
		patch.Status = "Бой завершён"
		patch.Open = false
		state.Active = false
		d.store.EndCombat(sessionID)
		return nil
	}

	attacker, err := state.currentActor()
	if err != nil {
		return err
	}

	target := state.firstLivingOpponent(attacker.Side)
	if target == nil {
		patch.AddMuted("Бой завершён: целей не осталось.")
		patch.Status = "Бой завершён"
		patch.Open = false
		state.Active = false
		d.store.EndCombat(sessionID)
		return nil
	}

	profile := attacker.attackProfile(d.items)

	advantage := attacker.HelpAttackAdvantage
	disadvantage := target.DodgeActive
	attacker.HelpAttackAdvantage = false
	if advantage && disadvantage {
		advantage, disadvantage = false, false
	}

	patch.AddMuted(fmt.Sprintf("Атака: %s → %s", attacker.Name, target.Name))
	patch.AddLine(fmt.Sprintf("Оружие: %s %s", profile.DamageDice, profile.DamageType))

	var d20Roll int
	switch {
	case advantage:
		a, b := dice.D20(d.src), dice.D20(d.src)
		d20Roll = max(a, b)
		patch.AddMuted(fmt.Sprintf("Преимущество: d20(%d, %d) → %d", a, b, d20Roll))
	case disadvantage:
		a, b := dice.D20(d.src), dice.D20(d.src)
		d20Roll = min(a, b)
		patch.AddMuted(fmt.Sprintf("Помеха: d20(%d, %d) → %d", a, b, d20Roll))
	default:
		d20Roll = dice.D20(d.src)
	}

	damageExpr, err := dice.Parse(profile.DamageDice)
	if err != nil {
		return fmt.Errorf("attack profile of %q: %w", attacker.Key, err)
	}
	damageRoll := dice.Roll(damageExpr, d.src).Total()

	res, err := ResolveAttackRoll(d20Roll, profile.AttackBonus, target.AC, damageRoll, profile.DamageBonus)
	if err != nil {
		return err
	}

	d.logger.Debug("attack resolved",
		zap.String("session", sessionID),
		zap.String("attacker", attacker.Key),
		zap.String("target", target.Key),
		zap.Int("d20", res.D20Roll),
		zap.Bool("hit", res.IsHit),
		zap.Bool("crit", res.IsCrit),
		zap.Int("damage", res.TotalDamage),
	)

	patch.AddLine(fmt.Sprintf("Бросок атаки: d20(%d) + %d = %d vs AC %d",
		res.D20Roll, res.AttackBonus, res.TotalToHit, res.TargetAC))

	switch {
	case res.IsCrit:
		patch.AddLine("Результат: критическое попадание")
	case res.IsHit:
		patch.AddLine("Результат: попадание")
	default:
		patch.AddLine("Результат: промах")
	}

	if res.IsHit {
		patch.AddLine(fmt.Sprintf("Урон: %d + %d = %d", res.RolledDamage(), res.DamageBonus, res.TotalDamage))
		d.applyAttackDamage(target, res, patch)
	} else {
		patch.AddLine("Урон: 0 (промах)")
	}

	if !state.sideAlive(SidePC) || !state.sideAlive(SideEnemy) {
		d.finishCombat(sessionID, state, patch)
		return nil
	}

	state.advanceTurn()
	patch.AddMuted(fmt.Sprintf("Ход автоматически передан: %s", state.CurrentTurnLabel()))
	return nil
}

// applyAttackDamage applies a hit's damage to the target.
//
// Enemies just lose hit points and are reported downed at 0. A PC hit
// while already at 0 HP takes death save failures instead of damage (two
// on a crit). A PC dropped from positive HP lands unconscious at 0 —
// unless the damage alone reaches their HP maximum, which kills outright.
func (d *Dispatcher) applyAttackDamage(target *Combatant, res AttackResolution, patch *Patch) {
	if target.Side == SidePC && target.HPCurrent <= 0 {
		if target.IsDead {
			return
		}
		applyDownedHit(target, res.IsCrit, patch)
		return
	}

	hpBefore := target.HPCurrent
	target.applyDamage(res.TotalDamage)
	patch.AddLine(fmt.Sprintf("%s: HP %d/%d", target.Name, target.HPCurrent, target.HPMax))

	if target.HPCurrent > 0 {
		return
	}

	if target.Side == SideEnemy {
		patch.AddLine(fmt.Sprintf("%s повержен.", target.Name))
		return
	}

	if res.TotalDamage-hpBefore >= target.HPMax {
		target.IsDead = true
		patch.AddLine(fmt.Sprintf("%s погибает на месте.", target.Name))
		return
	}
	target.IsStable = false
	patch.AddLine(fmt.Sprintf("%s без сознания (0 HP).", target.Name))
}
