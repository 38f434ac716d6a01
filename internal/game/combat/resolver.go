package combat

import "fmt"

// AttackResolution is the immutable outcome of one attack roll.
type AttackResolution struct {
	D20Roll     int
	AttackBonus int
	TargetAC    int
	TotalToHit  int
	IsHit       bool
	IsCrit      bool
	DamageRoll  int
	DamageBonus int
	TotalDamage int
}

// RolledDamage returns the dice portion of the damage, doubled on a
// crit, before the bonus is added.
func (r AttackResolution) RolledDamage() int {
	if r.IsCrit {
		return r.DamageRoll * 2
	}
	return r.DamageRoll
}

// ResolveAttackRoll turns raw roll inputs into a hit/crit/damage outcome.
// A natural 20 always hits and crits; a natural 1 always misses;
// otherwise the attack hits when roll+bonus meets the target AC. A miss
// deals 0 damage; a hit deals the (crit-doubled) damage roll plus the
// damage bonus, floored at 0.
//
// Precondition: d20Roll in [1,20], targetAC >= 0, damageRoll >= 0.
// Out-of-range inputs return ErrValidation — never silently clamped,
// since masking them would hide RNG bugs.
func ResolveAttackRoll(d20Roll, attackBonus, targetAC, damageRoll, damageBonus int) (AttackResolution, error) {
	if d20Roll < 1 || d20Roll > 20 {
		return AttackResolution{}, fmt.Errorf("%w: d20 roll %d outside [1,20]", ErrValidation, d20Roll)
	}
	if targetAC < 0 {
		return AttackResolution{}, fmt.Errorf("%w: target AC %d is negative", ErrValidation, targetAC)
	}
	if damageRoll < 0 {
		return AttackResolution{}, fmt.Errorf("%w: damage roll %d is negative", ErrValidation, damageRoll)
	}

	res := AttackResolution{
		D20Roll:     d20Roll,
		AttackBonus: attackBonus,
		TargetAC:    targetAC,
		TotalToHit:  d20Roll + attackBonus,
		DamageRoll:  damageRoll,
		DamageBonus: damageBonus,
	}
	res.IsCrit = d20Roll == 20
	res.IsHit = res.IsCrit || (d20Roll != 1 && res.TotalToHit >= targetAC)

	if res.IsHit {
		res.TotalDamage = max(0, res.RolledDamage()+damageBonus)
	}
	return res, nil
}
