package combat

import "fmt"

// applyDeathSave mutates the downed combatant according to one d20 roll
// and appends the outcome lines to the patch.
//
// Rules: 20 revives at 1 HP and clears all death state; 1 adds two
// failures; 10+ adds one success; anything else adds one failure. On a
// non-20 roll, three failures kill and three successes stabilize.
//
// Precondition: c.Downed() is true; roll is in [1,20].
// Postcondition: both counters stay in [0,3].
func applyDeathSave(c *Combatant, roll int, patch *Patch) {
	switch {
	case roll == 20:
		c.HPCurrent = clampInt(1, 0, c.HPMax)
		c.IsStable = false
		c.DeathSuccesses = 0
		c.DeathFailures = 0
		patch.AddLine(fmt.Sprintf("Спасбросок смерти: %s — d20(20): критический успех, возвращается в бой с 1 HP.", c.Name))
		return
	case roll == 1:
		c.DeathFailures += 2
		c.clampCounters()
		patch.AddLine(fmt.Sprintf("Спасбросок смерти: %s — d20(1): критический провал, два провала разом (%d/3).", c.Name, c.DeathFailures))
	case roll >= 10:
		c.DeathSuccesses++
		c.clampCounters()
		patch.AddLine(fmt.Sprintf("Спасбросок смерти: %s — d20(%d): успех (%d/3).", c.Name, roll, c.DeathSuccesses))
	default:
		c.DeathFailures++
		c.clampCounters()
		patch.AddLine(fmt.Sprintf("Спасбросок смерти: %s — d20(%d): провал (%d/3).", c.Name, roll, c.DeathFailures))
	}

	if c.DeathFailures >= 3 {
		c.IsDead = true
		patch.AddLine(fmt.Sprintf("%s умирает.", c.Name))
	} else if c.DeathSuccesses >= 3 {
		c.IsStable = true
		patch.AddLine(fmt.Sprintf("%s стабилизирован.", c.Name))
	}
}

// applyDownedHit registers a hit on an already-downed combatant as death
// save failures: one for a normal hit, two for a crit.
func applyDownedHit(c *Combatant, crit bool, patch *Patch) {
	if crit {
		c.DeathFailures += 2
		c.clampCounters()
		patch.AddLine(fmt.Sprintf("Попадание по лежащему: %s получает два провала спасброска (%d/3).", c.Name, c.DeathFailures))
	} else {
		c.DeathFailures++
		c.clampCounters()
		patch.AddLine(fmt.Sprintf("Попадание по лежащему: %s получает провал спасброска (%d/3).", c.Name, c.DeathFailures))
	}
	if c.DeathFailures >= 3 {
		c.IsDead = true
		patch.AddLine(fmt.Sprintf("%s умирает.", c.Name))
	}
}
