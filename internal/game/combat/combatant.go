// Package combat implements the per-session turn-based combat engine:
// state lifecycle, initiative, attack resolution, death saves, and the
// action dispatcher that turns player actions into state mutations and
// UI patches.
package combat

import "github.com/skirmish-engine/skirmish/internal/game/rules"

// Side tags a combatant as player-controlled or hostile.
const (
	SidePC    = "pc"
	SideEnemy = "enemy"
)

// Combatant is one participant of a combat encounter.
type Combatant struct {
	Key        string
	Name       string
	Side       string
	HPCurrent  int
	HPMax      int
	AC         int
	Initiative int

	// One-turn flags, cleared when this combatant's next turn begins.
	// The help flag instead persists until the next attack consumes it.
	DodgeActive         bool
	DashActive          bool
	DisengageActive     bool
	UseObjectActive     bool
	HelpAttackAdvantage bool

	// Death save bookkeeping, only meaningful for PCs at 0 HP.
	DeathSuccesses int
	DeathFailures  int
	IsDead         bool
	IsStable       bool

	Stats     rules.Stats
	Inventory []rules.ItemStack
	Equip     map[rules.Slot]string
}

// Alive reports whether the combatant has hit points left.
func (c *Combatant) Alive() bool {
	return c.HPCurrent > 0
}

// Downed reports whether the combatant is a PC at 0 HP who is still
// fighting for their life (not dead, not stable).
func (c *Combatant) Downed() bool {
	return c.Side == SidePC && c.HPCurrent <= 0 && !c.IsDead && !c.IsStable
}

// clearTurnFlags resets the one-turn flags at the start of this
// combatant's turn. HelpAttackAdvantage is not cleared here: it lasts
// until the combatant's next attack consumes it.
func (c *Combatant) clearTurnFlags() {
	c.DodgeActive = false
	c.DashActive = false
	c.DisengageActive = false
	c.UseObjectActive = false
}

// clampCounters keeps death save counters inside [0,3].
func (c *Combatant) clampCounters() {
	c.DeathSuccesses = clampInt(c.DeathSuccesses, 0, 3)
	c.DeathFailures = clampInt(c.DeathFailures, 0, 3)
}

// applyHealing raises hit points by amount, capped at HPMax. Reviving
// from 0 HP clears stability and both death counters.
//
// Postcondition: HPCurrent stays in [0, HPMax].
func (c *Combatant) applyHealing(amount int) {
	if amount <= 0 {
		return
	}
	wasDown := c.HPCurrent <= 0
	c.HPCurrent = clampInt(c.HPCurrent+amount, 0, c.HPMax)
	if wasDown && c.HPCurrent > 0 {
		c.IsStable = false
		c.DeathSuccesses = 0
		c.DeathFailures = 0
	}
}

// applyDamage lowers hit points by amount, floored at 0.
//
// Postcondition: HPCurrent stays in [0, HPMax].
func (c *Combatant) applyDamage(amount int) {
	if amount <= 0 {
		return
	}
	c.HPCurrent = clampInt(c.HPCurrent-amount, 0, c.HPMax)
}

// attackProfile derives the combatant's offensive numbers from stats and
// equipment.
func (c *Combatant) attackProfile(items *rules.ItemTable) rules.AttackProfile {
	return rules.ComputeAttackProfile(c.Stats, c.Inventory, c.Equip, items)
}

// healingDef resolves the item definition for an inventory entry if it
// is a healing consumable with stock left.
func healingDef(items *rules.ItemTable, entry *rules.ItemStack) *rules.ItemDef {
	if entry.Qty < 1 {
		return nil
	}
	def := items.Get(entry.Def)
	if def == nil {
		def = items.GetByName(entry.Name)
	}
	if def == nil || !def.Consume.Heals() {
		return nil
	}
	return def
}

// firstHealingItem finds the first inventory stack, in stored order,
// whose definition heals. Returns the index and the definition, or
// (-1, nil) when the combatant carries nothing healing.
func (c *Combatant) firstHealingItem(items *rules.ItemTable) (int, *rules.ItemDef) {
	for i := range c.Inventory {
		if def := healingDef(items, &c.Inventory[i]); def != nil {
			return i, def
		}
	}
	return -1, nil
}

// weakestHealingItem finds the inventory stack with the lowest maximum
// healing among consumables that heal. The auto-resolve loop uses it so
// a downed combatant never wastes a strong potion.
func (c *Combatant) weakestHealingItem(items *rules.ItemTable) (int, *rules.ItemDef) {
	best := -1
	var bestDef *rules.ItemDef
	for i := range c.Inventory {
		def := healingDef(items, &c.Inventory[i])
		if def == nil {
			continue
		}
		if best < 0 || def.Consume.MaxHeal() < bestDef.Consume.MaxHeal() {
			best = i
			bestDef = def
		}
	}
	return best, bestDef
}

// consumeInventoryItem decrements the stack at index, removing it when
// the quantity reaches zero.
func (c *Combatant) consumeInventoryItem(index int) {
	if index < 0 || index >= len(c.Inventory) {
		return
	}
	c.Inventory[index].Qty--
	if c.Inventory[index].Qty < 1 {
		c.Inventory = append(c.Inventory[:index], c.Inventory[index+1:]...)
	}
}

func clampInt(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
