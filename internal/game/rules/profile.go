package rules

import "strings"

// Stats holds the six core attributes on the 0..100 scale (50 = average).
type Stats struct {
	Str int `yaml:"str"`
	Dex int `yaml:"dex"`
	Con int `yaml:"con"`
	Int int `yaml:"int"`
	Wis int `yaml:"wis"`
	Cha int `yaml:"cha"`
}

// DefaultStats returns an all-average stat block.
func DefaultStats() Stats {
	return Stats{Str: 50, Dex: 50, Con: 50, Int: 50, Wis: 50, Cha: 50}
}

// Mod converts a 0..100 attribute into a roll modifier: floor((stat-50)/20).
// 50 → 0, 90 → +2, 30 → -1.
func Mod(stat int) int {
	diff := stat - 50
	if diff < 0 && diff%20 != 0 {
		return diff/20 - 1
	}
	return diff / 20
}

// ItemStack is one ordered inventory entry: an item instance (or stack)
// owned by a combatant.
type ItemStack struct {
	ID   string `yaml:"id"`   // instance id, referenced by the equip map
	Name string `yaml:"name"` // display name; def lookup fallback
	Qty  int    `yaml:"qty"`
	Def  string `yaml:"def"` // item-def key into the ItemTable
}

// AttackProfile is the derived offensive profile for one combatant.
type AttackProfile struct {
	AttackBonus int
	DamageDice  string
	DamageBonus int
	DamageType  string
	Properties  []string
	Mastery     string
}

const (
	unarmedDice = "1d4"
	unarmedType = "bludgeoning"

	baseAC = 12
	minAC  = 10
	maxAC  = 25

	// mediumDexCapDefault caps the DEX contribution of medium armor
	// unless the item overrides it.
	mediumDexCapDefault = 2
)

func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

// defFor resolves the item definition for an inventory entry: by def key
// first, by case-insensitive display name second.
func defFor(table *ItemTable, entry *ItemStack) *ItemDef {
	if entry == nil {
		return nil
	}
	if key := strings.TrimSpace(entry.Def); key != "" {
		if d := table.Get(key); d != nil {
			return d
		}
	}
	return table.GetByName(entry.Name)
}

func indexByID(inventory []ItemStack) map[string]*ItemStack {
	byID := make(map[string]*ItemStack, len(inventory))
	for i := range inventory {
		id := strings.ToLower(strings.TrimSpace(inventory[i].ID))
		if id != "" {
			byID[id] = &inventory[i]
		}
	}
	return byID
}

func equippedEntry(equip map[Slot]string, byID map[string]*ItemStack, slot Slot) *ItemStack {
	id := strings.ToLower(strings.TrimSpace(equip[slot]))
	if id == "" {
		return nil
	}
	return byID[id]
}

// ComputeAttackProfile derives the attack bonus, damage dice, and damage
// bonus from stats, inventory, and the equip map.
//
// Weapon slot priority: main hand, then ranged, then off hand; no weapon
// means an unarmed 1d4 bludgeoning fallback. The ability modifier is STR,
// max(STR,DEX) for finesse weapons, and DEX for ammunition weapons or the
// ranged slot. Attack bonus and damage bonus both equal the chosen
// modifier.
//
// Precondition: table must be non-nil.
func ComputeAttackProfile(stats Stats, inventory []ItemStack, equip map[Slot]string, table *ItemTable) AttackProfile {
	strMod := Mod(stats.Str)
	dexMod := Mod(stats.Dex)

	byID := indexByID(inventory)

	var chosenSlot Slot
	var chosen *ItemStack
	for _, slot := range WeaponSlots {
		if entry := equippedEntry(equip, byID, slot); entry != nil {
			chosenSlot = slot
			chosen = entry
			break
		}
	}

	var weapon *WeaponStats
	if def := defFor(table, chosen); def != nil && def.Equip != nil {
		weapon = def.Equip.Weapon
	}

	if weapon == nil {
		return AttackProfile{
			AttackBonus: strMod,
			DamageDice:  unarmedDice,
			DamageBonus: strMod,
			DamageType:  unarmedType,
		}
	}

	var mod int
	switch {
	case weapon.HasProperty("ammunition") || chosenSlot == SlotRanged:
		mod = dexMod
	case weapon.HasProperty("finesse"):
		mod = max(strMod, dexMod)
	default:
		mod = strMod
	}

	return AttackProfile{
		AttackBonus: mod,
		DamageDice:  weapon.DamageDice,
		DamageBonus: mod,
		DamageType:  weapon.DamageType,
		Properties:  weapon.Properties,
		Mastery:     weapon.Mastery,
	}
}

// ComputeAC derives armor class from stats, inventory, and the equip map.
//
// Base is 12 + DEX modifier. Equipped body armor overrides the base:
// light and clothing add the DEX modifier, medium caps it (default cap 2,
// item-overridable), heavy ignores DEX. An off-hand shield adds its flat
// bonus. The result is clamped to [10, 25].
//
// Precondition: table must be non-nil.
func ComputeAC(stats Stats, inventory []ItemStack, equip map[Slot]string, table *ItemTable) int {
	dexMod := Mod(stats.Dex)
	ac := baseAC + dexMod

	byID := indexByID(inventory)

	if armor := defFor(table, equippedEntry(equip, byID, SlotBody)); armor != nil &&
		armor.Equip != nil && armor.Equip.BaseAC > 0 {
		spec := armor.Equip
		switch spec.ArmorCategory {
		case ArmorLight, ArmorClothing:
			ac = spec.BaseAC + dexMod
		case ArmorMedium:
			cap := mediumDexCapDefault
			if spec.DexCap != nil {
				cap = *spec.DexCap
			}
			ac = spec.BaseAC + min(dexMod, cap)
		default: // heavy and anything unrecognized ignore DEX
			ac = spec.BaseAC
		}
	}

	if shield := defFor(table, equippedEntry(equip, byID, SlotOffHand)); shield != nil &&
		shield.Equip != nil && shield.Equip.GrantsACBonus != 0 {
		ac += shield.Equip.GrantsACBonus
	}

	return clamp(ac, minAC, maxAC)
}
