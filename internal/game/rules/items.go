package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/skirmish-engine/skirmish/internal/game/dice"
)

// Kind constants for ItemDef.Kind.
const (
	KindWeapon     = "weapon"
	KindArmor      = "armor"
	KindShield     = "shield"
	KindAccessory  = "accessory"
	KindConsumable = "consumable"
	KindQuest      = "quest"
	KindMisc       = "misc"
)

// validKinds is the set of valid ItemDef kinds.
var validKinds = map[string]bool{
	KindWeapon:     true,
	KindArmor:      true,
	KindShield:     true,
	KindAccessory:  true,
	KindConsumable: true,
	KindQuest:      true,
	KindMisc:       true,
}

// Armor category constants for EquipSpec.ArmorCategory.
const (
	ArmorLight    = "light"
	ArmorMedium   = "medium"
	ArmorHeavy    = "heavy"
	ArmorClothing = "clothing"
)

// WeaponStats describes the offensive side of an equippable weapon.
type WeaponStats struct {
	DamageDice  string   `yaml:"damage_dice"`
	DamageType  string   `yaml:"damage_type"`
	Properties  []string `yaml:"properties"`
	RangeNormal int      `yaml:"range_normal"`
	RangeLong   int      `yaml:"range_long"`
	Mastery     string   `yaml:"mastery"`
}

// HasProperty reports whether the weapon carries the given property
// (case-insensitive).
func (w *WeaponStats) HasProperty(name string) bool {
	for _, p := range w.Properties {
		if strings.EqualFold(p, name) {
			return true
		}
	}
	return false
}

// EquipSpec describes where and how an item can be equipped and what it
// contributes defensively.
type EquipSpec struct {
	AllowedSlots  []Slot       `yaml:"allowed_slots"`
	TwoHanded     bool         `yaml:"two_handed"`
	ArmorCategory string       `yaml:"armor_category"`
	BaseAC        int          `yaml:"base_ac"` // 0 = item carries no base AC
	DexCap        *int         `yaml:"dex_cap"` // nil = category default
	GrantsACBonus int          `yaml:"grants_ac_bonus"`
	StrReq        int          `yaml:"str_req"`
	Weapon        *WeaponStats `yaml:"weapon"`
}

// ConsumeSpec describes what consuming an item does. An item heals when
// HealDice parses to a non-zero roll or HealFlat is non-zero.
type ConsumeSpec struct {
	HealDice string `yaml:"heal_dice"`
	HealFlat int    `yaml:"heal_flat"`
}

// MaxHeal returns the highest total healing this spec can produce.
// Returns 0 for a spec that heals nothing.
func (c *ConsumeSpec) MaxHeal() int {
	total := c.HealFlat
	if c.HealDice != "" {
		if expr, err := dice.Parse(c.HealDice); err == nil {
			total += expr.Max()
		}
	}
	return total
}

// Heals reports whether consuming the item restores any hit points.
func (c *ConsumeSpec) Heals() bool {
	return c != nil && c.MaxHeal() > 0
}

// ItemDef defines the static properties of an item.
type ItemDef struct {
	Key           string       `yaml:"key"`
	NameRU        string       `yaml:"name_ru"`
	Kind          string       `yaml:"kind"`
	Stackable     bool         `yaml:"stackable"`
	MaxStack      int          `yaml:"max_stack"`
	Equip         *EquipSpec   `yaml:"equip"`
	Consume       *ConsumeSpec `yaml:"consume"`
	DescriptionRU string       `yaml:"description_ru"`
}

// IsEquipable reports whether the item can occupy at least one slot.
func (d *ItemDef) IsEquipable() bool {
	return d.Equip != nil && len(d.Equip.AllowedSlots) > 0
}

// CanEquipTo reports whether the item may be equipped to slot.
func (d *ItemDef) CanEquipTo(slot Slot) bool {
	if d.Equip == nil {
		return false
	}
	for _, s := range d.Equip.AllowedSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// Validate checks that the ItemDef satisfies its invariants.
//
// Postcondition: returns nil iff key, name, and kind are valid, stack and
// consume constraints hold, and any weapon damage dice parse.
func (d *ItemDef) Validate() error {
	if d.Key == "" {
		return fmt.Errorf("item: key must not be empty")
	}
	if d.NameRU == "" {
		return fmt.Errorf("item %q: name_ru must not be empty", d.Key)
	}
	if !validKinds[d.Kind] {
		return fmt.Errorf("item %q: unknown kind %q", d.Key, d.Kind)
	}
	if d.Stackable && d.MaxStack < 1 {
		return fmt.Errorf("item %q: max_stack must be >= 1 for stackable items", d.Key)
	}
	if d.Equip != nil && d.Equip.Weapon != nil {
		if _, err := dice.Parse(d.Equip.Weapon.DamageDice); err != nil {
			return fmt.Errorf("item %q: bad damage dice: %w", d.Key, err)
		}
	}
	if d.Consume != nil && d.Consume.HealDice != "" {
		if _, err := dice.Parse(d.Consume.HealDice); err != nil {
			return fmt.Errorf("item %q: bad heal dice: %w", d.Key, err)
		}
	}
	return nil
}

// ItemTable is a read-only item lookup keyed by item-def key.
type ItemTable struct {
	byKey    map[string]*ItemDef
	byNameCF map[string]*ItemDef
}

// NewItemTable builds a table from defs.
//
// Precondition: every def must pass Validate.
// Postcondition: later defs with duplicate keys override earlier ones.
func NewItemTable(defs []*ItemDef) (*ItemTable, error) {
	t := &ItemTable{
		byKey:    make(map[string]*ItemDef, len(defs)),
		byNameCF: make(map[string]*ItemDef, len(defs)),
	}
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		t.byKey[d.Key] = d
		t.byNameCF[strings.ToLower(d.NameRU)] = d
	}
	return t, nil
}

// Get returns the item definition for key, or nil.
func (t *ItemTable) Get(key string) *ItemDef {
	return t.byKey[key]
}

// GetByName returns the item definition whose Russian name matches name
// case-insensitively, or nil. Used as a fallback for legacy inventory
// entries that carry a display name but no def key.
func (t *ItemTable) GetByName(name string) *ItemDef {
	return t.byNameCF[strings.ToLower(strings.TrimSpace(name))]
}

// LoadItems reads all *.yaml and *.yml files from dir, parses each as a
// list of ItemDefs, validates them, and returns the collected slice.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid ItemDefs or the first encountered error.
func LoadItems(dir string) ([]*ItemDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading items dir %q: %w", dir, err)
	}

	var items []*ItemDef
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading item file %q: %w", path, err)
		}
		var defs []*ItemDef
		if err := yaml.Unmarshal(data, &defs); err != nil {
			return nil, fmt.Errorf("parsing item file %q: %w", path, err)
		}
		for _, d := range defs {
			if err := d.Validate(); err != nil {
				return nil, fmt.Errorf("invalid item in %q: %w", path, err)
			}
		}
		items = append(items, defs...)
	}
	return items, nil
}
