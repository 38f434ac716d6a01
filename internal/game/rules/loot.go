package rules

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/skirmish-engine/skirmish/internal/game/dice"
)

// LootDrop is one possible drop from a loot table.
type LootDrop struct {
	ItemDef string  `yaml:"item_def"`
	Chance  float64 `yaml:"chance"`
	Qty     int     `yaml:"qty"`
}

// LootTable is an ordered list of independent drop chances.
type LootTable struct {
	Drops []LootDrop `yaml:"drops"`
}

// LootItem is one rolled drop: a def key and a quantity.
type LootItem struct {
	Def string
	Qty int
}

// DefaultLootTable is the fallback table for enemies without their own.
var DefaultLootTable = LootTable{
	Drops: []LootDrop{
		{ItemDef: "healing_potion", Chance: 0.30, Qty: 1},
		{ItemDef: "silver_ring", Chance: 0.15, Qty: 1},
		{ItemDef: "quest_key", Chance: 0.60, Qty: 1},
	},
}

// EnemyLootTables maps enemy keys to their drop tables.
var EnemyLootTables = map[string]LootTable{
	"band1": {
		Drops: []LootDrop{
			{ItemDef: "dagger", Chance: 0.45, Qty: 1},
			{ItemDef: "longsword", Chance: 0.35, Qty: 1},
			{ItemDef: "healing_potion", Chance: 0.40, Qty: 1},
			{ItemDef: "silver_ring", Chance: 0.10, Qty: 1},
		},
	},
}

// chanceScale converts fractional drop chances into Intn draws.
const chanceScale = 10000

// RollLoot rolls the loot table registered for enemyKey, falling back to
// DefaultLootTable. Each drop is an independent chance.
//
// Precondition: src must be non-nil. Pass a seeded source for
// deterministic results.
func RollLoot(enemyKey string, src dice.Source) []LootItem {
	return RollLootFrom(lookupLootTable(enemyKey), src)
}

// RollLootFrom rolls an explicit loot table.
//
// Precondition: src must be non-nil.
func RollLootFrom(table LootTable, src dice.Source) []LootItem {
	var loot []LootItem
	for _, drop := range table.Drops {
		threshold := int(drop.Chance*chanceScale + 0.5)
		if threshold <= 0 {
			continue
		}
		if src.Intn(chanceScale) < threshold {
			qty := drop.Qty
			if qty < 1 {
				qty = 1
			}
			loot = append(loot, LootItem{Def: drop.ItemDef, Qty: qty})
		}
	}
	return loot
}

func lookupLootTable(enemyKey string) LootTable {
	if table, ok := EnemyLootTables[enemyKey]; ok {
		return table
	}
	return DefaultLootTable
}

// LootStacks materializes rolled loot into inventory entries with fresh
// instance ids. Unknown def keys are kept with the key as display name.
//
// Precondition: table must be non-nil.
func LootStacks(loot []LootItem, table *ItemTable) []ItemStack {
	stacks := make([]ItemStack, 0, len(loot))
	for _, item := range loot {
		name := item.Def
		if def := table.Get(item.Def); def != nil {
			name = def.NameRU
		}
		stacks = append(stacks, ItemStack{
			ID:   uuid.NewString(),
			Name: name,
			Qty:  item.Qty,
			Def:  item.Def,
		})
	}
	return stacks
}

// lootTablesFile is the YAML shape of a loot table override file.
type lootTablesFile struct {
	Default *LootTable           `yaml:"default"`
	Enemies map[string]LootTable `yaml:"enemies"`
}

// LoadLootTables reads loot table overrides from a YAML file and merges
// them into DefaultLootTable and EnemyLootTables.
//
// Postcondition: tables named in the file replace the built-ins; the rest
// stay untouched.
func LoadLootTables(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading loot tables %q: %w", path, err)
	}
	var file lootTablesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing loot tables %q: %w", path, err)
	}
	if file.Default != nil {
		DefaultLootTable = *file.Default
	}
	for key, table := range file.Enemies {
		EnemyLootTables[key] = table
	}
	return nil
}
