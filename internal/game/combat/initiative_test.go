package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/skirmish-engine/skirmish/internal/game/combat"
)

// TestBuildInitiativeOrder verifies the full tie-break chain: initiative
// descending, PCs before enemies, case-insensitive name, then key.
func TestBuildInitiativeOrder(t *testing.T) {
	combatants := map[string]*combat.Combatant{
		"enemy_1": {Key: "enemy_1", Name: "Разбойник", Side: combat.SideEnemy, Initiative: 15, HPCurrent: 10, HPMax: 10},
		"pc_2":    {Key: "pc_2", Name: "Жрец", Side: combat.SidePC, Initiative: 15, HPCurrent: 10, HPMax: 10},
		"pc_1":    {Key: "pc_1", Name: "Воин", Side: combat.SidePC, Initiative: 18, HPCurrent: 10, HPMax: 10},
		"enemy_2": {Key: "enemy_2", Name: "волк", Side: combat.SideEnemy, Initiative: 15, HPCurrent: 10, HPMax: 10},
		"enemy_3": {Key: "enemy_3", Name: "Волк", Side: combat.SideEnemy, Initiative: 15, HPCurrent: 10, HPMax: 10},
	}

	order := combat.BuildInitiativeOrder(combatants)

	require.Equal(t, []string{"pc_1", "pc_2", "enemy_2", "enemy_3", "enemy_1"}, order,
		"highest initiative first; at ties PCs lead, then name, then key")
}

// TestBuildInitiativeOrder_Idempotent verifies re-sorting a roster yields
// the same order every time.
func TestBuildInitiativeOrder_Idempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(rt, "n")
		combatants := make(map[string]*combat.Combatant, n)
		for i := 0; i < n; i++ {
			key := rapid.StringMatching(`[a-z]{1,6}_[0-9]`).Draw(rt, "key")
			side := combat.SidePC
			if rapid.Bool().Draw(rt, "enemy") {
				side = combat.SideEnemy
			}
			combatants[key] = &combat.Combatant{
				Key:        key,
				Name:       rapid.StringMatching(`[А-Яа-я]{1,5}`).Draw(rt, "name"),
				Side:       side,
				Initiative: rapid.IntRange(-5, 25).Draw(rt, "initiative"),
			}
		}

		first := combat.BuildInitiativeOrder(combatants)
		second := combat.BuildInitiativeOrder(combatants)
		require.Equal(rt, first, second, "the order must be deterministic")
		assert.Len(rt, first, len(combatants), "every combatant gets a slot")
	})
}
