package combat_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skirmish-engine/skirmish/internal/game/combat"
	"github.com/skirmish-engine/skirmish/internal/game/rules"
)

// TestSnapshot_RoundTrip verifies serialize → restore preserves the
// combat, including death save state and inventory.
func TestSnapshot_RoundTrip(t *testing.T) {
	store := combat.NewStore()
	state := store.StartCombat("s")
	store.UpsertPC("s", combat.PCSpec{
		Key: "pc_1", Name: "Воин", HP: 0, HPMax: 20, AC: 14, Initiative: 12,
		Stats:     rules.DefaultStats(),
		Inventory: []rules.ItemStack{{ID: "p1", Name: "Зелье лечения", Qty: 2, Def: "healing_potion"}},
	})
	store.AddEnemy("s", "enemy_1", "Разбойник", 10, 12)
	state.Combatants["pc_1"].DeathFailures = 2
	state.RoundNo = 3
	state.TurnIndex = 1

	payload := store.Snapshot("s")
	require.NotNil(t, payload)
	assert.Equal(t, 1, payload.V)
	assert.Equal(t, state.StartedAt, payload.StartedAt)

	// The payload survives a JSON round trip, as the host persists it.
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"started_at_iso"`)
	var decoded combat.StatePayload
	require.NoError(t, json.Unmarshal(data, &decoded))

	other := combat.NewStore()
	restored, err := other.Restore("s", &decoded)
	require.NoError(t, err)
	require.NotNil(t, restored)

	assert.Equal(t, 3, restored.RoundNo)
	assert.Equal(t, 1, restored.TurnIndex)
	assert.Equal(t, state.Order, restored.Order)

	pc := restored.Combatants["pc_1"]
	require.NotNil(t, pc)
	assert.Equal(t, 0, pc.HPCurrent)
	assert.Equal(t, 2, pc.DeathFailures)
	require.Len(t, pc.Inventory, 1)
	assert.Equal(t, 2, pc.Inventory[0].Qty)
}

// TestSnapshot_NoActiveCombat verifies nil snapshots for missing sessions.
func TestSnapshot_NoActiveCombat(t *testing.T) {
	store := combat.NewStore()
	assert.Nil(t, store.Snapshot("s"))
}

// TestStateFromPayload_RebuildsBrokenOrder verifies missing, duplicated,
// or stale order keys trigger a rebuild from initiative.
func TestStateFromPayload_RebuildsBrokenOrder(t *testing.T) {
	payload := &combat.StatePayload{
		V:      1,
		Active: true,
		Order:  []string{"pc_1", "pc_1", "ghost"},
		Combatants: map[string]combat.CombatantPayload{
			"pc_1":    {Key: "pc_1", Name: "Воин", Side: combat.SidePC, HPCurrent: 5, HPMax: 20, Initiative: 3},
			"enemy_1": {Key: "enemy_1", Name: "Разбойник", Side: combat.SideEnemy, HPCurrent: 10, HPMax: 10},
		},
		TurnIndex: 7,
	}

	state, err := combat.StateFromPayload(payload)
	require.NoError(t, err)

	assert.Equal(t, []string{"pc_1", "enemy_1"}, state.Order,
		"a broken order is rebuilt from initiative")
	assert.Equal(t, 0, state.TurnIndex, "an out-of-range index resets to 0")
	assert.Equal(t, 1, state.RoundNo, "a missing round normalizes to 1")
}

// TestStateFromPayload_ClampsCombatantState verifies HP and death
// counters are normalized on load.
func TestStateFromPayload_ClampsCombatantState(t *testing.T) {
	payload := &combat.StatePayload{
		Active: true,
		Combatants: map[string]combat.CombatantPayload{
			"pc_1": {
				Key: "pc_1", Side: combat.SidePC,
				HPCurrent: 99, HPMax: 20, DeathFailures: 7, DeathSuccesses: -2,
			},
		},
	}

	state, err := combat.StateFromPayload(payload)
	require.NoError(t, err)

	pc := state.Combatants["pc_1"]
	assert.Equal(t, 20, pc.HPCurrent, "HP clamps to the max")
	assert.Equal(t, 3, pc.DeathFailures, "counters clamp to [0,3]")
	assert.Equal(t, 0, pc.DeathSuccesses)
}

// TestStateFromPayload_RejectsBadSide verifies side validation.
func TestStateFromPayload_RejectsBadSide(t *testing.T) {
	payload := &combat.StatePayload{
		Active: true,
		Combatants: map[string]combat.CombatantPayload{
			"x": {Key: "x", Side: "neutral", HPMax: 10},
		},
	}
	_, err := combat.StateFromPayload(payload)
	assert.Error(t, err)

	_, err = combat.StateFromPayload(nil)
	assert.Error(t, err, "a nil payload is invalid")
}

// TestRestore_InactivePayloadClearsSession verifies restoring an ended
// combat removes any stale session state.
func TestRestore_InactivePayloadClearsSession(t *testing.T) {
	store := combat.NewStore()
	store.StartCombat("s")

	state, err := store.Restore("s", &combat.StatePayload{Active: false})
	require.NoError(t, err)
	assert.Nil(t, state)
	assert.Nil(t, store.Get("s"), "the stale combat is cleared")
}
