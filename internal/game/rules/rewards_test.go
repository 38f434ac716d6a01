package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skirmish-engine/skirmish/internal/game/rules"
)

// TestComputeRewards verifies the XP formula, PC id parsing, and leader
// selection.
func TestComputeRewards(t *testing.T) {
	combatants := map[string]rules.RewardCombatant{
		"pc_202": {Side: "pc", HPMax: 20},
		"pc_101": {Side: "pc", HPMax: 24},
		"band1":  {Side: "enemy", HPMax: 18},
	}

	rewards := rules.ComputeRewards("2026-08-29T12:00:00Z", combatants)

	assert.Equal(t, []int64{101, 202}, rewards.PCIDs, "PC ids sorted ascending")
	assert.Equal(t, int64(101), rewards.LeaderID, "the lowest id leads")
	assert.Equal(t, 45, rewards.XPEach, "18 * 5 / 2 = 45 per survivor")
}

// TestComputeRewards_MultipleEnemies verifies XP sums over every defeated
// enemy.
func TestComputeRewards_MultipleEnemies(t *testing.T) {
	combatants := map[string]rules.RewardCombatant{
		"pc_7":   {Side: "pc", HPMax: 20},
		"band1":  {Side: "enemy", HPMax: 18},
		"band2":  {Side: "enemy", HPMax: 10},
		"ignore": {Side: "spectator", HPMax: 99},
	}

	rewards := rules.ComputeRewards("2026-08-29T12:00:00Z", combatants)
	assert.Equal(t, 45+25, rewards.XPEach, "XP adds 18*5/2 and 10*5/2")
	assert.Equal(t, []int64{7}, rewards.PCIDs)
}

// TestComputeRewards_NoPCs verifies an empty roster yields no leader.
func TestComputeRewards_NoPCs(t *testing.T) {
	rewards := rules.ComputeRewards("x", map[string]rules.RewardCombatant{
		"band1": {Side: "enemy", HPMax: 4},
	})
	assert.Empty(t, rewards.PCIDs)
	assert.Zero(t, rewards.LeaderID)
	assert.Equal(t, 10, rewards.XPEach)
}

// TestComputeRewards_MalformedPCKeys verifies keys that are not pc_<id>
// are skipped.
func TestComputeRewards_MalformedPCKeys(t *testing.T) {
	rewards := rules.ComputeRewards("x", map[string]rules.RewardCombatant{
		"pc_abc": {Side: "pc", HPMax: 10},
		"npc_1":  {Side: "pc", HPMax: 10},
		"pc_5":   {Side: "pc", HPMax: 10},
	})
	assert.Equal(t, []int64{5}, rewards.PCIDs, "only well-formed pc_<id> keys count")
}

// TestComputeRewards_Deterministic verifies recomputing the same combat
// rolls the same loot.
func TestComputeRewards_Deterministic(t *testing.T) {
	combatants := map[string]rules.RewardCombatant{
		"pc_1":  {Side: "pc", HPMax: 20},
		"band1": {Side: "enemy", HPMax: 18},
		"band2": {Side: "enemy", HPMax: 12},
	}

	first := rules.ComputeRewards("2026-08-29T12:00:00Z", combatants)
	second := rules.ComputeRewards("2026-08-29T12:00:00Z", combatants)
	require.Equal(t, first.Loot, second.Loot, "loot must replay for the same combat")
	assert.Equal(t, first.XPEach, second.XPEach)
}
