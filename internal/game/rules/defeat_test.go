package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/skirmish-engine/skirmish/internal/game/rules"
)

// TestSeedFromStartedAt verifies the seed is stable and sensitive to the
// timestamp.
func TestSeedFromStartedAt(t *testing.T) {
	a := rules.SeedFromStartedAt("2026-08-29T12:00:00Z")
	b := rules.SeedFromStartedAt("2026-08-29T12:00:00Z")
	c := rules.SeedFromStartedAt("2026-08-29T12:00:01Z")

	assert.Equal(t, a, b, "the same timestamp must always give the same seed")
	assert.NotEqual(t, a, c, "different timestamps must give different seeds")
	assert.Positive(t, a, "adler32 checksums are non-negative")
}

// TestPickDefeatOutcome_WeightMapping verifies the weighted thresholds:
// rolls 1-3 are captured, 4-5 robbed, 6-7 enemies_withdraw, 8 rescued,
// 9 left_for_dead.
func TestPickDefeatOutcome_WeightMapping(t *testing.T) {
	tests := []struct {
		draw int // Intn(9) result; roll = draw + 1
		key  string
	}{
		{0, "captured"},
		{2, "captured"},
		{3, "robbed"},
		{4, "robbed"},
		{5, "enemies_withdraw"},
		{6, "enemies_withdraw"},
		{7, "rescued"},
		{8, "left_for_dead"},
	}
	for _, tc := range tests {
		outcome := rules.PickDefeatOutcome("", &scriptSource{vals: []int{tc.draw}})
		assert.Equal(t, tc.key, outcome.Key, "draw %d", tc.draw)
	}
}

// TestPickDefeatOutcome_Deterministic verifies a nil source picks the same
// outcome for the same combat.
func TestPickDefeatOutcome_Deterministic(t *testing.T) {
	startedAt := "2026-08-29T12:00:00Z"
	first := rules.PickDefeatOutcome(startedAt, nil)
	second := rules.PickDefeatOutcome(startedAt, nil)
	assert.Equal(t, first.Key, second.Key, "repeated picks for one combat must agree")
	assert.NotEmpty(t, first.TitleRU)
	assert.NotEmpty(t, first.DescriptionRU)
}

// TestPickDefeatOutcome_AlwaysValid verifies every pick lands on a pool
// entry with a positive weight.
func TestPickDefeatOutcome_AlwaysValid(t *testing.T) {
	keys := make(map[string]bool, len(rules.DefaultDefeatOutcomes))
	for _, o := range rules.DefaultDefeatOutcomes {
		require.Positive(t, o.Weight, "pool weights must be positive")
		keys[o.Key] = true
	}
	rapid.Check(t, func(rt *rapid.T) {
		startedAt := rapid.StringMatching(`[0-9T:Z-]{1,30}`).Draw(rt, "startedAt")
		outcome := rules.PickDefeatOutcome(startedAt, nil)
		assert.True(rt, keys[outcome.Key], "outcome %q must come from the pool", outcome.Key)
	})
}

// TestRobbedRemovals verifies quest items are protected and the take is
// sorted and capped.
func TestRobbedRemovals(t *testing.T) {
	table := rules.DefaultItemTable()
	inventory := []rules.ItemStack{
		{ID: "zeta", Name: "Кинжал", Qty: 1, Def: "dagger"},
		{ID: "alpha", Name: "Квестовый ключ", Qty: 1, Def: "quest_key"},
		{ID: "beta", Name: "Зелье лечения", Qty: 2, Def: "healing_potion"},
		{ID: "gamma", Name: "Сувенир", Qty: 1},
		{ID: "", Name: "Без идентификатора", Qty: 1},
	}

	removed := rules.RobbedRemovals(inventory, table, 2)
	assert.Equal(t, []string{"beta", "gamma"}, removed,
		"ids are taken in sorted order, quest items and blank ids skipped")

	assert.Equal(t, []string{"beta", "gamma", "zeta"}, rules.RobbedRemovals(inventory, table, 10),
		"a large cap takes every eligible entry")

	assert.Nil(t, rules.RobbedRemovals(inventory, table, 0), "a zero cap takes nothing")
	assert.Nil(t, rules.RobbedRemovals(nil, table, 2), "an empty inventory yields nothing")
}
