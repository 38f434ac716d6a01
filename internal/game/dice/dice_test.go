package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/skirmish-engine/skirmish/internal/game/dice"
)

// scriptSource returns pre-scripted Intn draws, cycling when exhausted.
type scriptSource struct {
	vals []int
	i    int
}

func (s *scriptSource) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

// TestRollResult_Total verifies the postcondition: Total() == sum(Dice) + Modifier.
func TestRollResult_Total(t *testing.T) {
	r := dice.RollResult{
		Expression: "2d4+2",
		Dice:       []int{3, 1},
		Modifier:   2,
	}
	assert.Equal(t, 6, r.Total(), "Total() must equal sum(Dice)+Modifier")
}

// TestRollResult_String verifies the exact audit string format.
func TestRollResult_String(t *testing.T) {
	r := dice.RollResult{
		Expression: "2d4+2",
		Dice:       []int{3, 1},
		Modifier:   2,
	}
	assert.Equal(t, "2d4+2 → [3 1] +2 = 6", r.String(), "String() must match exact format")
}

// TestRollResult_String_EmptyExpression verifies the precondition panic.
func TestRollResult_String_EmptyExpression(t *testing.T) {
	r := dice.RollResult{Dice: []int{1}}
	assert.Panics(t, func() { _ = r.String() }, "String() must panic on empty Expression")
}

// TestD20_Bounds verifies D20 always returns a value in [1, 20].
func TestD20_Bounds(t *testing.T) {
	src := dice.NewSeededSource(7)
	for i := 0; i < 200; i++ {
		roll := dice.D20(src)
		require.GreaterOrEqual(t, roll, 1, "D20 must be >= 1")
		require.LessOrEqual(t, roll, 20, "D20 must be <= 20")
	}
}

// TestD20Advantage_KeepsHigher verifies the higher of the two rolls wins.
func TestD20Advantage_KeepsHigher(t *testing.T) {
	src := &scriptSource{vals: []int{2, 17}}
	assert.Equal(t, 18, dice.D20Advantage(src), "advantage must keep the higher of 3 and 18")

	src = &scriptSource{vals: []int{17, 2}}
	assert.Equal(t, 18, dice.D20Advantage(src), "advantage must keep the higher regardless of order")
}

// TestD20Disadvantage_KeepsLower verifies the lower of the two rolls wins.
func TestD20Disadvantage_KeepsLower(t *testing.T) {
	src := &scriptSource{vals: []int{2, 17}}
	assert.Equal(t, 3, dice.D20Disadvantage(src), "disadvantage must keep the lower of 3 and 18")
}

// TestSeededSource_Deterministic verifies that two sources built from the
// same seed replay the same Intn sequence.
func TestSeededSource_Deterministic(t *testing.T) {
	a := dice.NewSeededSource(42)
	b := dice.NewSeededSource(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Intn(20), b.Intn(20), "same seed must replay the same stream")
	}
}

// TestSeededSource_PanicsOnNonPositive verifies the Intn precondition.
func TestSeededSource_PanicsOnNonPositive(t *testing.T) {
	src := dice.NewSeededSource(1)
	assert.Panics(t, func() { src.Intn(0) }, "Intn(0) must panic")
	assert.Panics(t, func() { src.Intn(-5) }, "Intn with negative n must panic")
}

// TestCryptoSource_Bounds verifies the crypto source respects [0, n).
func TestCryptoSource_Bounds(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 100; i++ {
		v := src.Intn(6)
		require.GreaterOrEqual(t, v, 0, "Intn must be >= 0")
		require.Less(t, v, 6, "Intn must be < n")
	}
	assert.Panics(t, func() { src.Intn(0) }, "Intn(0) must panic")
}

// TestD20_Property verifies the D20 postcondition for arbitrary seeds.
func TestD20_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		src := dice.NewSeededSource(seed)
		roll := dice.D20(src)
		assert.True(rt, roll >= 1 && roll <= 20,
			"D20 postcondition: result %d must be in [1, 20]", roll)
	})
}

// TestRollResult_Total_Property verifies Total() == sum(Dice) + Modifier
// for arbitrary inputs.
func TestRollResult_Total_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		dice_ := rapid.SliceOf(rapid.IntRange(1, 20)).Draw(rt, "dice")
		modifier := rapid.IntRange(-100, 100).Draw(rt, "modifier")

		r := dice.RollResult{Expression: "NdS+M", Dice: dice_, Modifier: modifier}

		expected := modifier
		for _, d := range dice_ {
			expected += d
		}
		assert.Equal(rt, expected, r.Total(),
			"Total() postcondition: must equal sum(Dice)+Modifier")
	})
}
