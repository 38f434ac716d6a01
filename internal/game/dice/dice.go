// Package dice provides the randomness abstraction and roll-result types
// for the Skirmish combat engine.
package dice

import "fmt"

// RollResult holds the full audit trail for a single dice roll evaluation.
//
// Postcondition: Total() == sum(Dice) + Modifier.
type RollResult struct {
	Expression string // original expression string, e.g. "2d4+2"
	Dice       []int  // individual die results before modifier
	Modifier   int    // flat modifier (may be negative)
}

// Total returns the sum of all die results plus the modifier.
//
// Postcondition: return value == sum(r.Dice) + r.Modifier.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String returns a human-readable audit string in the format:
//
//	"2d4+2 → [3 1] +2 = 6"
//
// Precondition: r.Expression is non-empty.
func (r RollResult) String() string {
	if r.Expression == "" {
		panic("dice: RollResult.String() precondition violated: Expression must be non-empty")
	}
	return fmt.Sprintf("%s → %v %+d = %d", r.Expression, r.Dice, r.Modifier, r.Total())
}

// Source is the randomness provider for dice rolls.
//
// Every random draw in the engine goes through a Source so tests can
// supply fixed or scripted sequences.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// D20 rolls a single twenty-sided die.
//
// Postcondition: result is in [1, 20].
func D20(src Source) int {
	return src.Intn(20) + 1
}

// D20Advantage rolls two d20 and keeps the higher.
//
// Postcondition: result is in [1, 20].
func D20Advantage(src Source) int {
	a, b := D20(src), D20(src)
	if b > a {
		return b
	}
	return a
}

// D20Disadvantage rolls two d20 and keeps the lower.
//
// Postcondition: result is in [1, 20].
func D20Disadvantage(src Source) int {
	a, b := D20(src), D20(src)
	if b < a {
		return b
	}
	return a
}
