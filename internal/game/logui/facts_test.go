package logui_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skirmish-engine/skirmish/internal/game/combat"
	"github.com/skirmish-engine/skirmish/internal/game/logui"
)

func patchOf(texts ...string) *combat.Patch {
	patch := &combat.Patch{}
	for _, t := range texts {
		patch.Lines = append(patch.Lines, combat.Line{Text: t})
	}
	return patch
}

// TestExtractFacts_StanceActions verifies each stance line maps to its
// narration phrase and mechanical lines are skipped.
func TestExtractFacts_StanceActions(t *testing.T) {
	patch := patchOf(
		"Уклонение: Разбойник (атаки по нему с помехой до следующего хода).",
		"Рывок: Воин (дистанция удвоена на этот ход).",
		"Отход: Жрец (отступает без провоцированных атак).",
		"Помощь: Маг (преимущество на следующую атаку).",
		"Предмет: Плут использует Зелье лечения (+5 HP).",
		"Бросок атаки: d20(15) + 2 = 17 vs AC 13",
	)

	facts := logui.ExtractFacts(patch, 0)

	assert.Equal(t, []string{
		"Разбойник уходит в защиту и сбивает темп.",
		"Воин резко ускоряется и меняет дистанцию.",
		"Жрец отступает, не подставляясь.",
		"Маг помогает, открывая окно для следующей атаки.",
		"Плут тянется к предмету и пытается использовать объект.",
	}, facts)
}

// TestExtractFacts_EscapeOutcomes verifies the escape attempt pairs with
// its result line.
func TestExtractFacts_EscapeOutcomes(t *testing.T) {
	failed := logui.ExtractFacts(patchOf(
		"Побег: Воин пытается сбежать",
		"Бросок: d20(4) vs DC 13",
		"Результат: побег не удался.",
	), 0)
	assert.Contains(t, failed, "Воин пытается уйти, но побег срывается.")

	escaped := logui.ExtractFacts(patchOf(
		"Побег: Воин пытается сбежать",
		"Бросок: d20(18) vs DC 13",
		"Результат: побег успешен.",
	), 0)
	assert.Contains(t, escaped, "Воин вырывается из боя.")
}

// TestExtractFacts_AttackWithHPState verifies an attack header, its
// result, and the target's HP line collapse into two facts.
func TestExtractFacts_AttackWithHPState(t *testing.T) {
	patch := patchOf(
		"Атака: Воин → Разбойник",
		"Оружие: Длинный меч 1d8",
		"Бросок атаки: d20(15) + 2 = 17 vs AC 13",
		"Результат: попадание",
		"Урон: 5 + 2 = 7",
		"Разбойник: HP 2/18",
	)

	facts := logui.ExtractFacts(patch, 0)

	require.Len(t, facts, 2)
	assert.Equal(t, "Воин атакует Разбойник и попадает.", facts[0])
	assert.Equal(t, "Разбойник пошатывается и едва держится.", facts[1])
}

// TestExtractFacts_AttackMiss verifies a miss produces only the attack
// fact.
func TestExtractFacts_AttackMiss(t *testing.T) {
	facts := logui.ExtractFacts(patchOf(
		"Атака: Разбойник → Воин",
		"Бросок атаки: d20(3) + 1 = 4 vs AC 14",
		"Результат: промах",
		"Урон: 0 (промах)",
	), 0)

	assert.Equal(t, []string{"Разбойник атакует Воин и промахивается."}, facts)
}

// TestExtractFacts_HPBuckets verifies the wound phrasing thresholds.
func TestExtractFacts_HPBuckets(t *testing.T) {
	cases := []struct {
		hp   int
		want string
	}{
		{16, "Разбойник почти не ранен."},
		{9, "Разбойник ранен."},
		{3, "Разбойник сильно ранен."},
		{2, "Разбойник пошатывается и едва держится."},
	}
	for _, tc := range cases {
		facts := logui.ExtractFacts(patchOf(
			"Атака: Воин → Разбойник",
			"Результат: попадание",
			fmt.Sprintf("Разбойник: HP %d/20", tc.hp),
		), 0)
		require.Len(t, facts, 2, "hp %d", tc.hp)
		assert.Equal(t, tc.want, facts[1])
	}
}

// TestExtractFacts_PriorityOrdering verifies terminal facts come before
// regular ones regardless of line order.
func TestExtractFacts_PriorityOrdering(t *testing.T) {
	patch := patchOf(
		"Уклонение: Разбойник (атаки по нему с помехой до следующего хода).",
		"Победа: противники повержены.",
		"Разбойник повержен.",
		"Бой завершён",
		"Поражение: все герои выбыли.",
	)

	facts := logui.ExtractFacts(patch, 10)

	require.GreaterOrEqual(t, len(facts), 5)
	assert.Equal(t, "Победа — бой окончен.", facts[0])
	assert.Equal(t, "Противник повержен.", facts[1])
	assert.Equal(t, "Бой завершён.", facts[2])
	assert.Equal(t, "Поражение — отряд выбывает.", facts[3])
	assert.Equal(t, "Разбойник уходит в защиту и сбивает темп.", facts[4])
}

// TestExtractFacts_DedupeAndLimit verifies repeated facts collapse and
// the cap applies after prioritization.
func TestExtractFacts_DedupeAndLimit(t *testing.T) {
	var texts []string
	for i := 0; i < 5; i++ {
		texts = append(texts, "Разбойник повержен.")
	}
	for i := 0; i < 6; i++ {
		texts = append(texts, fmt.Sprintf("Уклонение: Боец-%d (атаки по нему с помехой до следующего хода).", i))
	}
	facts := logui.ExtractFacts(patchOf(texts...), 3)

	require.Len(t, facts, 3)
	assert.Equal(t, "Противник повержен.", facts[0], "duplicates collapse into one fact")
	assert.Equal(t, "Боец-0 уходит в защиту и сбивает темп.", facts[1])
	assert.Equal(t, "Боец-1 уходит в защиту и сбивает темп.", facts[2])
}

// TestExtractFacts_IgnoresStatusLines verifies status-kind lines and the
// separator never produce facts.
func TestExtractFacts_IgnoresStatusLines(t *testing.T) {
	patch := &combat.Patch{Lines: []combat.Line{
		{Text: "⚔ Бой • Раунд 2 • Ход: Воин", Kind: "status"},
		{Text: logui.RoundSeparator},
		{Text: "Бой завершён", Kind: "status"},
	}}

	assert.Empty(t, logui.ExtractFacts(patch, 0))
	assert.Nil(t, logui.ExtractFacts(nil, 0))
	assert.Nil(t, logui.ExtractFacts(&combat.Patch{}, 0))
}
