package rules

import (
	"hash/adler32"
	"sort"

	"github.com/skirmish-engine/skirmish/internal/game/dice"
)

// DefeatOutcome is one narrative outcome applied when every player
// character goes down.
type DefeatOutcome struct {
	Key           string
	TitleRU       string
	DescriptionRU string
	Weight        int
	Tags          []string
}

// DefaultDefeatOutcomes is the weighted outcome pool, in pick order.
var DefaultDefeatOutcomes = []DefeatOutcome{
	{
		Key:           "captured",
		TitleRU:       "Плен",
		DescriptionRU: "Героя обезоружили и взяли в плен.\nЕсть шанс выбраться позже.",
		Weight:        3,
		Tags:          []string{"control", "story_hook"},
	},
	{
		Key:           "robbed",
		TitleRU:       "Ограбление",
		DescriptionRU: "Противники забрали ценности и снаряжение.\nПерсонаж остаётся в живых.",
		Weight:        2,
		Tags:          []string{"loss"},
	},
	{
		Key:           "enemies_withdraw",
		TitleRU:       "Враг отступил",
		DescriptionRU: "Враги сочли бой законченным и ушли.\nПерсонаж приходит в себя позже.",
		Weight:        2,
		Tags:          []string{"survival"},
	},
	{
		Key:           "rescued",
		TitleRU:       "Спасён",
		DescriptionRU: "Союзник или случайный путник спасает героя.\nЦена спасения выяснится позже.",
		Weight:        1,
		Tags:          []string{"aid", "story_hook"},
	},
	{
		Key:           "left_for_dead",
		TitleRU:       "Брошен умирать",
		DescriptionRU: "Героя оставили без помощи.\nОн выживает чудом и нуждается в восстановлении.",
		Weight:        1,
		Tags:          []string{"grim", "survival"},
	},
}

// SeedFromStartedAt derives a stable RNG seed from a combat's start
// timestamp string. The same combat always produces the same seed.
func SeedFromStartedAt(startedAt string) int64 {
	return int64(adler32.Checksum([]byte(startedAt)))
}

// PickDefeatOutcome picks a weighted outcome. A nil src means a source
// seeded from startedAt, so repeated picks for the same combat agree.
func PickDefeatOutcome(startedAt string, src dice.Source) DefeatOutcome {
	if src == nil {
		src = dice.NewSeededSource(SeedFromStartedAt(startedAt))
	}

	total := 0
	for _, outcome := range DefaultDefeatOutcomes {
		total += outcome.Weight
	}

	roll := src.Intn(total) + 1
	threshold := 0
	for _, outcome := range DefaultDefeatOutcomes {
		threshold += outcome.Weight
		if roll <= threshold {
			return outcome
		}
	}
	return DefaultDefeatOutcomes[len(DefaultDefeatOutcomes)-1]
}

// RobbedRemovals picks which inventory entries the robbers take:
// candidate ids sorted ascending, quest items skipped, at most maxTake
// entries. Deterministic for a given inventory.
//
// Precondition: table must be non-nil.
func RobbedRemovals(inventory []ItemStack, table *ItemTable, maxTake int) []string {
	if maxTake <= 0 {
		return nil
	}

	var candidates []string
	for i := range inventory {
		entry := &inventory[i]
		if entry.ID == "" {
			continue
		}
		if def := defFor(table, entry); def != nil && def.Kind == KindQuest {
			continue
		}
		candidates = append(candidates, entry.ID)
	}
	sort.Strings(candidates)

	if len(candidates) > maxTake {
		candidates = candidates[:maxTake]
	}
	return candidates
}
