package rules

import (
	"sort"
	"strconv"
	"strings"

	"github.com/skirmish-engine/skirmish/internal/game/dice"
)

// RewardsGrantedKey is the session-settings key holding the started-at
// timestamp of the last combat whose rewards were granted. Granting
// checks it before paying out, so replays of the same combat are no-ops.
const RewardsGrantedKey = "combat_rewards_granted_for"

// xpPerEnemyHP scales enemy hit point maximums into experience:
// each survivor earns hp_max * 5 / 2 per defeated enemy.
const (
	xpNumerator   = 5
	xpDenominator = 2
)

// RewardCombatant is the slice of combatant state the reward math needs.
type RewardCombatant struct {
	Side  string
	HPMax int
}

// Rewards is the victory payout for one combat.
type Rewards struct {
	PCIDs    []int64        // character ids parsed from pc_<id> keys, ascending
	LeaderID int64          // first PC id, 0 when no PCs
	XPEach   int            // experience granted to every surviving PC
	Loot     map[string]int // def key -> total quantity
}

// ComputeRewards derives the victory payout from a combat snapshot.
// Loot is rolled with a source seeded from startedAt, so recomputing for
// the same combat yields the same drops.
//
// Postcondition: deterministic for a given (startedAt, combatants) pair.
func ComputeRewards(startedAt string, combatants map[string]RewardCombatant) Rewards {
	rewards := Rewards{Loot: make(map[string]int)}

	var enemyKeys []string
	for key, c := range combatants {
		switch c.Side {
		case "pc":
			if id, ok := parsePCID(key); ok {
				rewards.PCIDs = append(rewards.PCIDs, id)
			}
		case "enemy":
			rewards.XPEach += c.HPMax * xpNumerator / xpDenominator
			enemyKeys = append(enemyKeys, key)
		}
	}

	sort.Slice(rewards.PCIDs, func(i, j int) bool { return rewards.PCIDs[i] < rewards.PCIDs[j] })
	if len(rewards.PCIDs) > 0 {
		rewards.LeaderID = rewards.PCIDs[0]
	}

	sort.Strings(enemyKeys)
	src := dice.NewSeededSource(SeedFromStartedAt(startedAt))
	for _, key := range enemyKeys {
		for _, item := range RollLoot(key, src) {
			rewards.Loot[item.Def] += item.Qty
		}
	}

	return rewards
}

// parsePCID extracts the numeric character id from a pc_<id> combatant key.
func parsePCID(key string) (int64, bool) {
	raw, ok := strings.CutPrefix(key, "pc_")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
