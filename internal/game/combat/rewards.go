package combat

import "github.com/skirmish-engine/skirmish/internal/game/rules"

// RewardsFromSnapshot computes the victory payout for a combat snapshot.
func RewardsFromSnapshot(payload *StatePayload) rules.Rewards {
	combatants := make(map[string]rules.RewardCombatant, len(payload.Combatants))
	for key, c := range payload.Combatants {
		combatants[key] = rules.RewardCombatant{Side: c.Side, HPMax: c.HPMax}
	}
	return rules.ComputeRewards(payload.StartedAt, combatants)
}

// GrantRewardsOnce computes rewards for the snapshot unless the session
// settings show them already granted for this combat instance. The
// started-at timestamp is the dedup key: the host may call the grant
// path more than once per combat-end event, and replays must be no-ops.
//
// Postcondition: on a grant, settings[rules.RewardsGrantedKey] is set to
// the snapshot's started-at value.
func GrantRewardsOnce(payload *StatePayload, settings map[string]string) (rules.Rewards, bool) {
	if payload == nil || payload.StartedAt == "" {
		return rules.Rewards{}, false
	}
	if settings[rules.RewardsGrantedKey] == payload.StartedAt {
		return rules.Rewards{}, false
	}

	rewards := RewardsFromSnapshot(payload)
	settings[rules.RewardsGrantedKey] = payload.StartedAt
	return rewards, true
}

// ApplyDefeatOutcome picks the deterministic defeat outcome for the
// combat and, for a robbery, the inventory entries taken from each
// survivor. Revival to 1 HP is left to the caller, who owns the
// character sheets.
func ApplyDefeatOutcome(payload *StatePayload, items *rules.ItemTable, maxTake int) (rules.DefeatOutcome, map[string][]string) {
	outcome := rules.PickDefeatOutcome(payload.StartedAt, nil)
	if outcome.Key != "robbed" {
		return outcome, nil
	}

	removals := make(map[string][]string)
	for key, c := range payload.Combatants {
		if c.Side != SidePC || len(c.Inventory) == 0 {
			continue
		}
		if taken := rules.RobbedRemovals(c.Inventory, items, maxTake); len(taken) > 0 {
			removals[key] = taken
		}
	}
	return outcome, removals
}
