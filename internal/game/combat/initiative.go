package combat

import (
	"sort"
	"strings"
)

// BuildInitiativeOrder sorts combatant keys into a deterministic turn
// order: initiative descending, then PCs before enemies, then
// case-insensitive name, then key. Recomputed on every roster change.
//
// Postcondition: idempotent — re-sorting an already sorted roster yields
// the same order.
func BuildInitiativeOrder(combatants map[string]*Combatant) []string {
	keys := make([]string, 0, len(combatants))
	for key := range combatants {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := combatants[keys[i]], combatants[keys[j]]
		if a.Initiative != b.Initiative {
			return a.Initiative > b.Initiative
		}
		if a.Side != b.Side {
			return a.Side == SidePC
		}
		an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if an != bn {
			return an < bn
		}
		return keys[i] < keys[j]
	})
	return keys
}

// advanceTurn moves to the next slot in the order, incrementing the
// round on wraparound, and clears the new actor's one-turn flags.
func (st *CombatState) advanceTurn() {
	if len(st.Order) == 0 {
		st.TurnIndex = 0
		return
	}
	if st.TurnIndex < 0 || st.TurnIndex >= len(st.Order) {
		st.TurnIndex = 0
	}

	st.TurnIndex = (st.TurnIndex + 1) % len(st.Order)
	if st.TurnIndex == 0 {
		st.RoundNo++
	}

	if c, ok := st.Combatants[st.Order[st.TurnIndex]]; ok {
		c.clearTurnFlags()
	}
}
