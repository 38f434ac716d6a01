package combat

import (
	"fmt"

	"github.com/skirmish-engine/skirmish/internal/game/rules"
)

// snapshotVersion is bumped when the payload shape changes incompatibly.
const snapshotVersion = 1

// CombatantPayload is the serialized form of a Combatant.
type CombatantPayload struct {
	Key        string `json:"key"`
	Name       string `json:"name"`
	Side       string `json:"side"`
	HPCurrent  int    `json:"hp_current"`
	HPMax      int    `json:"hp_max"`
	AC         int    `json:"ac"`
	Initiative int    `json:"initiative"`

	DodgeActive         bool `json:"dodge_active,omitempty"`
	DashActive          bool `json:"dash_active,omitempty"`
	DisengageActive     bool `json:"disengage_active,omitempty"`
	UseObjectActive     bool `json:"use_object_active,omitempty"`
	HelpAttackAdvantage bool `json:"help_attack_advantage,omitempty"`

	DeathSuccesses int  `json:"death_successes,omitempty"`
	DeathFailures  int  `json:"death_failures,omitempty"`
	IsDead         bool `json:"is_dead,omitempty"`
	IsStable       bool `json:"is_stable,omitempty"`

	Stats     rules.Stats           `json:"stats"`
	Inventory []rules.ItemStack     `json:"inventory,omitempty"`
	Equip     map[rules.Slot]string `json:"equip,omitempty"`
}

// StatePayload is the serialized form of a CombatState.
type StatePayload struct {
	V          int                         `json:"v"`
	Active     bool                        `json:"active"`
	RoundNo    int                         `json:"round_no"`
	TurnIndex  int                         `json:"turn_index"`
	Order      []string                    `json:"order"`
	Combatants map[string]CombatantPayload `json:"combatants"`
	StartedAt  string                      `json:"started_at_iso"`
}

// Snapshot serializes the session's combat state for persistence.
// Returns nil when the session has no active combat.
func (s *Store) Snapshot(sessionID string) *StatePayload {
	state := s.Get(sessionID)
	if state == nil || !state.Active {
		return nil
	}

	payload := &StatePayload{
		V:          snapshotVersion,
		Active:     state.Active,
		RoundNo:    max(1, state.RoundNo),
		TurnIndex:  state.TurnIndex,
		Combatants: make(map[string]CombatantPayload, len(state.Combatants)),
		StartedAt:  state.StartedAt,
	}
	for _, key := range state.Order {
		if _, ok := state.Combatants[key]; ok {
			payload.Order = append(payload.Order, key)
		}
	}
	for key, c := range state.Combatants {
		payload.Combatants[key] = CombatantPayload{
			Key:                 c.Key,
			Name:                c.Name,
			Side:                c.Side,
			HPCurrent:           clampInt(c.HPCurrent, 0, max(0, c.HPMax)),
			HPMax:               max(0, c.HPMax),
			AC:                  max(0, c.AC),
			Initiative:          c.Initiative,
			DodgeActive:         c.DodgeActive,
			DashActive:          c.DashActive,
			DisengageActive:     c.DisengageActive,
			UseObjectActive:     c.UseObjectActive,
			HelpAttackAdvantage: c.HelpAttackAdvantage,
			DeathSuccesses:      c.DeathSuccesses,
			DeathFailures:       c.DeathFailures,
			IsDead:              c.IsDead,
			IsStable:            c.IsStable,
			Stats:               c.Stats,
			Inventory:           c.Inventory,
			Equip:               c.Equip,
		}
	}
	return payload
}

// combatantFromPayload validates and normalizes one serialized combatant.
func combatantFromPayload(key string, p CombatantPayload) (*Combatant, error) {
	if key == "" {
		return nil, fmt.Errorf("combatant key must not be empty")
	}
	if p.Side != SidePC && p.Side != SideEnemy {
		return nil, fmt.Errorf("combatant %q: bad side %q", key, p.Side)
	}

	hpMax := max(0, p.HPMax)
	c := &Combatant{
		Key:                 key,
		Name:                p.Name,
		Side:                p.Side,
		HPCurrent:           clampInt(p.HPCurrent, 0, hpMax),
		HPMax:               hpMax,
		AC:                  max(0, p.AC),
		Initiative:          p.Initiative,
		DodgeActive:         p.DodgeActive,
		DashActive:          p.DashActive,
		DisengageActive:     p.DisengageActive,
		UseObjectActive:     p.UseObjectActive,
		HelpAttackAdvantage: p.HelpAttackAdvantage,
		DeathSuccesses:      p.DeathSuccesses,
		DeathFailures:       p.DeathFailures,
		IsDead:              p.IsDead,
		IsStable:            p.IsStable,
		Stats:               p.Stats,
		Inventory:           p.Inventory,
		Equip:               p.Equip,
	}
	c.clampCounters()
	return c, nil
}

// StateFromPayload rebuilds a CombatState from a snapshot. A broken
// order (missing or duplicated keys, combatants absent) is rebuilt from
// initiative so every combatant gets a turn.
func StateFromPayload(payload *StatePayload) (*CombatState, error) {
	if payload == nil {
		return nil, fmt.Errorf("nil combat payload")
	}

	combatants := make(map[string]*Combatant, len(payload.Combatants))
	for key, raw := range payload.Combatants {
		c, err := combatantFromPayload(key, raw)
		if err != nil {
			return nil, err
		}
		combatants[key] = c
	}

	var order []string
	seen := make(map[string]bool, len(payload.Order))
	for _, key := range payload.Order {
		if _, ok := combatants[key]; ok && !seen[key] {
			order = append(order, key)
			seen[key] = true
		}
	}
	if len(order) != len(combatants) {
		order = BuildInitiativeOrder(combatants)
	}

	state := &CombatState{
		Active:     payload.Active,
		RoundNo:    max(1, payload.RoundNo),
		TurnIndex:  payload.TurnIndex,
		Order:      order,
		Combatants: combatants,
		StartedAt:  payload.StartedAt,
	}
	if len(state.Order) == 0 || state.TurnIndex < 0 || state.TurnIndex >= len(state.Order) {
		state.TurnIndex = 0
	}
	return state, nil
}

// Restore installs a snapshot as the session's combat. Inactive or
// invalid payloads clear the session instead.
func (s *Store) Restore(sessionID string, payload *StatePayload) (*CombatState, error) {
	state, err := StateFromPayload(payload)
	if err != nil || !state.Active {
		s.EndCombat(sessionID)
		return nil, err
	}
	s.bySession[sessionID] = state
	return state, nil
}
