package combat

import (
	"fmt"
	"time"

	"github.com/skirmish-engine/skirmish/internal/game/rules"
)

// CombatState is the full state of one combat encounter. The engine
// performs no internal locking: the host must serialize actions per
// session id.
type CombatState struct {
	Active     bool
	RoundNo    int
	TurnIndex  int
	Order      []string
	Combatants map[string]*Combatant
	StartedAt  string // RFC3339; doubles as the reward RNG/dedup seed
}

// Store is the session-keyed combat registry. It replaces hidden static
// state: the host owns it and injects it into the dispatcher.
type Store struct {
	bySession map[string]*CombatState
	now       func() time.Time
}

// NewStore creates an empty combat store.
func NewStore() *Store {
	return &Store{
		bySession: make(map[string]*CombatState),
		now:       time.Now,
	}
}

// StartCombat creates a fresh active combat for the session, replacing
// any previous one.
//
// Postcondition: Get(sessionID) returns the new state; round is 1.
func (s *Store) StartCombat(sessionID string) *CombatState {
	state := &CombatState{
		Active:     true,
		RoundNo:    1,
		TurnIndex:  0,
		Combatants: make(map[string]*Combatant),
		StartedAt:  s.now().UTC().Format(time.RFC3339),
	}
	s.bySession[sessionID] = state
	return state
}

// EndCombat removes the session's combat, if any.
func (s *Store) EndCombat(sessionID string) {
	delete(s.bySession, sessionID)
}

// Get returns the session's combat state, or nil.
func (s *Store) Get(sessionID string) *CombatState {
	return s.bySession[sessionID]
}

// nextEnemyKey generates the first unused enemy_N key.
func nextEnemyKey(combatants map[string]*Combatant) string {
	for i := 1; ; i++ {
		key := fmt.Sprintf("enemy_%d", i)
		if _, ok := combatants[key]; !ok {
			return key
		}
	}
}

// currentKey returns the key of the combatant whose turn it is, or ""
// when the order is empty or the index is out of range.
func (st *CombatState) currentKey() string {
	if len(st.Order) == 0 || st.TurnIndex < 0 || st.TurnIndex >= len(st.Order) {
		return ""
	}
	return st.Order[st.TurnIndex]
}

// CurrentTurnLabel returns the display name of the acting combatant, or
// "-" when there is none.
func (st *CombatState) CurrentTurnLabel() string {
	key := st.currentKey()
	if key == "" {
		return "-"
	}
	if c, ok := st.Combatants[key]; ok {
		return c.Name
	}
	return key
}

// rosterChangeAnchor captures the acting combatant's key before a roster
// change, so the turn can be re-located by key afterwards. At the very
// start of combat (round 1, index 0) the anchor is dropped: the first
// slot of the rebuilt order should act first.
func (st *CombatState) rosterChangeAnchor() string {
	if st.RoundNo == 1 && st.TurnIndex == 0 {
		return ""
	}
	return st.currentKey()
}

// relocateTurn points TurnIndex at the anchor key in the rebuilt order,
// falling back to index 0 when the anchor is gone.
func (st *CombatState) relocateTurn(anchor string) {
	if len(st.Order) == 0 {
		st.TurnIndex = 0
		return
	}
	if anchor != "" {
		for i, key := range st.Order {
			if key == anchor {
				st.TurnIndex = i
				return
			}
		}
	}
	if st.TurnIndex < 0 || st.TurnIndex >= len(st.Order) {
		st.TurnIndex = 0
	}
}

// AddEnemy adds an enemy combatant and rebuilds initiative. A blank
// enemyID allocates the next free enemy_N key. The acting combatant
// keeps the turn, matched by key.
//
// Postcondition: returns nil when the session has no active combat.
func (s *Store) AddEnemy(sessionID, enemyID, name string, hp, ac int) *CombatState {
	state := s.Get(sessionID)
	if state == nil || !state.Active {
		return nil
	}

	key := enemyID
	if key == "" {
		key = nextEnemyKey(state.Combatants)
	}
	anchor := state.rosterChangeAnchor()

	hpMax := max(0, hp)
	state.Combatants[key] = &Combatant{
		Key:       key,
		Name:      name,
		Side:      SideEnemy,
		HPCurrent: hpMax,
		HPMax:     hpMax,
		AC:        max(0, ac),
		Stats:     rules.DefaultStats(),
	}

	state.Order = BuildInitiativeOrder(state.Combatants)
	state.relocateTurn(anchor)
	return state
}

// PCSpec carries the fields UpsertPC needs from a character sheet.
type PCSpec struct {
	Key        string
	Name       string
	HP         int
	HPMax      int
	AC         int
	Initiative int
	Stats      rules.Stats
	Inventory  []rules.ItemStack
	Equip      map[rules.Slot]string
}

// UpsertPC adds or refreshes a player combatant and rebuilds initiative.
// For an existing PC the current HP is kept (clamped to the new max);
// death save state survives the refresh.
//
// Postcondition: returns nil when the session has no active combat.
func (s *Store) UpsertPC(sessionID string, spec PCSpec) *CombatState {
	state := s.Get(sessionID)
	if state == nil || !state.Active {
		return nil
	}

	anchor := state.rosterChangeAnchor()
	hpMax := max(0, spec.HPMax)

	if existing, ok := state.Combatants[spec.Key]; ok {
		existing.Name = spec.Name
		existing.Side = SidePC
		existing.HPMax = hpMax
		existing.HPCurrent = clampInt(existing.HPCurrent, 0, hpMax)
		existing.AC = max(0, spec.AC)
		existing.Initiative = spec.Initiative
		existing.Stats = spec.Stats
		existing.Inventory = spec.Inventory
		existing.Equip = spec.Equip
	} else {
		state.Combatants[spec.Key] = &Combatant{
			Key:        spec.Key,
			Name:       spec.Name,
			Side:       SidePC,
			HPCurrent:  clampInt(spec.HP, 0, hpMax),
			HPMax:      hpMax,
			AC:         max(0, spec.AC),
			Initiative: spec.Initiative,
			Stats:      spec.Stats,
			Inventory:  spec.Inventory,
			Equip:      spec.Equip,
		}
	}

	state.Order = BuildInitiativeOrder(state.Combatants)
	state.relocateTurn(anchor)
	return state
}

// sideAlive reports whether any combatant on side still has hit points.
func (st *CombatState) sideAlive(side string) bool {
	for _, c := range st.Combatants {
		if c.Side == side && c.Alive() {
			return true
		}
	}
	return false
}

// firstLivingOpponent returns the first living combatant opposing side,
// scanning the initiative order first and the roster map as a fallback
// for combatants missing from the order.
func (st *CombatState) firstLivingOpponent(side string) *Combatant {
	for _, key := range st.Order {
		c, ok := st.Combatants[key]
		if !ok || c.Side == side || !c.Alive() {
			continue
		}
		return c
	}
	for _, key := range BuildInitiativeOrder(st.Combatants) {
		c := st.Combatants[key]
		if c.Side != side && c.Alive() {
			return c
		}
	}
	return nil
}
