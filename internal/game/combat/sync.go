package combat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/skirmish-engine/skirmish/internal/game/rules"
)

// ActorContext is the slice of a character sheet the engine consumes:
// display data plus the stats and gear needed to derive AC.
type ActorContext struct {
	UID       int64
	Name      string
	Level     int
	Class     string
	HP        int
	HPMax     int
	Stats     rules.Stats
	Inventory []rules.ItemStack
	Equip     map[rules.Slot]string
}

// Key returns the combatant key for this actor, pc_<uid>.
func (a ActorContext) Key() string {
	return fmt.Sprintf("pc_%d", a.UID)
}

// SyncPCs upserts every actor into the session's combat, deriving AC
// from stats and equipment. Actors are applied in UID order so repeated
// syncs touch the roster deterministically. A no-op when the session has
// no active combat.
func (s *Store) SyncPCs(sessionID string, actors []ActorContext, items *rules.ItemTable) {
	state := s.Get(sessionID)
	if state == nil || !state.Active {
		return
	}

	sorted := make([]ActorContext, len(actors))
	copy(sorted, actors)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].UID < sorted[j].UID })

	for _, a := range sorted {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			name = fmt.Sprintf("PC %d", a.UID)
		}

		hpMax := max(0, a.HPMax)
		s.UpsertPC(sessionID, PCSpec{
			Key:       a.Key(),
			Name:      name,
			HP:        clampInt(a.HP, 0, hpMax),
			HPMax:     hpMax,
			AC:        rules.ComputeAC(a.Stats, a.Inventory, a.Equip, items),
			Stats:     a.Stats,
			Inventory: a.Inventory,
			Equip:     a.Equip,
		})
	}
}
