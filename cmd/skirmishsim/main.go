// Package main provides a scripted combat simulation for the skirmish
// engine. It wires configuration, logging, catalogs, the combat store,
// and the dispatcher, then drives one encounter from a directive block
// to a finished combat, printing the normalized log patches.
package main

import (
	"flag"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/skirmish-engine/skirmish/internal/config"
	"github.com/skirmish-engine/skirmish/internal/game/combat"
	"github.com/skirmish-engine/skirmish/internal/game/dice"
	"github.com/skirmish-engine/skirmish/internal/game/directive"
	"github.com/skirmish-engine/skirmish/internal/game/logui"
	"github.com/skirmish-engine/skirmish/internal/game/rules"
	"github.com/skirmish-engine/skirmish/internal/observability"
)

const sessionID = "sim"

func main() {
	configPath := flag.String("config", "", "path to configuration file (optional)")
	seed := flag.Int64("seed", 0, "dice seed; 0 uses crypto randomness")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
		cfg = loaded
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	items, err := loadItems(cfg.Data)
	if err != nil {
		logger.Fatal("loading item catalog", zap.Error(err))
	}

	var src dice.Source
	if *seed != 0 {
		src = dice.NewSeededSource(*seed)
	} else {
		src = dice.NewCryptoSource()
	}

	store := combat.NewStore()
	dispatcher := combat.NewDispatcher(store, items, src, logger, combat.Tunables{
		EscapeDC:    cfg.Engine.EscapeDC,
		StabilizeDC: cfg.Engine.StabilizeDC,
	})

	logger.Info("starting scripted skirmish", zap.Int64("seed", *seed))

	hist := &logui.History{}
	ctx := logui.PreambleContext{PlayerName: "Искатель", Level: 3, Class: "Следопыт"}

	// The narrator opens the fight with embedded directives.
	script := "Из тумана выходят разбойники.\n" +
		"@@COMBAT_START(zone=\"road\", cause=ambush)\n" +
		"@@COMBAT_ENEMY_ADD(enemy_id=band1, name=\"Разбойник\", hp=12, ac=12)\n" +
		"Они обнажают клинки."
	if patch, _ := directive.Apply(store, sessionID, script); patch != nil {
		render(patch, hist, ctx, store, cfg.Engine.FactLimit)
	}

	store.SyncPCs(sessionID, []combat.ActorContext{{
		UID:   1,
		Name:  "Искатель",
		HP:    20,
		HPMax: 20,
		Stats: rules.Stats{Str: 60, Dex: 70, Con: 55, Int: 50, Wis: 60, Cha: 45},
		Inventory: []rules.ItemStack{
			{ID: "w1", Name: "Кинжал", Qty: 1, Def: "dagger"},
			{ID: "p1", Name: "Зелье лечения", Qty: 2, Def: "healing_potion"},
		},
		Equip: map[rules.Slot]string{rules.SlotMainHand: "w1"},
	}}, items)

	// Trade attacks until one side falls; the turn order alternates
	// automatically between the PC and the enemy.
	for i := 0; i < 40; i++ {
		patch, err := dispatcher.HandleAction(sessionID, combat.ActionAttack)
		if err != nil {
			logger.Info("combat over", zap.Error(err))
			break
		}
		render(patch, hist, ctx, store, cfg.Engine.FactLimit)
		if !patch.Open {
			break
		}
	}

	logger.Info("simulation finished")
}

// loadItems builds the item table from disk overrides or the defaults.
func loadItems(data config.DataConfig) (*rules.ItemTable, error) {
	if data.ItemsDir == "" {
		return rules.DefaultItemTable(), nil
	}
	defs, err := rules.LoadItems(data.ItemsDir)
	if err != nil {
		return nil, err
	}
	return rules.NewItemTable(defs)
}

// render normalizes a patch against the history and prints it with its
// narration facts.
func render(patch *combat.Patch, hist *logui.History, ctx logui.PreambleContext, store *combat.Store, factLimit int) {
	state := store.Get(sessionID)
	normalized := logui.Normalize(patch, hist, ctx, state)

	round := 0
	if state != nil {
		round = state.RoundNo
	}
	hist.Apply(normalized, round)

	fmt.Println("──", normalized.Status)
	for _, line := range normalized.Lines {
		fmt.Println("  ", line.Text)
	}
	for _, fact := range logui.ExtractFacts(normalized, factLimit) {
		fmt.Println("  »", fact)
	}
}
