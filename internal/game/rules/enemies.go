package rules

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnemyDef is one enemy template from the bestiary catalog.
type EnemyDef struct {
	Key          string   `yaml:"key"`
	NameRU       string   `yaml:"name_ru"`
	NameEN       string   `yaml:"name_en"`
	CR           string   `yaml:"cr"` // "1/8", "2", may be empty
	XP           *int     `yaml:"xp"`
	AC           int      `yaml:"ac"`
	HPAvg        int      `yaml:"hp_avg"`
	HPFormula    string   `yaml:"hp_formula"`
	Stats        Stats    `yaml:"stats"`
	Environments []string `yaml:"environments"`
}

// CRValue parses the challenge rating into a float: "1/8" → 0.125,
// "2" → 2. Returns false for empty or unparsable ratings.
func (d *EnemyDef) CRValue() (float64, bool) {
	s := strings.TrimSpace(d.CR)
	if s == "" || s == "—" || s == "-" {
		return 0, false
	}
	if num, denom, ok := strings.Cut(s, "/"); ok {
		a, errA := strconv.Atoi(strings.TrimSpace(num))
		b, errB := strconv.Atoi(strings.TrimSpace(denom))
		if errA != nil || errB != nil || b <= 0 {
			return 0, false
		}
		return float64(a) / float64(b), true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// usable filters out broken catalog cards: missing key or name,
// non-positive AC or HP, or an all-zero stat block.
func (d *EnemyDef) usable() bool {
	if strings.TrimSpace(d.Key) == "" || strings.TrimSpace(d.NameRU) == "" {
		return false
	}
	if d.AC <= 0 || d.HPAvg <= 0 {
		return false
	}
	s := d.Stats
	if s.Str == 0 && s.Dex == 0 && s.Con == 0 && s.Int == 0 && s.Wis == 0 && s.Cha == 0 {
		return false
	}
	return true
}

// qualityScore ranks duplicate cards for the same key: more complete
// cards win.
func (d *EnemyDef) qualityScore() int {
	score := 0
	if _, ok := d.CRValue(); ok {
		score += 10
	}
	if d.XP != nil {
		score += 3
	}
	if d.HPFormula != "" {
		score += 2
	}
	s := d.Stats
	if s.Str != 0 || s.Dex != 0 || s.Con != 0 || s.Int != 0 || s.Wis != 0 || s.Cha != 0 {
		score++
	}
	if len(d.Environments) > 0 {
		score++
	}
	return score
}

// EnemyCatalog is a validated, deduplicated bestiary with key and
// environment lookups. Enemies is sorted by key for stable iteration.
type EnemyCatalog struct {
	Enemies []*EnemyDef
	byKey   map[string]*EnemyDef
	byEnv   map[string][]*EnemyDef
}

// NewEnemyCatalog filters, deduplicates, and indexes raw catalog entries.
// Broken cards are dropped; duplicate keys keep the higher-quality card.
func NewEnemyCatalog(defs []*EnemyDef) *EnemyCatalog {
	byKey := make(map[string]*EnemyDef)
	for _, d := range defs {
		if d == nil || !d.usable() {
			continue
		}
		if prev, ok := byKey[d.Key]; ok && prev.qualityScore() >= d.qualityScore() {
			continue
		}
		byKey[d.Key] = d
	}

	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	catalog := &EnemyCatalog{
		Enemies: make([]*EnemyDef, 0, len(keys)),
		byKey:   byKey,
		byEnv:   make(map[string][]*EnemyDef),
	}
	for _, key := range keys {
		d := byKey[key]
		catalog.Enemies = append(catalog.Enemies, d)
		for _, env := range d.Environments {
			env = strings.TrimSpace(env)
			if env != "" {
				catalog.byEnv[env] = append(catalog.byEnv[env], d)
			}
		}
	}
	return catalog
}

// Get returns the enemy template for key, or nil.
func (c *EnemyCatalog) Get(key string) *EnemyDef {
	return c.byKey[key]
}

// ByEnvironments returns the enemies inhabiting any of the given
// environments, deduplicated, in catalog order. An empty filter returns
// the whole catalog.
func (c *EnemyCatalog) ByEnvironments(envs []string) []*EnemyDef {
	wanted := make([]string, 0, len(envs))
	for _, env := range envs {
		if env = strings.TrimSpace(env); env != "" {
			wanted = append(wanted, env)
		}
	}
	if len(wanted) == 0 {
		return c.Enemies
	}

	seen := make(map[string]bool)
	var out []*EnemyDef
	for _, env := range wanted {
		for _, d := range c.byEnv[env] {
			if !seen[d.Key] {
				seen[d.Key] = true
				out = append(out, d)
			}
		}
	}
	return out
}

// LoadEnemyCatalog reads a YAML list of enemy templates from path and
// builds a catalog from it.
func LoadEnemyCatalog(path string) (*EnemyCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading enemy catalog %q: %w", path, err)
	}
	var defs []*EnemyDef
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parsing enemy catalog %q: %w", path, err)
	}
	return NewEnemyCatalog(defs), nil
}
