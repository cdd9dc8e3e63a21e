// Package loader reads routine definitions from YAML files. The engine never
// parses routine sources itself; it consumes the immutable definitions this
// package produces.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/AndrejKiraly/RoutineGamification/internal/engine"
)

type routineFile struct {
	ID            string         `yaml:"id"`
	Name          string         `yaml:"name"`
	Description   string         `yaml:"description"`
	Category      string         `yaml:"category"`
	Icon          string         `yaml:"icon"`
	StartTime     string         `yaml:"start_time"`
	TotalDuration int            `yaml:"total_duration"`
	SkillRewards  map[string]int `yaml:"skill_rewards"`
	Sections      []sectionFile  `yaml:"sections"`
}

type sectionFile struct {
	ID        string     `yaml:"id"`
	Name      string     `yaml:"name"`
	TimeRange string     `yaml:"time_range"`
	Items     []itemFile `yaml:"items"`
}

type itemFile struct {
	ID           string         `yaml:"id"`
	Description  string         `yaml:"description"`
	Duration     int            `yaml:"duration"`
	SkillRewards map[string]int `yaml:"skill_rewards"`
	Notes        string         `yaml:"notes"`
}

// Library holds the loaded routine definitions and implements
// engine.RoutineSource.
type Library struct {
	routines map[string]*engine.Routine
	order    []string
}

// Load parses every .yaml/.yml file in dir into a routine definition. Ids
// must be unique across files and item ids unique within a routine. Reward
// entries with unknown categories are kept as-is; the engine logs and skips
// them at award time.
func Load(dir string, log *zap.Logger) (*Library, error) {
	if log == nil {
		log = zap.NewNop()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read routines dir: %w", err)
	}

	lib := &Library{routines: map[string]*engine.Routine{}}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		routine, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		if _, dup := lib.routines[routine.ID]; dup {
			return nil, fmt.Errorf("%s: duplicate routine id %q", path, routine.ID)
		}
		lib.routines[routine.ID] = routine
		lib.order = append(lib.order, routine.ID)
		log.Debug("loaded routine",
			zap.String("id", routine.ID), zap.Int("items", routine.TotalItemCount()))
	}

	sort.Strings(lib.order)
	return lib, nil
}

func loadFile(path string) (*engine.Routine, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read routine file: %w", err)
	}

	var rf routineFile
	if err := yaml.Unmarshal(raw, &rf); err != nil {
		return nil, fmt.Errorf("%s: parse routine: %w", path, err)
	}
	routine, err := rf.toRoutine()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return routine, nil
}

func (rf routineFile) toRoutine() (*engine.Routine, error) {
	if strings.TrimSpace(rf.ID) == "" {
		return nil, fmt.Errorf("routine id is required")
	}
	if strings.TrimSpace(rf.Name) == "" {
		return nil, fmt.Errorf("routine %q: name is required", rf.ID)
	}

	if err := validateRewards(rf.SkillRewards); err != nil {
		return nil, fmt.Errorf("routine %q: %w", rf.ID, err)
	}

	r := &engine.Routine{
		ID:            rf.ID,
		Name:          rf.Name,
		Description:   rf.Description,
		Category:      rf.Category,
		Icon:          rf.Icon,
		StartTime:     rf.StartTime,
		TotalDuration: rf.TotalDuration,
		SkillRewards:  toRewards(rf.SkillRewards),
	}

	seenItems := map[string]bool{}
	for _, sf := range rf.Sections {
		sec := engine.RoutineSection{
			ID:        sf.ID,
			Name:      sf.Name,
			TimeRange: sf.TimeRange,
		}
		for _, itf := range sf.Items {
			if strings.TrimSpace(itf.ID) == "" {
				return nil, fmt.Errorf("routine %q: item id is required", rf.ID)
			}
			if seenItems[itf.ID] {
				return nil, fmt.Errorf("routine %q: duplicate item id %q", rf.ID, itf.ID)
			}
			seenItems[itf.ID] = true
			if err := validateRewards(itf.SkillRewards); err != nil {
				return nil, fmt.Errorf("routine %q: item %q: %w", rf.ID, itf.ID, err)
			}
			sec.Items = append(sec.Items, engine.RoutineItem{
				ID:           itf.ID,
				Description:  itf.Description,
				Duration:     itf.Duration,
				SkillRewards: toRewards(itf.SkillRewards),
				Notes:        itf.Notes,
			})
		}
		r.Sections = append(r.Sections, sec)
	}
	return r, nil
}

// validateRewards rejects negative reward values; XP totals must only grow.
func validateRewards(m map[string]int) error {
	for k, v := range m {
		if v < 0 {
			return fmt.Errorf("negative reward %d for %q", v, k)
		}
	}
	return nil
}

func toRewards(m map[string]int) map[engine.Category]int {
	if len(m) == 0 {
		return nil
	}
	out := make(map[engine.Category]int, len(m))
	for k, v := range m {
		out[engine.Category(k)] = v
	}
	return out
}

// Routine returns the definition with the given id.
func (l *Library) Routine(id string) (*engine.Routine, bool) {
	r, ok := l.routines[id]
	return r, ok
}

// Routines returns every definition sorted by id.
func (l *Library) Routines() []*engine.Routine {
	out := make([]*engine.Routine, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.routines[id])
	}
	return out
}
