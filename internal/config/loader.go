package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// LoadCombatFile reads a YAML tuning file on top of DefaultCombat.
// Keys missing from the file keep their default value; map entries
// (frame timings, moves, archetypes) are merged per key.
func LoadCombatFile(path string) (Combat, error) {
	cfg := DefaultCombat()
	if path == "" {
		return cfg, nil
	}
	if err := loadYAML(path, &cfg); err != nil {
		return DefaultCombat(), fmt.Errorf("load combat config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultCombat(), fmt.Errorf("combat config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports tuning values the simulation cannot run with.
func (c Combat) Validate() error {
	var errs []error
	if c.MaxComboHits <= 0 {
		errs = append(errs, errors.New("max_combo_hits must be positive"))
	}
	if c.ComboWindowFrames <= 0 {
		errs = append(errs, errors.New("combo_window_frames must be positive"))
	}
	if len(c.BlockEffectiveness) == 0 {
		errs = append(errs, errors.New("block_effectiveness must not be empty"))
	}
	for i, lvl := range c.BlockEffectiveness {
		if lvl < 0 || lvl > 1 {
			errs = append(errs, fmt.Errorf("block_effectiveness[%d] = %v outside [0,1]", i, lvl))
		}
		if i > 0 && lvl > c.BlockEffectiveness[i-1] {
			errs = append(errs, fmt.Errorf("block_effectiveness[%d] increases", i))
		}
	}
	if c.SuperMeterMax <= 0 {
		errs = append(errs, errors.New("super_meter_max must be positive"))
	}
	if c.HistorySize <= 0 {
		errs = append(errs, errors.New("history_size must be positive"))
	}
	for name, ft := range c.FrameTimings {
		if ft.Total < ft.Startup+ft.Active {
			errs = append(errs, fmt.Errorf("frame timing %s: total %d shorter than startup+active", name, ft.Total))
		}
	}
	if len(c.Archetypes) == 0 {
		errs = append(errs, errors.New("at least one archetype is required"))
	}
	return errors.Join(errs...)
}
