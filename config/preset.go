package config

import (
	"fmt"

	"cwkeyer.dev/iambic"
)

// PresetCount is N from spec.md §4.10 ("array of N (>=10) preset
// records").
const PresetCount = 10

// MaxPresetNameLen bounds Preset.Name; SetName truncates to fit.
const MaxPresetNameLen = 24

// Preset is one named, fully self-contained keyer configuration.
// Presets are swapped by atomic pointer, so a reader always sees a
// whole, consistent preset even while a writer installs a new one.
type Preset struct {
	Name string
	iambic.Config
}

func defaultPreset(i int) Preset {
	return Preset{
		Name:   fmt.Sprintf("preset%d", i),
		Config: iambic.DefaultConfig(),
	}
}

func clampPresetIndex(i int) error {
	if i < 0 || i >= PresetCount {
		return fmt.Errorf("config: preset index %d out of range [0,%d)", i, PresetCount)
	}
	return nil
}

// Get returns a copy of preset i.
func (s *Store) Get(i int) (Preset, error) {
	if err := clampPresetIndex(i); err != nil {
		return Preset{}, err
	}
	return *s.presets[i].Load(), nil
}

// ActiveIndex returns the currently active preset slot.
func (s *Store) ActiveIndex() int {
	return int(s.activeIndex.Load())
}

// Activate installs preset i as the live configuration and records it
// as the active slot.
func (s *Store) Activate(i int) error {
	p, err := s.Get(i)
	if err != nil {
		return err
	}
	if err := s.SetConfig(p.Config); err != nil {
		return err
	}
	s.activeIndex.Store(uint32(i))
	return nil
}

// Copy duplicates preset src into slot dst.
func (s *Store) Copy(src, dst int) error {
	p, err := s.Get(src)
	if err != nil {
		return err
	}
	if err := clampPresetIndex(dst); err != nil {
		return err
	}
	cp := p
	s.presets[dst].Store(&cp)
	return nil
}

// Reset reinstates slot i's built-in defaults, discarding any edits.
func (s *Store) Reset(i int) error {
	if err := clampPresetIndex(i); err != nil {
		return err
	}
	p := defaultPreset(i)
	s.presets[i].Store(&p)
	return nil
}

// SetName renames slot i, truncating name to MaxPresetNameLen.
func (s *Store) SetName(i int, name string) error {
	p, err := s.Get(i)
	if err != nil {
		return err
	}
	if len(name) > MaxPresetNameLen {
		name = name[:MaxPresetNameLen]
	}
	p.Name = name
	s.presets[i].Store(&p)
	return nil
}
