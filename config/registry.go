package config

import (
	"fmt"

	"cwkeyer.dev/iambic"
)

// ParamType is the wire/shell type of a registered parameter.
type ParamType int

const (
	TypeU8 ParamType = iota
	TypeU16
	TypeU32
	TypeBool
	TypeEnum
	TypeString
)

// Param describes one atomically-readable field: its dotted path and
// short name, its family (the subsystem it belongs to), declared
// bounds, and the getter/setter closures that reach into a *Store.
type Param struct {
	Path   string // e.g. "iambic.wpm"
	Short  string // e.g. "wpm"
	Family string
	Type   ParamType
	Min    int64
	Max    int64
	Get    func(*Store) int64
	Set    func(*Store, int64) error
}

// Registry is the fixed, process-wide parameter table. It is built
// once in init and is read-only thereafter, so lookups need no lock.
var Registry []Param

var byPath = map[string]*Param{}
var byShort = map[string]*Param{}

func register(p Param) {
	Registry = append(Registry, p)
	ref := &Registry[len(Registry)-1]
	byPath[ref.Path] = ref
	byShort[ref.Short] = ref
}

func init() {
	register(Param{
		Path: "iambic.wpm", Short: "wpm", Family: "iambic",
		Type: TypeU8, Min: 5, Max: 100,
		Get: func(s *Store) int64 { return int64(s.wpm.Load()) },
		Set: func(s *Store, v int64) error {
			c := s.Snapshot()
			c.WPM = int(v)
			return s.SetConfig(c)
		},
	})
	register(Param{
		Path: "iambic.mode", Short: "mode", Family: "iambic",
		Type: TypeEnum, Min: 0, Max: 1,
		Get: func(s *Store) int64 { return int64(s.mode.Load()) },
		Set: func(s *Store, v int64) error {
			c := s.Snapshot()
			c.Mode = iambic.Mode(v)
			return s.SetConfig(c)
		},
	})
	register(Param{
		Path: "iambic.memory_mode", Short: "memory", Family: "iambic",
		Type: TypeEnum, Min: 0, Max: 3,
		Get: func(s *Store) int64 { return int64(s.memory.Load()) },
		Set: func(s *Store, v int64) error {
			c := s.Snapshot()
			c.Memory = iambic.MemoryMode(v)
			return s.SetConfig(c)
		},
	})
	register(Param{
		Path: "iambic.squeeze_latch", Short: "latch", Family: "iambic",
		Type: TypeEnum, Min: 0, Max: 1,
		Get: func(s *Store) int64 { return int64(s.squeeze.Load()) },
		Set: func(s *Store, v int64) error {
			c := s.Snapshot()
			c.Squeeze = iambic.SqueezeLatch(v)
			return s.SetConfig(c)
		},
	})
	register(Param{
		Path: "iambic.weight", Short: "weight", Family: "iambic",
		Type: TypeU8, Min: 33, Max: 67,
		Get: func(s *Store) int64 { return int64(s.weight.Load()) },
		Set: func(s *Store, v int64) error {
			c := s.Snapshot()
			c.Weight = int(v)
			return s.SetConfig(c)
		},
	})
	register(Param{
		Path: "iambic.memory_window_start", Short: "mem_start", Family: "iambic",
		Type: TypeU8, Min: 0, Max: 100,
		Get: func(s *Store) int64 { return int64(s.memoryWindowStart.Load()) },
		Set: func(s *Store, v int64) error {
			c := s.Snapshot()
			c.MemoryWindowStart = int(v)
			return s.SetConfig(c)
		},
	})
	register(Param{
		Path: "iambic.memory_window_end", Short: "mem_end", Family: "iambic",
		Type: TypeU8, Min: 0, Max: 100,
		Get: func(s *Store) int64 { return int64(s.memoryWindowEnd.Load()) },
		Set: func(s *Store, v int64) error {
			c := s.Snapshot()
			c.MemoryWindowEnd = int(v)
			return s.SetConfig(c)
		},
	})
	register(Param{
		Path: "audio.sidetone_hz", Short: "sidetone", Family: "audio",
		Type: TypeU16, Min: 0, Max: 4000,
		Get: func(s *Store) int64 { return int64(s.SidetoneHz()) },
		Set: func(s *Store, v int64) error {
			s.SetSidetoneHz(uint32(v))
			return nil
		},
	})
}

// Lookup finds a parameter by its full dotted path or its short name.
func Lookup(name string) (*Param, bool) {
	if p, ok := byPath[name]; ok {
		return p, true
	}
	if p, ok := byShort[name]; ok {
		return p, true
	}
	return nil, false
}

// SetByName looks up name and applies v, rejecting values outside
// [Min,Max] with an error instead of clamping them.
func SetByName(s *Store, name string, v int64) error {
	p, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("config: unknown parameter %q", name)
	}
	if v < p.Min || v > p.Max {
		return fmt.Errorf("config: %s value %d out of range [%d,%d]", p.Path, v, p.Min, p.Max)
	}
	return p.Set(s, v)
}
