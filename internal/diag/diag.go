// Package diag encodes keyer state as CBOR for external tooling: a
// config/preset snapshot and a batch of drained log entries, in the
// same deterministic-encoding style the rest of the corpus uses for
// wire formats.
package diag

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"cwkeyer.dev/config"
	"cwkeyer.dev/rtlog"
)

// ConfigSnapshot is the CBOR-serializable view of a config.Store: the
// live configuration, the generation it was read at, and every
// preset.
type ConfigSnapshot struct {
	Generation  uint64         `cbor:"1,keyasint"`
	WPM         int            `cbor:"2,keyasint"`
	Mode        int            `cbor:"3,keyasint"`
	Memory      int            `cbor:"4,keyasint"`
	Squeeze     int            `cbor:"5,keyasint"`
	Weight      int            `cbor:"6,keyasint"`
	ActiveIndex int            `cbor:"7,keyasint"`
	Presets     []PresetRecord `cbor:"8,keyasint"`
}

// PresetRecord mirrors one config.Preset slot.
type PresetRecord struct {
	Name string `cbor:"1,keyasint"`
	WPM  int    `cbor:"2,keyasint"`
	Mode int    `cbor:"3,keyasint"`
}

// LogEntry mirrors one rtlog.Entry.
type LogEntry struct {
	TimestampUs int64  `cbor:"1,keyasint"`
	Level       uint8  `cbor:"2,keyasint"`
	Message     string `cbor:"3,keyasint"`
}

var encMode cbor.EncMode

func init() {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	encMode = em
}

// SnapshotConfig builds a ConfigSnapshot from the live store.
func SnapshotConfig(s *config.Store) ConfigSnapshot {
	c := s.Snapshot()
	snap := ConfigSnapshot{
		Generation:  s.Generation(),
		WPM:         c.WPM,
		Mode:        int(c.Mode),
		Memory:      int(c.Memory),
		Squeeze:     int(c.Squeeze),
		Weight:      c.Weight,
		ActiveIndex: s.ActiveIndex(),
	}
	for i := 0; i < config.PresetCount; i++ {
		p, err := s.Get(i)
		if err != nil {
			continue
		}
		snap.Presets = append(snap.Presets, PresetRecord{
			Name: p.Name,
			WPM:  p.WPM,
			Mode: int(p.Mode),
		})
	}
	return snap
}

// EncodeConfig CBOR-encodes a ConfigSnapshot using deterministic
// encoding options, suitable for diffing exported snapshots.
func EncodeConfig(snap ConfigSnapshot) ([]byte, error) {
	b, err := encMode.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("diag: encode config snapshot: %w", err)
	}
	return b, nil
}

// DecodeConfig reverses EncodeConfig.
func DecodeConfig(b []byte) (ConfigSnapshot, error) {
	var snap ConfigSnapshot
	if err := cbor.Unmarshal(b, &snap); err != nil {
		return ConfigSnapshot{}, fmt.Errorf("diag: decode config snapshot: %w", err)
	}
	return snap, nil
}

// EncodeLogBatch CBOR-encodes a batch of drained rtlog entries.
func EncodeLogBatch(entries []rtlog.Entry) ([]byte, error) {
	out := make([]LogEntry, len(entries))
	for i, e := range entries {
		out[i] = LogEntry{
			TimestampUs: e.TimestampUs,
			Level:       uint8(e.Level),
			Message:     e.Text(),
		}
	}
	b, err := encMode.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("diag: encode log batch: %w", err)
	}
	return b, nil
}

// DecodeLogBatch reverses EncodeLogBatch.
func DecodeLogBatch(b []byte) ([]LogEntry, error) {
	var out []LogEntry
	if err := cbor.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("diag: decode log batch: %w", err)
	}
	return out, nil
}
