package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// MaxTuneZones is the number of zones a tune tile can address.
const MaxTuneZones = 256

// ErrUnknownZone is returned when a map refers to a tune zone the table lacks.
var ErrUnknownZone = errors.New("unknown tune zone")

// TuneZones is the zone table indexed by tune tile number. Zone 0 applies
// wherever no tune tile is set.
type TuneZones []Tunings

// DefaultTuneZones returns a table holding only the default zone.
func DefaultTuneZones() TuneZones {
	return TuneZones{DefaultTunings()}
}

type tuneZonesFile struct {
	Zones map[int]yaml.Node `yaml:"zones"`
}

// ParseTuneZones decodes a zone table. Every zone starts from DefaultTunings
// and only overrides the keys it names; gaps between zone numbers are filled
// with defaults.
//
//	zones:
//	  1:
//	    gravity: 0.25
//	  2:
//	    hook_length: 700
func ParseTuneZones(raw []byte) (TuneZones, error) {
	var file tuneZonesFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode tune zones: %w", err)
	}

	count := 1
	for n := range file.Zones {
		if n < 0 || n >= MaxTuneZones {
			return nil, fmt.Errorf("zone %d: %w", n, ErrUnknownZone)
		}
		if n+1 > count {
			count = n + 1
		}
	}

	zones := make(TuneZones, count)
	for i := range zones {
		zones[i] = DefaultTunings()
	}
	for n, node := range file.Zones {
		t, err := decodeZone(&node)
		if err != nil {
			return nil, fmt.Errorf("zone %d: %w", n, err)
		}
		zones[n] = t
	}
	return zones, nil
}

func decodeZone(node *yaml.Node) (Tunings, error) {
	t := DefaultTunings()
	raw, err := yaml.Marshal(node)
	if err != nil {
		return t, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return t, err
	}
	return t, nil
}

// LoadTuneZones reads a zone table from fsys.
func LoadTuneZones(fsys fs.FS, path string) (TuneZones, error) {
	raw, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read tune zones %s: %w", path, err)
	}
	zones, err := ParseTuneZones(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return zones, nil
}
