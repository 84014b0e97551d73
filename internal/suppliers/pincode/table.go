package pincode

import (
	_ "embed"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed prefixes.yaml
var prefixesYAML []byte

type tableEntry struct {
	City  string  `yaml:"city"`
	State string  `yaml:"state"`
	Lat   float64 `yaml:"lat"`
	Lng   float64 `yaml:"lng"`
}

type prefixTable struct {
	Default  tableEntry            `yaml:"default"`
	Prefixes map[string]tableEntry `yaml:"prefixes"`
}

var table = loadTable()

func loadTable() prefixTable {
	var t prefixTable
	if err := yaml.Unmarshal(prefixesYAML, &t); err != nil {
		panic("pincode: invalid embedded prefix table: " + err.Error())
	}
	return t
}

// lookupPrefix resolves the static fallback location for a 6-digit pincode.
// Three-digit prefixes take priority over two-digit ones.
func lookupPrefix(pin string) Location {
	if len(pin) >= 3 {
		if entry, ok := table.Prefixes[pin[:3]]; ok {
			return entry.location()
		}
	}
	if len(pin) >= 2 {
		if entry, ok := table.Prefixes[pin[:2]]; ok {
			return entry.location()
		}
	}
	return table.Default.location()
}

func (e tableEntry) location() Location {
	return Location{
		City:  strings.TrimSpace(e.City),
		State: strings.TrimSpace(e.State),
		Lat:   e.Lat,
		Lng:   e.Lng,
	}
}
