package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Correction describes one known schedule irregularity: a section whose
// scheduled reference range ends at ReportedEnd even though the provider's
// text actually continues further. The adapter corrects such a fetch by
// requesting the whole section and slicing back to the scheduled range.
//
// The table is curated against the remote provider's content and is loaded
// from an external file; no entries are built in.
type Correction struct {
	Section     string `yaml:"section"`
	ReportedEnd int    `yaml:"reported_end"`
}

// LoadCorrections reads the truncation-correction table. A missing path
// (empty string) yields an empty table.
func LoadCorrections(path string) ([]Correction, error) {
	if path == "" {
		return nil, nil
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile > %w", err)
	}

	var corrections []Correction
	if err := yaml.Unmarshal(contents, &corrections); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal > %w", err)
	}
	return corrections, nil
}
