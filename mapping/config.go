package mapping

import (
	"os"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// Corrections are the hand-authored replacement tables consumed by the
// Transformer. The default tables contain the fixes discovered by
// auditing the south-west London extract.
type Corrections struct {
	// Streets maps wrong street name suffixes to their replacement
	// (e.g. Rd -> Road). Only the last word of a street name is
	// matched.
	Streets map[string]string `yaml:"streets"`
	// Cities maps misspelled city names to their replacement. Values
	// are matched exactly.
	Cities map[string]string `yaml:"cities"`
	// Keys maps deprecated tag keys to their canonical key.
	Keys map[string]string `yaml:"keys"`
	// ValueKeys re-keys a tag when its (normalized) value matches
	// exactly. Used for house names that were stored as house numbers.
	ValueKeys map[string]string `yaml:"value_keys"`
}

// DefaultCorrections returns the built-in tables for the Surrey
// extract.
func DefaultCorrections() Corrections {
	return Corrections{
		Streets: map[string]string{
			"ROAD": "Road",
			"Rd":   "Road",
		},
		Cities: map[string]string{
			"Easher":           "Esher",
			"Walton-on-Thamse": "Walton-on-Thames",
			"Walton-On-Thames": "Walton-on-Thames",
			"West Moseley":     "West Molesey",
			"CHERTSEY":         "Chertsey",
			"Sunbury":          "Sunbury-on-Thames",
			"Sunbury-On-Thames": "Sunbury-on-Thames",
			"Surrey":           "Molesey",
		},
		Keys: map[string]string{
			"addr:flat": "addr:flatnumber",
			"addr:name": "addr:housename",
		},
		ValueKeys: map[string]string{
			"Council Offices": "addr:housename",
			"Padley":          "addr:housename",
		},
	}
}

// CorrectionsFromFile loads correction tables from a YAML file.
// Tables that are missing in the file keep their built-in defaults.
func CorrectionsFromFile(filename string) (Corrections, error) {
	corrections := DefaultCorrections()
	data, err := os.ReadFile(filename)
	if err != nil {
		return corrections, errors.Wrapf(err, "reading corrections file %s", filename)
	}
	loaded := Corrections{}
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return corrections, errors.Wrapf(err, "parsing corrections file %s", filename)
	}
	if loaded.Streets != nil {
		corrections.Streets = loaded.Streets
	}
	if loaded.Cities != nil {
		corrections.Cities = loaded.Cities
	}
	if loaded.Keys != nil {
		corrections.Keys = loaded.Keys
	}
	if loaded.ValueKeys != nil {
		corrections.ValueKeys = loaded.ValueKeys
	}
	return corrections, nil
}
