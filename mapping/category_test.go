package mapping

import (
	"testing"

	"github.com/nbijlani/OpenStreetMap/element"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		key  string
		want Category
	}{
		{"addr:street", Street},
		{"type", TypeTag},
		{"source:name", SourceName},
		{"contact:website", Website},
		{"phone", Phone},
		{"Phone", Phone},
		{"contact:phone", Phone},
		{"addr:country", Country},
		{"addr:flat", FlatNumber},
		{"addr:flatnumber", FlatNumber},
		{"addr:housename", HouseName},
		{"addr:name", HouseName},
		{"addr:postcode", Postcode},
		{"old:addr:postcode", Postcode},
		{"postal_code", Postcode},
		{"addr:housenumber", HouseNumber},
		{"addr:interpolation", Interpolation},
		{"addr:city", City},
		{"highway", Unknown},
		{"name", Unknown},
		{"website", Unknown},
	}
	for _, test := range tests {
		if got := Classify(element.Tag{Key: test.key}); got != test.want {
			t.Errorf("Classify(%q) = %v, want %v", test.key, got, test.want)
		}
	}
}
