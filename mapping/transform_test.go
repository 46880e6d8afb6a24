package mapping

import (
	"testing"

	"github.com/nbijlani/OpenStreetMap/element"
)

func TestTransform_singleTagRules(t *testing.T) {
	tests := []struct {
		in   element.Tag
		want element.Tag
	}{
		// flat number key correction
		{element.Tag{Key: "addr:flat", Value: "7"}, element.Tag{Key: "addr:flatnumber", Value: "7"}},
		{element.Tag{Key: "addr:flatnumber", Value: "3"}, element.Tag{Key: "addr:flatnumber", Value: "3"}},

		// house name key correction and value reclassification
		{element.Tag{Key: "addr:name", Value: "The Lodge"}, element.Tag{Key: "addr:housename", Value: "The Lodge"}},
		{element.Tag{Key: "addr:housename", Value: "6"}, element.Tag{Key: "addr:housenumber", Value: "6"}},
		{element.Tag{Key: "addr:housename", Value: "24A"}, element.Tag{Key: "addr:housenumber", Value: "24A"}},
		{element.Tag{Key: "addr:housename", Value: "8-10"}, element.Tag{Key: "addr:housenumber", Value: "8-10"}},
		{element.Tag{Key: "addr:housename", Value: "Flat 7"}, element.Tag{Key: "addr:flatnumber", Value: "Flat 7"}},

		// city replacement
		{element.Tag{Key: "addr:city", Value: "Sunbury"}, element.Tag{Key: "addr:city", Value: "Sunbury-on-Thames"}},
		{element.Tag{Key: "addr:city", Value: "Easher"}, element.Tag{Key: "addr:city", Value: "Esher"}},
		{element.Tag{Key: "addr:city", Value: "Esher"}, element.Tag{Key: "addr:city", Value: "Esher"}},

		// street suffix replacement
		{element.Tag{Key: "addr:street", Value: "High ROAD"}, element.Tag{Key: "addr:street", Value: "High Road"}},
		{element.Tag{Key: "addr:street", Value: "Hurst Rd"}, element.Tag{Key: "addr:street", Value: "Hurst Road"}},
		{element.Tag{Key: "addr:street", Value: "Station Avenue"}, element.Tag{Key: "addr:street", Value: "Station Avenue"}},

		// house number separator normalization
		{element.Tag{Key: "addr:housenumber", Value: "8; 10"}, element.Tag{Key: "addr:housenumber", Value: "8,10"}},
		{element.Tag{Key: "addr:housenumber", Value: "2, 4, 6"}, element.Tag{Key: "addr:housenumber", Value: "2,4,6"}},
		{element.Tag{Key: "addr:housenumber", Value: "Council Offices"}, element.Tag{Key: "addr:housename", Value: "Council Offices"}},
		{element.Tag{Key: "addr:housenumber", Value: "Padley"}, element.Tag{Key: "addr:housename", Value: "Padley"}},

		// phone normalization
		{element.Tag{Key: "phone", Value: "44 (0)208 941 7075"}, element.Tag{Key: "phone", Value: "+442089417075"}},
		{element.Tag{Key: "Phone", Value: "+44 01372 463533."}, element.Tag{Key: "Phone", Value: "+441372463533"}},
		{element.Tag{Key: "contact:phone", Value: "01932 780046;01932 783479"}, element.Tag{Key: "contact:phone", Value: "+441932780046;+441932783479"}},

		// website scheme
		{element.Tag{Key: "contact:website", Value: "www.example.co.uk"}, element.Tag{Key: "contact:website", Value: "http://www.example.co.uk"}},
		{element.Tag{Key: "contact:website", Value: "http://example.co.uk"}, element.Tag{Key: "contact:website", Value: "http://example.co.uk"}},

		// tags without a rule pass through
		{element.Tag{Key: "name", Value: "Thames Path"}, element.Tag{Key: "name", Value: "Thames Path"}},
		{element.Tag{Key: "addr:country", Value: "UK"}, element.Tag{Key: "addr:country", Value: "UK"}},
		{element.Tag{Key: "addr:postcode", Value: "KT8"}, element.Tag{Key: "addr:postcode", Value: "KT8"}},
	}

	transformer := NewTransformer(DefaultCorrections())
	for _, test := range tests {
		result, pending := transformer.Apply(test.in)
		if pending != nil {
			t.Errorf("Apply(%v) produced unexpected pending tag %v", test.in, pending)
		}
		if result == nil {
			t.Errorf("Apply(%v) deleted tag, want %v", test.in, test.want)
			continue
		}
		if *result != test.want {
			t.Errorf("Apply(%v) = %v, want %v", test.in, *result, test.want)
		}
	}
}

func TestTransform_houseNameSplit(t *testing.T) {
	transformer := NewTransformer(DefaultCorrections())

	result, pending := transformer.Apply(element.Tag{Key: "addr:housename", Value: "16 Danesfield Close"})
	if pending == nil || *pending != (element.Tag{Key: "addr:housenumber", Value: "16"}) {
		t.Error("expected pending house number 16, got", pending)
	}
	if result == nil || *result != (element.Tag{Key: "addr:housename", Value: "Danesfield Close"}) {
		t.Error("expected house name Danesfield Close, got", result)
	}
}

func TestTransform_houseNameSplitStreet(t *testing.T) {
	transformer := NewTransformer(DefaultCorrections())

	// the street tag already carries the name, the house name
	// tag is redundant and dropped
	result, pending := transformer.Apply(element.Tag{Key: "addr:housename", Value: "12 Acacia Street"})
	if pending == nil || *pending != (element.Tag{Key: "addr:housenumber", Value: "12"}) {
		t.Error("expected pending house number 12, got", pending)
	}
	if result != nil {
		t.Error("expected house name to be dropped, got", result)
	}
}

func TestTransform_phoneIdempotent(t *testing.T) {
	transformer := NewTransformer(DefaultCorrections())

	values := []string{
		"44 (0)208 941 7075",
		"+44 01372 463533.",
		"01932 780046;01932 783479",
		"020 8979 1234",
		"+442089417075",
	}
	for _, value := range values {
		once, _ := transformer.Apply(element.Tag{Key: "phone", Value: value})
		twice, _ := transformer.Apply(*once)
		if *once != *twice {
			t.Errorf("phone normalization not idempotent for %q: %q != %q",
				value, once.Value, twice.Value)
		}
	}
}

func TestTransform_websiteIdempotent(t *testing.T) {
	transformer := NewTransformer(DefaultCorrections())

	once, _ := transformer.Apply(element.Tag{Key: "contact:website", Value: "example.co.uk"})
	twice, _ := transformer.Apply(*once)
	if *once != *twice {
		t.Error("website normalization not idempotent:", once.Value, twice.Value)
	}
}
