package mapping

import (
	"github.com/nbijlani/OpenStreetMap/element"
)

// Category is the semantic class of an addressing related tag.
// Classification is based on the tag key only.
type Category int

const (
	Unknown Category = iota
	Street
	TypeTag
	SourceName
	Website
	Phone
	Country
	FlatNumber
	HouseName
	Postcode
	HouseNumber
	Interpolation
	City
)

var categoryNames = map[Category]string{
	Unknown:       "unknown",
	Street:        "street",
	TypeTag:       "type",
	SourceName:    "source-name",
	Website:       "website",
	Phone:         "phone",
	Country:       "country",
	FlatNumber:    "flat-number",
	HouseName:     "house-name",
	Postcode:      "postcode",
	HouseNumber:   "house-number",
	Interpolation: "interpolation",
	City:          "city",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "invalid"
}

// Multiple keys are in use for phone numbers, postcodes, flat numbers
// and house names. All of them map to the same category.
// Note: source:addr:postcode is not a postcode, it names the source
// the postcode was obtained from.
var (
	phoneKeys = map[string]struct{}{
		"Phone":         {},
		"phone":         {},
		"contact:phone": {},
	}
	postcodeKeys = map[string]struct{}{
		"addr:postcode":     {},
		"old:addr:postcode": {},
		"postal_code":       {},
	}
	flatNumberKeys = map[string]struct{}{
		"addr:flat":       {},
		"addr:flatnumber": {},
	}
	houseNameKeys = map[string]struct{}{
		"addr:housename": {},
		"addr:name":      {},
	}
)

// Classify returns the Category of a tag. Returns Unknown for tags
// without a cleaning or auditing rule.
func Classify(tag element.Tag) Category {
	switch tag.Key {
	case "addr:street":
		return Street
	case "type":
		return TypeTag
	case "source:name":
		return SourceName
	case "contact:website":
		return Website
	case "addr:country":
		return Country
	case "addr:housenumber":
		return HouseNumber
	case "addr:interpolation":
		return Interpolation
	case "addr:city":
		return City
	}
	if _, ok := phoneKeys[tag.Key]; ok {
		return Phone
	}
	if _, ok := postcodeKeys[tag.Key]; ok {
		return Postcode
	}
	if _, ok := flatNumberKeys[tag.Key]; ok {
		return FlatNumber
	}
	if _, ok := houseNameKeys[tag.Key]; ok {
		return HouseName
	}
	return Unknown
}
