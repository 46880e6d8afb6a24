package mapping

import (
	"regexp"
	"strings"

	"github.com/nbijlani/OpenStreetMap/element"
)

// Value patterns for house names that are no house names at all.
// The patterns are tested against the full value.
var (
	// plain house numbers: 6, 24A, i12
	houseNumberDigitsRe = regexp.MustCompile(`(?i)^i?[0-9]{1,4}[A-Z]?$`)
	// number ranges and lists: 8-10, 6;8, 2,4A
	houseNumberRangeRe = regexp.MustCompile(`(?i)^[0-9]{1,4}[-;,][?:\s]?[0-9]{1,4}[A-Z]?$`)
	// flat numbers: Flat 7, Flat 2, The Maltings
	flatNumberValueRe = regexp.MustCompile(`(?i)^Flat\s[0-9]{1,4}\s?(?:,\s)?(?:[A-Z\s]{1,20})?$`)
	// combined number and name: 16 Danesfield Close
	houseNumberNameRe = regexp.MustCompile(`(?i)^[0-9]{1,4}\s(?:[A-Z]{1,20}\s[A-Z]{1,20})?$`)
)

// stripped from phone numbers before normalization
var phoneCharReplacer = strings.NewReplacer(" ", "", "(", "", ")", "", ".", "")

// A Transformer rewrites single tags according to the cleaning rule
// of their category. Transformations are total: every tag results in
// a rewritten tag, an unchanged tag, or an explicit deletion. Invalid
// values that no rule recognizes pass through unmodified.
type Transformer struct {
	corrections Corrections
}

func NewTransformer(corrections Corrections) *Transformer {
	return &Transformer{corrections: corrections}
}

// Apply applies the cleaning rule for the tag's category and returns
// the resulting tag. The tag is deleted if the result is nil.
// Splitting a house name produces an additional pending tag that the
// caller must merge into the element's tag list, after all direct
// tags are processed and only if its key is not already taken.
func (t *Transformer) Apply(tag element.Tag) (result, pending *element.Tag) {
	switch Classify(tag) {
	case FlatNumber:
		return t.flatNumber(tag), nil
	case HouseName:
		return t.houseName(tag)
	case City:
		return t.city(tag), nil
	case Street:
		return t.street(tag), nil
	case HouseNumber:
		return t.houseNumber(tag), nil
	case Phone:
		return t.phone(tag), nil
	case Website:
		return t.website(tag), nil
	}
	return &tag, nil
}

// flatNumber renames the deprecated addr:flat key to addr:flatnumber.
func (t *Transformer) flatNumber(tag element.Tag) *element.Tag {
	if key, ok := t.corrections.Keys[tag.Key]; ok {
		tag.Key = key
	}
	return &tag
}

// houseName renames the deprecated addr:name key to addr:housename
// and reclassifies values that are really house numbers or flat
// numbers. Values of the form "16 Danesfield Close" are split into a
// house number and a house name; if the name part ends in "Street"
// the house name is dropped since addr:street already carries it.
func (t *Transformer) houseName(tag element.Tag) (result, pending *element.Tag) {
	if key, ok := t.corrections.Keys[tag.Key]; ok {
		tag.Key = key
	}

	switch {
	case houseNumberRangeRe.MatchString(tag.Value) || houseNumberDigitsRe.MatchString(tag.Value):
		tag.Key = "addr:housenumber"
	case flatNumberValueRe.MatchString(tag.Value):
		tag.Key = "addr:flatnumber"
	case houseNumberNameRe.MatchString(tag.Value):
		words := strings.Fields(tag.Value)
		pending = &element.Tag{Key: "addr:housenumber", Value: words[0]}
		if words[len(words)-1] == "Street" {
			return nil, pending
		}
		tag.Value = strings.Join(words[1:], " ")
	}
	return &tag, pending
}

// city replaces misspelled city names, matched exactly.
func (t *Transformer) city(tag element.Tag) *element.Tag {
	if city, ok := t.corrections.Cities[tag.Value]; ok {
		tag.Value = city
	}
	return &tag
}

// street replaces the last word of the street name if it is a known
// bad suffix (Rd, ROAD).
func (t *Transformer) street(tag element.Tag) *element.Tag {
	words := strings.Fields(tag.Value)
	if len(words) == 0 {
		return &tag
	}
	last := words[len(words)-1]
	if suffix, ok := t.corrections.Streets[last]; ok {
		i := strings.LastIndex(tag.Value, last)
		tag.Value = tag.Value[:i] + suffix + tag.Value[i+len(last):]
	}
	return &tag
}

// houseNumber normalizes list separators to "," and re-keys tags
// whose normalized value is a known mis-tagged house name.
func (t *Transformer) houseNumber(tag element.Tag) *element.Tag {
	tag.Value = strings.ReplaceAll(tag.Value, ";", ",")
	tag.Value = strings.ReplaceAll(tag.Value, ", ", ",")
	if key, ok := t.corrections.ValueKeys[tag.Value]; ok {
		tag.Key = key
	}
	return &tag
}

// phone normalizes UK phone numbers to +44<national number>.
// Values with multiple numbers separated by ";" are normalized
// number by number.
func (t *Transformer) phone(tag element.Tag) *element.Tag {
	value := phoneCharReplacer.Replace(tag.Value)
	numbers := strings.Split(value, ";")
	for i, number := range numbers {
		if strings.HasPrefix(number, "44") {
			number = number[2:]
		}
		if strings.HasPrefix(number, "+440") {
			number = number[3:]
		}
		if strings.HasPrefix(number, "0") {
			number = number[1:]
		}
		if !strings.HasPrefix(number, "+44") {
			number = "+44" + number
		}
		numbers[i] = number
	}
	tag.Value = strings.Join(numbers, ";")
	return &tag
}

// website prefixes the http:// scheme if it is missing.
func (t *Transformer) website(tag element.Tag) *element.Tag {
	if !strings.HasPrefix(tag.Value, "http://") {
		tag.Value = "http://" + tag.Value
	}
	return &tag
}
