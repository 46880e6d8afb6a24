// Package audit implements the read-only profiling pass over an OSM
// extract. It tabulates the observed values per tag category without
// changing anything. The results are reviewed by hand and feed the
// correction tables used by the cleaning pass; the audit itself has
// no runtime dependency on the cleaning pass.
package audit

import (
	"regexp"
	"strings"

	"github.com/nbijlani/OpenStreetMap/element"
	"github.com/nbijlani/OpenStreetMap/mapping"
)

var (
	streetTypeRe       = regexp.MustCompile(`\S+\.?$`)
	postcodeCompleteRe = regexp.MustCompile(`^[A-Z]{2}[0-9]{1,2}\s[0-9][A-Z]{2}$`)
	invalidPhoneCharRe = regexp.MustCompile(`[^0-9+]`)

	// accepted house number formats: 6, 24A, i12 / Unit 5, Block C /
	// 8-10, 6;8 / 2,4,6,8
	houseNumberRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^i?[0-9]{1,4}[A-Z]?$`),
		regexp.MustCompile(`(?i)^Unit\s[0-9]{1,4}\s?(?:,\s)?(?:[A-Z\s]{1,20})?$`),
		regexp.MustCompile(`(?i)^[0-9]{1,4}[-;,][?:\s]?[0-9]{1,4}[A-Z]?$`),
		regexp.MustCompile(`^(?:[0-9]{1,4},){1,8}[0-9]{1,4}$`),
	}
)

// Summary holds the accumulated per-category frequency tables, value
// lists and validity findings of one audit pass.
type Summary struct {
	// TagKeys is the ordered list of distinct tag keys.
	TagKeys []string

	Countries   map[string]int
	StreetTypes map[string]int

	// flat number and house name values, split by source key
	Flats       []string
	FlatNumbers []string
	HouseNames  []string
	AddrNames   []string

	// postcodes split by completeness against the full UK pattern
	Postcodes           []string
	PostcodesIncomplete []string

	InvalidHouseNumbers map[string]struct{}
	InvalidPhones       []string

	Cities         map[string]struct{}
	Interpolations map[string]struct{}
	SourceNames    map[string]struct{}
	Types          map[string]struct{}
	Websites       map[string]struct{}

	tagKeySeen map[string]struct{}
}

func newSummary() *Summary {
	return &Summary{
		Countries:           map[string]int{},
		StreetTypes:         map[string]int{},
		InvalidHouseNumbers: map[string]struct{}{},
		Cities:              map[string]struct{}{},
		Interpolations:      map[string]struct{}{},
		SourceNames:         map[string]struct{}{},
		Types:               map[string]struct{}{},
		Websites:            map[string]struct{}{},
		tagKeySeen:          map[string]struct{}{},
	}
}

// An Auditor profiles all tags of the elements passed to it.
// It implements reader.Handler.
type Auditor struct {
	summary *Summary
}

func NewAuditor() *Auditor {
	return &Auditor{summary: newSummary()}
}

// Summary returns the tables accumulated so far.
func (a *Auditor) Summary() *Summary {
	return a.summary
}

func (a *Auditor) Node(node *element.Node) error {
	a.tags(node.Tags)
	return nil
}

func (a *Auditor) Way(way *element.Way) error {
	a.tags(way.Tags)
	return nil
}

func (a *Auditor) tags(tags element.Tags) {
	s := a.summary
	for _, tag := range tags {
		if _, ok := s.tagKeySeen[tag.Key]; !ok {
			s.tagKeySeen[tag.Key] = struct{}{}
			s.TagKeys = append(s.TagKeys, tag.Key)
		}

		switch mapping.Classify(tag) {
		case mapping.Country:
			s.Countries[tag.Value]++
		case mapping.FlatNumber:
			if tag.Key == "addr:flat" {
				s.Flats = append(s.Flats, tag.Value)
			} else {
				s.FlatNumbers = append(s.FlatNumbers, tag.Value)
			}
		case mapping.HouseName:
			if tag.Key == "addr:housename" {
				s.HouseNames = append(s.HouseNames, tag.Value)
			} else {
				s.AddrNames = append(s.AddrNames, tag.Value)
			}
		case mapping.Postcode:
			if postcodeCompleteRe.MatchString(tag.Value) {
				s.Postcodes = append(s.Postcodes, tag.Value)
			} else {
				s.PostcodesIncomplete = append(s.PostcodesIncomplete, tag.Value)
			}
		case mapping.Street:
			if m := streetTypeRe.FindString(tag.Value); m != "" {
				s.StreetTypes[m]++
			}
		case mapping.City:
			s.Cities[tag.Value] = struct{}{}
		case mapping.HouseNumber:
			if !validHouseNumber(tag.Value) {
				s.InvalidHouseNumbers[tag.Value] = struct{}{}
			}
		case mapping.Interpolation:
			s.Interpolations[tag.Value] = struct{}{}
		case mapping.Phone:
			if !validPhone(tag.Value) {
				s.InvalidPhones = append(s.InvalidPhones, tag.Value)
			}
		case mapping.Website:
			s.Websites[tag.Value] = struct{}{}
		case mapping.SourceName:
			s.SourceNames[tag.Value] = struct{}{}
		case mapping.TypeTag:
			s.Types[tag.Value] = struct{}{}
		}
	}
}

func validHouseNumber(value string) bool {
	for _, re := range houseNumberRes {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}

// validPhone accepts 10 to 14 digits, ignoring spaces, with an
// optional leading +. Flagged numbers are reported only, the cleaning
// pass still normalizes them.
func validPhone(value string) bool {
	stripped := strings.ReplaceAll(value, " ", "")
	if len(stripped) < 10 || len(stripped) > 14 {
		return false
	}
	return !invalidPhoneCharRe.MatchString(stripped)
}
