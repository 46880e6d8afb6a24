package audit

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Report writes a human readable summary of the audit pass. Values
// are sorted case-insensitively so repeated runs are comparable.
func (s *Summary) Report(w io.Writer) {
	fmt.Fprintf(w, "tag keys (%d):\n", len(s.TagKeys))
	for _, key := range s.TagKeys {
		fmt.Fprintf(w, "\t%s\n", key)
	}

	writeCounts(w, "street types", s.StreetTypes)
	writeCounts(w, "countries", s.Countries)
	writeValues(w, "cities", setValues(s.Cities))
	writeValues(w, "flat values (addr:flat)", s.Flats)
	writeValues(w, "flat values (addr:flatnumber)", s.FlatNumbers)
	writeValues(w, "house names (addr:housename)", s.HouseNames)
	writeValues(w, "house names (addr:name)", s.AddrNames)
	fmt.Fprintf(w, "postcodes: %d complete, %d incomplete\n",
		len(s.Postcodes), len(s.PostcodesIncomplete))
	writeValues(w, "incomplete postcodes", s.PostcodesIncomplete)
	writeValues(w, "invalid house numbers", setValues(s.InvalidHouseNumbers))
	writeValues(w, "invalid phone numbers", s.InvalidPhones)
	writeValues(w, "interpolations", setValues(s.Interpolations))
	writeValues(w, "source names", setValues(s.SourceNames))
	writeValues(w, "types", setValues(s.Types))
	fmt.Fprintf(w, "websites: %d distinct\n", len(s.Websites))
}

func writeCounts(w io.Writer, name string, counts map[string]int) {
	fmt.Fprintf(w, "%s (%d):\n", name, len(counts))
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sortFold(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "\t%s: %d\n", k, counts[k])
	}
}

func writeValues(w io.Writer, name string, values []string) {
	fmt.Fprintf(w, "%s (%d):\n", name, len(values))
	sorted := make([]string, len(values))
	copy(sorted, values)
	sortFold(sorted)
	for _, v := range sorted {
		fmt.Fprintf(w, "\t%s\n", v)
	}
}

func setValues(set map[string]struct{}) []string {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	return values
}

func sortFold(values []string) {
	sort.Slice(values, func(i, j int) bool {
		return strings.ToLower(values[i]) < strings.ToLower(values[j])
	})
}
