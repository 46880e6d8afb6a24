package audit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nbijlani/OpenStreetMap/element"
)

func TestReport(t *testing.T) {
	auditor := NewAuditor()
	auditor.Node(node(
		element.Tag{Key: "addr:street", Value: "Hurst Rd"},
		element.Tag{Key: "addr:street", Value: "High Road"},
		element.Tag{Key: "addr:country", Value: "GB"},
		element.Tag{Key: "addr:postcode", Value: "KT8 9AU"},
		element.Tag{Key: "addr:postcode", Value: "KT12"},
		element.Tag{Key: "phone", Value: "12345"},
	))

	var buf bytes.Buffer
	auditor.Summary().Report(&buf)
	report := buf.String()

	for _, want := range []string{
		"tag keys (4):",
		"street types (2):",
		"\tRd: 1\n",
		"\tRoad: 1\n",
		"countries (1):",
		"\tGB: 1\n",
		"postcodes: 1 complete, 1 incomplete",
		"invalid phone numbers (1):",
		"\t12345\n",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestSortFold(t *testing.T) {
	values := []string{"delta", "Alpha", "charlie", "Bravo"}
	sortFold(values)
	want := []string{"Alpha", "Bravo", "charlie", "delta"}
	for i := range want {
		if values[i] != want[i] {
			t.Fatal("sort order:", values)
		}
	}
}
