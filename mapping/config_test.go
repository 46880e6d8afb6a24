package mapping

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCorrectionsFromFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "corrections.yaml")
	data := []byte(`
streets:
  Ave: Avenue
  St: Street
cities:
  Kingston: Kingston upon Thames
`)
	if err := os.WriteFile(fname, data, 0o644); err != nil {
		t.Fatal(err)
	}

	corrections, err := CorrectionsFromFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if corrections.Streets["Ave"] != "Avenue" {
		t.Error("street table not loaded:", corrections.Streets)
	}
	if _, ok := corrections.Streets["ROAD"]; ok {
		t.Error("loaded street table should replace the defaults")
	}
	if corrections.Cities["Kingston"] != "Kingston upon Thames" {
		t.Error("city table not loaded:", corrections.Cities)
	}
	// tables missing in the file keep the defaults
	if corrections.Keys["addr:flat"] != "addr:flatnumber" {
		t.Error("default key table lost:", corrections.Keys)
	}
	if corrections.ValueKeys["Padley"] != "addr:housename" {
		t.Error("default value key table lost:", corrections.ValueKeys)
	}
}

func TestCorrectionsFromFileMissing(t *testing.T) {
	_, err := CorrectionsFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestCorrectionsFromFileInvalid(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "corrections.yaml")
	if err := os.WriteFile(fname, []byte("streets: [not, a, map]"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := CorrectionsFromFile(fname); err == nil {
		t.Fatal("expected error for invalid file")
	}
}
