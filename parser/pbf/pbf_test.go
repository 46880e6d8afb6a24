package pbf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nbijlani/OpenStreetMap/element"
)

func TestReadCorruptFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "corrupt.pbf")
	if err := os.WriteFile(fname, []byte("this is not a PBF file"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Read must return the parse error, not block on the element
	// channels that the failed parser never closes.
	done := make(chan error, 1)
	go func() {
		done <- Read(fname,
			func(*element.Node) error { return nil },
			func(*element.Way) error { return nil },
		)
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected error for corrupt PBF file")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Read did not return on a corrupt PBF file")
	}
}

func TestReadMissingFile(t *testing.T) {
	err := Read(filepath.Join(t.TempDir(), "nope.pbf"),
		func(*element.Node) error { return nil },
		func(*element.Way) error { return nil },
	)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
