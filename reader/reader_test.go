package reader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/nbijlani/OpenStreetMap/element"
)

const testDoc = `<osm version="0.6">
 <node id="1" lat="51.4" lon="-0.4" user="alice" uid="7" version="2" changeset="12" timestamp="2017-03-01T12:00:00Z"/>
 <node id="2" lat="51.5" lon="-0.5" user="alice" uid="7" version="1" changeset="12" timestamp="2017-03-01T12:00:00Z"/>
 <way id="10" user="bob" uid="8" version="3" changeset="14" timestamp="2017-03-03T09:00:00Z">
  <nd ref="1"/><nd ref="2"/>
 </way>
</osm>`

type countingHandler struct {
	nodes, ways int
	nodeErr     error
}

func (h *countingHandler) Node(*element.Node) error {
	h.nodes++
	return h.nodeErr
}

func (h *countingHandler) Way(*element.Way) error {
	h.ways++
	return nil
}

func TestRead(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "extract.osm")
	if err := os.WriteFile(fname, []byte(testDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	handler := &countingHandler{}
	if err := Read(fname, handler); err != nil {
		t.Fatal(err)
	}
	if handler.nodes != 2 || handler.ways != 1 {
		t.Error("handled", handler.nodes, "nodes and", handler.ways, "ways")
	}
}

func TestReadHandlerError(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "extract.osm")
	if err := os.WriteFile(fname, []byte(testDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	// an aborting handler must stop the pass, not leave it hanging
	handler := &countingHandler{nodeErr: errors.New("boom")}
	done := make(chan error, 1)
	go func() {
		done <- Read(fname, handler)
	}()
	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected handler error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Read did not return after handler error")
	}
	if handler.nodes != 1 {
		t.Error("pass continued after handler error:", handler.nodes, "nodes")
	}
}
