// Package reader reads OSM extracts and feeds nodes and ways to a
// Handler, one element at a time, in document order.
package reader

import (
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/nbijlani/OpenStreetMap/element"
	"github.com/nbijlani/OpenStreetMap/parser/osmxml"
	"github.com/nbijlani/OpenStreetMap/parser/pbf"
)

// A Handler receives the parsed elements. Both the audit pass and the
// cleaning pass implement Handler.
type Handler interface {
	Node(*element.Node) error
	Way(*element.Way) error
}

// Read parses the .osm, .osm.gz or .pbf file and passes every node
// and way to the handler.
func Read(fname string, handler Handler) error {
	if strings.HasSuffix(fname, ".pbf") {
		return pbf.Read(fname, handler.Node, handler.Way)
	}
	return readXML(fname, handler)
}

func readXML(fname string, handler Handler) error {
	parser, err := osmxml.NewOsmParser(fname)
	if err != nil {
		return errors.Wrapf(err, "opening OSM file %s", fname)
	}
	// releases the parse goroutine and the input file when a handler
	// aborts the pass
	defer parser.Close()
	for {
		elem, err := parser.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "parsing OSM file %s", fname)
		}
		switch {
		case elem.Node != nil:
			if err := handler.Node(elem.Node); err != nil {
				return err
			}
		case elem.Way != nil:
			if err := handler.Way(elem.Way); err != nil {
				return err
			}
		}
	}
}
