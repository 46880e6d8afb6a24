// Package osmxml provides a stream based parser for OSM XML extracts.
// Parsing is handled in a background goroutine.
package osmxml

import (
	"compress/gzip"
	"encoding/xml"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nbijlani/OpenStreetMap/element"
	"github.com/nbijlani/OpenStreetMap/log"
)

type Element struct {
	Node *element.Node
	Way  *element.Way
}

// Parser is a stream based parser for .osm XML files.
type Parser struct {
	reader  io.Reader
	elems   chan Element
	errc    chan error
	stop    chan struct{}
	stopped bool
	running bool
	onClose func() error
}

// Next returns the next node or way of the document, in document
// order. Returns io.EOF and an empty Element at the end of the
// document.
func (p *Parser) Next() (Element, error) {
	if !p.running {
		p.running = true
		go parse(p.reader, p.elems, p.errc, p.stop)
	}
	select {
	case elem, ok := <-p.elems:
		if !ok {
			p.elems = nil
		} else {
			return elem, nil
		}
	case err, ok := <-p.errc:
		if !ok {
			p.errc = nil
		} else {
			if p.onClose != nil {
				p.onClose()
				p.onClose = nil
			}
			return Element{}, err
		}
	}
	if p.onClose != nil {
		err := p.onClose()
		p.onClose = nil
		return Element{}, err
	}
	return Element{}, nil
}

// NewParser returns a parser from an io.Reader
func NewParser(r io.Reader) *Parser {
	return &Parser{
		reader: r,
		elems:  make(chan Element),
		errc:   make(chan error),
		stop:   make(chan struct{}),
	}
}

// Close stops the parse goroutine and closes the underlying file.
// Must be called when the caller abandons the parser before Next
// returned io.EOF or an error; it is safe to call in any state and
// more than once.
func (p *Parser) Close() error {
	if !p.stopped {
		p.stopped = true
		close(p.stop)
	}
	if p.onClose != nil {
		err := p.onClose()
		p.onClose = nil
		return err
	}
	return nil
}

// NewOsmParser returns a parser for a .osm or .osm.gz file.
func NewOsmParser(fname string) (*Parser, error) {
	file, err := os.Open(fname)
	if err != nil {
		return nil, err
	}

	var reader io.Reader = file
	if strings.HasSuffix(fname, ".gz") {
		reader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, err
		}
	}

	p := NewParser(reader)
	p.onClose = file.Close
	return p, nil
}

func parse(reader io.Reader, elems chan Element, errc chan error, stop chan struct{}) {
	defer close(elems)
	defer close(errc)

	decoder := xml.NewDecoder(reader)

	var tags element.Tags
	node := &element.Node{}
	way := &element.Way{}
	// set when a required attribute is missing or unparseable;
	// the whole element is skipped
	malformed := false

	for {
		token, err := decoder.Token()
		if err != nil {
			select {
			case errc <- err:
			case <-stop:
			}
			return
		}

		switch tok := token.(type) {
		case xml.StartElement:
			switch tok.Name.Local {
			case "node":
				malformed = false
				node.Metadata = &element.Metadata{}
				idSeen, latSeen, longSeen := false, false, false
				for _, attr := range tok.Attr {
					var err error
					switch attr.Name.Local {
					case "id":
						node.ID, err = strconv.ParseInt(attr.Value, 10, 64)
						idSeen = true
					case "lat":
						node.Lat, err = strconv.ParseFloat(attr.Value, 64)
						latSeen = true
					case "lon":
						node.Long, err = strconv.ParseFloat(attr.Value, 64)
						longSeen = true
					}
					malformed = malformed || err != nil
				}
				if !idSeen || !latSeen || !longSeen {
					malformed = true
				}
				malformed = malformed || !setElemMetadata(tok.Attr, &node.OSMElem)
			case "way":
				malformed = false
				way.Metadata = &element.Metadata{}
				idSeen := false
				for _, attr := range tok.Attr {
					if attr.Name.Local == "id" {
						var err error
						way.ID, err = strconv.ParseInt(attr.Value, 10, 64)
						malformed = malformed || err != nil
						idSeen = true
					}
				}
				malformed = malformed || !idSeen
				malformed = malformed || !setElemMetadata(tok.Attr, &way.OSMElem)
			case "nd":
				for _, attr := range tok.Attr {
					if attr.Name.Local == "ref" {
						ref, err := strconv.ParseInt(attr.Value, 10, 64)
						if err != nil {
							malformed = true
							continue
						}
						way.Refs = append(way.Refs, ref)
					}
				}
			case "tag":
				var k, v string
				for _, attr := range tok.Attr {
					if attr.Name.Local == "k" {
						k = attr.Value
					} else if attr.Name.Local == "v" {
						v = attr.Value
					}
				}
				tags = append(tags, element.Tag{Key: k, Value: v})
			case "osm", "relation", "member", "bounds":
				// pass
			default:
				log.Warnf("unhandled XML tag %s in OSM file", tok.Name.Local)
			}
		case xml.EndElement:
			switch tok.Name.Local {
			case "node":
				if malformed {
					log.Warnf("skipping malformed node %d", node.ID)
				} else {
					node.Tags = tags
					select {
					case elems <- Element{Node: node}:
					case <-stop:
						return
					}
				}
				node = &element.Node{}
				tags = nil
			case "way":
				if malformed {
					log.Warnf("skipping malformed way %d", way.ID)
				} else {
					way.Tags = tags
					select {
					case elems <- Element{Way: way}:
					case <-stop:
						return
					}
				}
				way = &element.Way{}
				tags = nil
			case "relation":
				// relations are not part of the output
				tags = nil
			case "osm":
				select {
				case errc <- io.EOF:
				case <-stop:
				}
				return
			}
		}
	}
}

// setElemMetadata parses the metadata attributes. Reports whether all
// required attributes were present and parseable.
func setElemMetadata(attrs []xml.Attr, elem *element.OSMElem) bool {
	seen := 0
	for _, attr := range attrs {
		var err error
		switch attr.Name.Local {
		case "version":
			var v int64
			v, err = strconv.ParseInt(attr.Value, 10, 32)
			elem.Metadata.Version = int32(v)
		case "uid":
			var v int64
			v, err = strconv.ParseInt(attr.Value, 10, 32)
			elem.Metadata.UserID = int32(v)
		case "user":
			elem.Metadata.UserName = attr.Value
		case "changeset":
			elem.Metadata.Changeset, err = strconv.ParseInt(attr.Value, 10, 64)
		case "timestamp":
			elem.Metadata.Timestamp, err = time.Parse(time.RFC3339, attr.Value)
		default:
			continue
		}
		if err != nil {
			return false
		}
		seen++
	}
	return seen == 5
}
