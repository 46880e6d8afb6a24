// Package pbf reads nodes and ways from OSM PBF files, based on the
// go-osm PBF parser.
package pbf

import (
	"context"
	"os"
	"sort"

	osm "github.com/omniscale/go-osm"
	osmpbf "github.com/omniscale/go-osm/parser/pbf"
	"github.com/pkg/errors"

	"github.com/nbijlani/OpenStreetMap/element"
)

// Read parses the PBF file and passes each node and way to the
// handler funcs. Nodes and ways are delivered in file order within
// their type.
func Read(fname string, nodes func(*element.Node) error, ways func(*element.Way) error) error {
	f, err := os.Open(fname)
	if err != nil {
		return errors.Wrapf(err, "opening PBF file %s", fname)
	}
	defer f.Close()

	nodeChan := make(chan []osm.Node)
	wayChan := make(chan []osm.Way)

	parser := osmpbf.New(f, osmpbf.Config{
		IncludeMetadata: true,
		Nodes:           nodeChan,
		Ways:            wayChan,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	parseErr := make(chan error, 1)
	go func() {
		parseErr <- parser.Parse(ctx)
	}()

	// Parse does not close the element channels when it fails, so the
	// drain loop also has to watch parseErr or a broken file would
	// block it forever.
	var handlerErr error
	var parseRes error
	parseReturned := false
	for !parseReturned && (nodeChan != nil || wayChan != nil) {
		select {
		case nds, ok := <-nodeChan:
			if !ok {
				nodeChan = nil
				continue
			}
			if handlerErr != nil {
				continue
			}
			for i := range nds {
				if err := nodes(convertNode(&nds[i])); err != nil {
					handlerErr = err
					cancel()
					break
				}
			}
		case ws, ok := <-wayChan:
			if !ok {
				wayChan = nil
				continue
			}
			if handlerErr != nil {
				continue
			}
			for i := range ws {
				if err := ways(convertWay(&ws[i])); err != nil {
					handlerErr = err
					cancel()
					break
				}
			}
		case parseRes = <-parseErr:
			parseReturned = true
		}
	}
	if !parseReturned {
		parseRes = <-parseErr
	}

	if parseRes != nil && handlerErr == nil {
		return errors.Wrapf(parseRes, "parsing PBF file %s", fname)
	}
	return handlerErr
}

func convertNode(nd *osm.Node) *element.Node {
	return &element.Node{
		OSMElem: convertElement(&nd.Element),
		Lat:     nd.Lat,
		Long:    nd.Long,
	}
}

func convertWay(way *osm.Way) *element.Way {
	return &element.Way{
		OSMElem: convertElement(&way.Element),
		Refs:    way.Refs,
	}
}

func convertElement(elem *osm.Element) element.OSMElem {
	result := element.OSMElem{
		ID:   elem.ID,
		Tags: convertTags(elem.Tags),
	}
	if elem.Metadata != nil {
		result.Metadata = &element.Metadata{
			UserID:    elem.Metadata.UserID,
			UserName:  elem.Metadata.UserName,
			Version:   elem.Metadata.Version,
			Timestamp: elem.Metadata.Timestamp,
			Changeset: elem.Metadata.Changeset,
		}
	}
	return result
}

// convertTags orders the tag map by key. PBF tag maps have no
// reliable order; sorting keeps the output deterministic.
func convertTags(tags osm.Tags) element.Tags {
	if len(tags) == 0 {
		return nil
	}
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	result := make(element.Tags, 0, len(tags))
	for _, k := range keys {
		result = append(result, element.Tag{Key: k, Value: tags[k]})
	}
	return result
}
