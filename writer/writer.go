// Package writer shapes nodes and ways into the relational output
// rows, applying the tag cleaning rules, and inserts them into a
// database backend.
package writer

import (
	"github.com/nbijlani/OpenStreetMap/database"
	"github.com/nbijlani/OpenStreetMap/element"
	"github.com/nbijlani/OpenStreetMap/log"
	"github.com/nbijlani/OpenStreetMap/mapping"
	"github.com/nbijlani/OpenStreetMap/stats"
)

// A Writer consumes one element at a time and emits its rows. It
// implements reader.Handler. Elements without the required metadata
// attributes are skipped with a warning; they never abort the pass.
type Writer struct {
	cleaner  *mapping.Cleaner
	db       database.DB
	progress *stats.Statistics
}

func New(cleaner *mapping.Cleaner, db database.DB, progress *stats.Statistics) *Writer {
	return &Writer{cleaner: cleaner, db: db, progress: progress}
}

func (w *Writer) Node(node *element.Node) error {
	if node.Metadata == nil {
		log.Warnf("skipping node %d: missing metadata attributes", node.ID)
		return nil
	}
	row := database.NodeRow{
		ID:        node.ID,
		Lat:       node.Lat,
		Long:      node.Long,
		UserName:  node.Metadata.UserName,
		UserID:    node.Metadata.UserID,
		Version:   node.Metadata.Version,
		Changeset: node.Metadata.Changeset,
		Timestamp: node.Metadata.Timestamp,
	}
	tags := w.tagRows(node.ID, node.Tags)
	if err := w.db.InsertNode(row, tags); err != nil {
		return err
	}
	if w.progress != nil {
		w.progress.AddNodes(1)
		w.progress.AddTags(len(tags))
	}
	return nil
}

func (w *Writer) Way(way *element.Way) error {
	if way.Metadata == nil {
		log.Warnf("skipping way %d: missing metadata attributes", way.ID)
		return nil
	}
	row := database.WayRow{
		ID:        way.ID,
		UserName:  way.Metadata.UserName,
		UserID:    way.Metadata.UserID,
		Version:   way.Metadata.Version,
		Changeset: way.Metadata.Changeset,
		Timestamp: way.Metadata.Timestamp,
	}
	wayNodes := make([]database.WayNodeRow, 0, len(way.Refs))
	for i, ref := range way.Refs {
		wayNodes = append(wayNodes, database.WayNodeRow{
			ID:       way.ID,
			NodeID:   ref,
			Position: i,
		})
	}
	tags := w.tagRows(way.ID, way.Tags)
	if err := w.db.InsertWay(row, wayNodes, tags); err != nil {
		return err
	}
	if w.progress != nil {
		w.progress.AddWays(1)
		w.progress.AddTags(len(tags))
	}
	return nil
}

func (w *Writer) tagRows(id int64, tags element.Tags) []database.TagRow {
	cleaned := w.cleaner.CleanTags(tags)
	rows := make([]database.TagRow, 0, len(cleaned))
	for _, tag := range cleaned {
		rows = append(rows, database.TagRow{
			ID:    id,
			Key:   tag.Key,
			Value: tag.Value,
			Type:  tag.Type,
		})
	}
	return rows
}
