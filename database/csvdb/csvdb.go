// Package csvdb writes the output tables as five CSV files, matching
// the column order expected by the downstream SQLite import scripts.
package csvdb

import (
	"bufio"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/nbijlani/OpenStreetMap/database"
)

func init() {
	database.Register("csv", New)
}

var files = []struct {
	name   string
	header []string
}{
	{"nodes.csv", []string{"id", "lat", "lon", "user", "uid", "version", "changeset", "timestamp"}},
	{"nodes_tags.csv", []string{"id", "key", "value", "type"}},
	{"ways.csv", []string{"id", "user", "uid", "version", "changeset", "timestamp"}},
	{"ways_nodes.csv", []string{"id", "node_id", "position"}},
	{"ways_tags.csv", []string{"id", "key", "value", "type"}},
}

const (
	nodesFile = iota
	nodeTagsFile
	waysFile
	wayNodesFile
	wayTagsFile
)

type CSV struct {
	dir     string
	closers []*os.File
	bufs    []*bufio.Writer
	writers []*csv.Writer
}

// New returns a CSV backend writing into the directory given by a
// csv://<dir> connection. An empty directory means the current
// working directory.
func New(conf database.Config) (database.DB, error) {
	dir := strings.TrimPrefix(conf.Connection, "csv://")
	dir = strings.TrimPrefix(dir, "csv:")
	if dir == "" {
		dir = "."
	}
	return &CSV{dir: dir}, nil
}

func (c *CSV) Init() error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return errors.Wrapf(err, "creating output directory %s", c.dir)
	}
	for _, f := range files {
		fname := filepath.Join(c.dir, f.name)
		file, err := os.Create(fname)
		if err != nil {
			c.Close()
			return errors.Wrapf(err, "creating %s", fname)
		}
		buf := bufio.NewWriter(file)
		w := csv.NewWriter(buf)
		c.closers = append(c.closers, file)
		c.bufs = append(c.bufs, buf)
		c.writers = append(c.writers, w)
		if err := w.Write(f.header); err != nil {
			c.Close()
			return errors.Wrapf(err, "writing header of %s", fname)
		}
	}
	return nil
}

func (c *CSV) InsertNode(node database.NodeRow, tags []database.TagRow) error {
	err := c.writers[nodesFile].Write([]string{
		formatInt(node.ID),
		strconv.FormatFloat(node.Lat, 'f', -1, 64),
		strconv.FormatFloat(node.Long, 'f', -1, 64),
		node.UserName,
		formatInt(int64(node.UserID)),
		formatInt(int64(node.Version)),
		formatInt(node.Changeset),
		formatTime(node.Timestamp),
	})
	if err != nil {
		return err
	}
	return c.insertTags(nodeTagsFile, tags)
}

func (c *CSV) InsertWay(way database.WayRow, nodes []database.WayNodeRow, tags []database.TagRow) error {
	err := c.writers[waysFile].Write([]string{
		formatInt(way.ID),
		way.UserName,
		formatInt(int64(way.UserID)),
		formatInt(int64(way.Version)),
		formatInt(way.Changeset),
		formatTime(way.Timestamp),
	})
	if err != nil {
		return err
	}
	for _, nd := range nodes {
		err := c.writers[wayNodesFile].Write([]string{
			formatInt(nd.ID),
			formatInt(nd.NodeID),
			strconv.Itoa(nd.Position),
		})
		if err != nil {
			return err
		}
	}
	return c.insertTags(wayTagsFile, tags)
}

func (c *CSV) insertTags(file int, tags []database.TagRow) error {
	for _, tag := range tags {
		err := c.writers[file].Write([]string{
			formatInt(tag.ID), tag.Key, tag.Value, tag.Type,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *CSV) Close() error {
	var firstErr error
	for i, w := range c.writers {
		w.Flush()
		if err := w.Error(); err != nil && firstErr == nil {
			firstErr = err
		}
		if err := c.bufs[i].Flush(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, f := range c.closers {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.writers = nil
	c.bufs = nil
	c.closers = nil
	return firstErr
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
