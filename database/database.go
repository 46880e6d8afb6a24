// Package database provides the relational output of the cleaning
// pass: five append-only tables for nodes, node tags, ways, way-node
// memberships and way tags. Backends register themselves by the
// prefix of the connection string (csv, postgres, sqlite).
package database

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

type Config struct {
	// Connection selects and configures the backend, e.g.
	// "csv://out", "postgres://user@host/db" or "sqlite://osm.db".
	Connection string
}

// Row types of the five output tables. Column order of the output is
// fixed, see the backend implementations.

type NodeRow struct {
	ID        int64
	Lat       float64
	Long      float64
	UserName  string
	UserID    int32
	Version   int32
	Changeset int64
	Timestamp time.Time
}

type WayRow struct {
	ID        int64
	UserName  string
	UserID    int32
	Version   int32
	Changeset int64
	Timestamp time.Time
}

type TagRow struct {
	ID    int64
	Key   string
	Value string
	Type  string
}

type WayNodeRow struct {
	ID     int64
	NodeID int64
	// Position is the 0-based index of the node in the way.
	Position int
}

type DB interface {
	// Init creates the five tables, dropping existing data.
	Init() error
	InsertNode(NodeRow, []TagRow) error
	InsertWay(WayRow, []WayNodeRow, []TagRow) error
	// Close flushes all pending rows and releases the backend.
	Close() error
}

var databases = map[string]func(Config) (DB, error){}

func Register(name string, open func(Config) (DB, error)) {
	databases[name] = open
}

func Open(conf Config) (DB, error) {
	open, ok := databases[ConnectionType(conf.Connection)]
	if !ok {
		return nil, errors.Errorf("unsupported database type in connection %q", conf.Connection)
	}
	return open(conf)
}

func ConnectionType(connection string) string {
	parts := strings.SplitN(connection, ":", 2)
	return parts[0]
}
