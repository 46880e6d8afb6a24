// Package sqlite loads the output tables into a SQLite database
// file, using the pure Go driver. This replaces the separate
// csv-then-import step the project originally required.
package sqlite

import (
	"database/sql"
	"strings"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/nbijlani/OpenStreetMap/database"
)

func init() {
	database.Register("sqlite", New)
}

var tableDDL = []string{
	`CREATE TABLE nodes (
		id INTEGER,
		lat REAL,
		lon REAL,
		user TEXT,
		uid INTEGER,
		version INTEGER,
		changeset INTEGER,
		timestamp TEXT)`,
	`CREATE TABLE nodes_tags (
		id INTEGER,
		key TEXT,
		value TEXT,
		type TEXT)`,
	`CREATE TABLE ways (
		id INTEGER,
		user TEXT,
		uid INTEGER,
		version INTEGER,
		changeset INTEGER,
		timestamp TEXT)`,
	`CREATE TABLE ways_nodes (
		id INTEGER,
		node_id INTEGER,
		position INTEGER)`,
	`CREATE TABLE ways_tags (
		id INTEGER,
		key TEXT,
		value TEXT,
		type TEXT)`,
}

var tableNames = []string{"nodes", "nodes_tags", "ways", "ways_nodes", "ways_tags"}

var insertSQL = map[string]string{
	"nodes":      `INSERT INTO nodes (id, lat, lon, user, uid, version, changeset, timestamp) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	"nodes_tags": `INSERT INTO nodes_tags (id, key, value, type) VALUES (?, ?, ?, ?)`,
	"ways":       `INSERT INTO ways (id, user, uid, version, changeset, timestamp) VALUES (?, ?, ?, ?, ?, ?)`,
	"ways_nodes": `INSERT INTO ways_nodes (id, node_id, position) VALUES (?, ?, ?)`,
	"ways_tags":  `INSERT INTO ways_tags (id, key, value, type) VALUES (?, ?, ?, ?)`,
}

type SQLite struct {
	db    *sql.DB
	tx    *sql.Tx
	stmts map[string]*sql.Stmt
}

// New returns a SQLite backend writing into the file given by a
// sqlite://<file> connection.
func New(conf database.Config) (database.DB, error) {
	fname := strings.TrimPrefix(conf.Connection, "sqlite://")
	fname = strings.TrimPrefix(fname, "sqlite:")
	if fname == "" {
		return nil, errors.Errorf("missing file name in connection %q", conf.Connection)
	}
	db, err := sql.Open("sqlite", fname)
	if err != nil {
		return nil, errors.Wrapf(err, "opening SQLite database %s", fname)
	}
	return &SQLite{db: db}, nil
}

// Init drops and recreates the five tables and starts the import
// transaction. All rows are inserted in a single transaction,
// anything else is prohibitively slow with SQLite.
func (s *SQLite) Init() error {
	for i, ddl := range tableDDL {
		if _, err := s.db.Exec(`DROP TABLE IF EXISTS ` + tableNames[i]); err != nil {
			return errors.Wrapf(err, "dropping table %s", tableNames[i])
		}
		if _, err := s.db.Exec(ddl); err != nil {
			return errors.Wrapf(err, "creating table %s", tableNames[i])
		}
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	s.tx = tx
	s.stmts = make(map[string]*sql.Stmt)
	for _, name := range tableNames {
		stmt, err := tx.Prepare(insertSQL[name])
		if err != nil {
			tx.Rollback()
			s.tx = nil
			return errors.Wrapf(err, "preparing insert for %s", name)
		}
		s.stmts[name] = stmt
	}
	return nil
}

func (s *SQLite) InsertNode(node database.NodeRow, tags []database.TagRow) error {
	_, err := s.stmts["nodes"].Exec(
		node.ID, node.Lat, node.Long, node.UserName, node.UserID,
		node.Version, node.Changeset, formatTime(node.Timestamp),
	)
	if err != nil {
		return errors.Wrap(err, "inserting node")
	}
	return s.insertTags("nodes_tags", tags)
}

func (s *SQLite) InsertWay(way database.WayRow, nodes []database.WayNodeRow, tags []database.TagRow) error {
	_, err := s.stmts["ways"].Exec(
		way.ID, way.UserName, way.UserID, way.Version, way.Changeset,
		formatTime(way.Timestamp),
	)
	if err != nil {
		return errors.Wrap(err, "inserting way")
	}
	for _, nd := range nodes {
		if _, err := s.stmts["ways_nodes"].Exec(nd.ID, nd.NodeID, nd.Position); err != nil {
			return errors.Wrap(err, "inserting way node")
		}
	}
	return s.insertTags("ways_tags", tags)
}

func (s *SQLite) insertTags(table string, tags []database.TagRow) error {
	for _, tag := range tags {
		if _, err := s.stmts[table].Exec(tag.ID, tag.Key, tag.Value, tag.Type); err != nil {
			return errors.Wrapf(err, "inserting into %s", table)
		}
	}
	return nil
}

func (s *SQLite) Close() error {
	var firstErr error
	if s.tx != nil {
		for _, name := range tableNames {
			if stmt := s.stmts[name]; stmt != nil {
				if err := stmt.Close(); err != nil && firstErr == nil {
					firstErr = err
				}
			}
		}
		if err := s.tx.Commit(); err != nil && firstErr == nil {
			firstErr = err
		}
		s.tx = nil
	}
	if err := s.db.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
