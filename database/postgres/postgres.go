// Package postgres bulk loads the output tables into PostgreSQL with
// COPY FROM STDIN, all five tables in a single transaction.
package postgres

import (
	"database/sql"
	"fmt"

	pq "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/nbijlani/OpenStreetMap/database"
)

func init() {
	database.Register("postgres", New)
	database.Register("postgresql", New)
}

type SQLError struct {
	query         string
	originalError error
}

func (e *SQLError) Error() string {
	return fmt.Sprintf("SQL Error: %s in query %s", e.originalError.Error(), e.query)
}

var tableDDL = []string{
	`CREATE TABLE "nodes" (
		id BIGINT,
		lat DOUBLE PRECISION,
		lon DOUBLE PRECISION,
		"user" TEXT,
		uid INTEGER,
		version INTEGER,
		changeset BIGINT,
		timestamp TIMESTAMP WITH TIME ZONE)`,
	`CREATE TABLE "nodes_tags" (
		id BIGINT,
		key TEXT,
		value TEXT,
		type TEXT)`,
	`CREATE TABLE "ways" (
		id BIGINT,
		"user" TEXT,
		uid INTEGER,
		version INTEGER,
		changeset BIGINT,
		timestamp TIMESTAMP WITH TIME ZONE)`,
	`CREATE TABLE "ways_nodes" (
		id BIGINT,
		node_id BIGINT,
		position INTEGER)`,
	`CREATE TABLE "ways_tags" (
		id BIGINT,
		key TEXT,
		value TEXT,
		type TEXT)`,
}

var tableNames = []string{"nodes", "nodes_tags", "ways", "ways_nodes", "ways_tags"}

type PostGres struct {
	db    *sql.DB
	tx    *sql.Tx
	stmts map[string]*sql.Stmt
}

func New(conf database.Config) (database.DB, error) {
	db, err := sql.Open("postgres", conf.Connection)
	if err != nil {
		return nil, errors.Wrap(err, "opening PostgreSQL connection")
	}
	return &PostGres{db: db}, nil
}

// Init drops and recreates the five tables and prepares the COPY
// statements.
func (pg *PostGres) Init() error {
	tx, err := pg.db.Begin()
	if err != nil {
		return err
	}
	for i, ddl := range tableDDL {
		drop := fmt.Sprintf(`DROP TABLE IF EXISTS "%s"`, tableNames[i])
		if _, err := tx.Exec(drop); err != nil {
			tx.Rollback()
			return &SQLError{drop, err}
		}
		if _, err := tx.Exec(ddl); err != nil {
			tx.Rollback()
			return &SQLError{ddl, err}
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	pg.tx, err = pg.db.Begin()
	if err != nil {
		return err
	}
	pg.stmts = make(map[string]*sql.Stmt)
	copyColumns := map[string][]string{
		"nodes":      {"id", "lat", "lon", "user", "uid", "version", "changeset", "timestamp"},
		"nodes_tags": {"id", "key", "value", "type"},
		"ways":       {"id", "user", "uid", "version", "changeset", "timestamp"},
		"ways_nodes": {"id", "node_id", "position"},
		"ways_tags":  {"id", "key", "value", "type"},
	}
	for _, name := range tableNames {
		copySQL := pq.CopyIn(name, copyColumns[name]...)
		stmt, err := pg.tx.Prepare(copySQL)
		if err != nil {
			pg.tx.Rollback()
			pg.tx = nil
			return &SQLError{copySQL, err}
		}
		pg.stmts[name] = stmt
	}
	return nil
}

func (pg *PostGres) InsertNode(node database.NodeRow, tags []database.TagRow) error {
	_, err := pg.stmts["nodes"].Exec(
		node.ID, node.Lat, node.Long, node.UserName, node.UserID,
		node.Version, node.Changeset, node.Timestamp,
	)
	if err != nil {
		return &SQLError{"copy nodes", err}
	}
	return pg.insertTags("nodes_tags", tags)
}

func (pg *PostGres) InsertWay(way database.WayRow, nodes []database.WayNodeRow, tags []database.TagRow) error {
	_, err := pg.stmts["ways"].Exec(
		way.ID, way.UserName, way.UserID, way.Version, way.Changeset,
		way.Timestamp,
	)
	if err != nil {
		return &SQLError{"copy ways", err}
	}
	for _, nd := range nodes {
		if _, err := pg.stmts["ways_nodes"].Exec(nd.ID, nd.NodeID, nd.Position); err != nil {
			return &SQLError{"copy ways_nodes", err}
		}
	}
	return pg.insertTags("ways_tags", tags)
}

func (pg *PostGres) insertTags(table string, tags []database.TagRow) error {
	for _, tag := range tags {
		if _, err := pg.stmts[table].Exec(tag.ID, tag.Key, tag.Value, tag.Type); err != nil {
			return &SQLError{"copy " + table, err}
		}
	}
	return nil
}

// Close flushes the COPY statements, commits and disconnects.
func (pg *PostGres) Close() error {
	var firstErr error
	if pg.tx != nil {
		for _, name := range tableNames {
			stmt := pg.stmts[name]
			if stmt == nil {
				continue
			}
			// final Exec flushes the COPY buffer
			if _, err := stmt.Exec(); err != nil && firstErr == nil {
				firstErr = &SQLError{"flush copy " + name, err}
			}
			if err := stmt.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		if firstErr != nil {
			pg.tx.Rollback()
		} else if err := pg.tx.Commit(); err != nil {
			firstErr = err
		}
		pg.tx = nil
	}
	if err := pg.db.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
