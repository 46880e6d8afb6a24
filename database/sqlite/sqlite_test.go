package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/nbijlani/OpenStreetMap/database"
)

func TestSQLite(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "osm.db")
	db, err := database.Open(database.Config{Connection: "sqlite://" + fname})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Init(); err != nil {
		t.Fatal(err)
	}

	ts := time.Date(2017, 3, 1, 12, 0, 0, 0, time.UTC)
	err = db.InsertNode(
		database.NodeRow{
			ID: 1, Lat: 51.4064, Long: -0.4123,
			UserName: "alice", UserID: 7, Version: 2, Changeset: 12,
			Timestamp: ts,
		},
		[]database.TagRow{{ID: 1, Key: "street", Value: "High Road", Type: "addr"}},
	)
	if err != nil {
		t.Fatal(err)
	}
	err = db.InsertWay(
		database.WayRow{ID: 10, UserName: "bob", UserID: 8, Version: 3, Changeset: 14, Timestamp: ts},
		[]database.WayNodeRow{{ID: 10, NodeID: 1, Position: 0}, {ID: 10, NodeID: 2, Position: 1}},
		[]database.TagRow{{ID: 10, Key: "highway", Value: "residential", Type: "regular"}},
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	check, err := sql.Open("sqlite", fname)
	if err != nil {
		t.Fatal(err)
	}
	defer check.Close()

	var user, timestamp string
	var lat float64
	row := check.QueryRow(`SELECT lat, user, timestamp FROM nodes WHERE id = 1`)
	if err := row.Scan(&lat, &user, &timestamp); err != nil {
		t.Fatal(err)
	}
	if lat != 51.4064 || user != "alice" || timestamp != "2017-03-01T12:00:00Z" {
		t.Error("unexpected node row:", lat, user, timestamp)
	}

	for table, want := range map[string]int{
		"nodes": 1, "nodes_tags": 1, "ways": 1, "ways_nodes": 2, "ways_tags": 1,
	} {
		var n int
		if err := check.QueryRow(`SELECT count(*) FROM ` + table).Scan(&n); err != nil {
			t.Fatal(err)
		}
		if n != want {
			t.Errorf("%s: %d rows, want %d", table, n, want)
		}
	}
}
