// Package process implements the process subcommand: a single
// cleaning pass that reads an OSM extract, applies the tag cleaning
// rules and loads the five output tables.
package process

import (
	"github.com/nbijlani/OpenStreetMap/config"
	"github.com/nbijlani/OpenStreetMap/database"
	_ "github.com/nbijlani/OpenStreetMap/database/csvdb"
	_ "github.com/nbijlani/OpenStreetMap/database/postgres"
	_ "github.com/nbijlani/OpenStreetMap/database/sqlite"
	"github.com/nbijlani/OpenStreetMap/log"
	"github.com/nbijlani/OpenStreetMap/mapping"
	"github.com/nbijlani/OpenStreetMap/reader"
	"github.com/nbijlani/OpenStreetMap/stats"
	"github.com/nbijlani/OpenStreetMap/writer"
)

// Run executes the cleaning pass.
func Run(opts config.Base) {
	if opts.Quiet {
		log.SetMinLevel(log.LStep)
	}

	corrections := mapping.DefaultCorrections()
	if opts.Corrections != "" {
		var err error
		corrections, err = mapping.CorrectionsFromFile(opts.Corrections)
		if err != nil {
			log.Fatal(err)
		}
	}

	db, err := database.Open(database.Config{Connection: opts.Connection})
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Init(); err != nil {
		log.Fatal(err)
	}

	progress := stats.NewReporter()
	w := writer.New(mapping.NewCleaner(corrections), db, progress)

	step := log.Step("Processing OSM data")
	err = reader.Read(opts.Read, w)
	counts := progress.Stop()
	if err != nil {
		db.Close()
		log.Fatal(err)
	}
	if err := db.Close(); err != nil {
		log.Fatal(err)
	}
	step()

	log.Printf("[info] processed %d nodes, %d ways, %d cleaned tags",
		counts.Nodes, counts.Ways, counts.Tags)
}
