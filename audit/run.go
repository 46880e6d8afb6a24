package audit

import (
	"os"

	"github.com/nbijlani/OpenStreetMap/config"
	"github.com/nbijlani/OpenStreetMap/element"
	"github.com/nbijlani/OpenStreetMap/log"
	"github.com/nbijlani/OpenStreetMap/reader"
	"github.com/nbijlani/OpenStreetMap/stats"
)

// Run executes the audit subcommand: one read-only pass over the
// input, followed by the report on stdout.
func Run(opts config.Base) {
	if opts.Quiet {
		log.SetMinLevel(log.LStep)
	}

	auditor := NewAuditor()
	progress := stats.NewReporter()

	step := log.Step("Auditing OSM data")
	err := reader.Read(opts.Read, &countingHandler{auditor, progress})
	progress.Stop()
	if err != nil {
		log.Fatal(err)
	}
	step()

	auditor.Summary().Report(os.Stdout)
}

type countingHandler struct {
	auditor  *Auditor
	progress *stats.Statistics
}

func (h *countingHandler) Node(node *element.Node) error {
	h.progress.AddNodes(1)
	h.progress.AddTags(len(node.Tags))
	return h.auditor.Node(node)
}

func (h *countingHandler) Way(way *element.Way) error {
	h.progress.AddWays(1)
	h.progress.AddTags(len(way.Tags))
	return h.auditor.Way(way)
}
