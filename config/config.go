package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/nbijlani/OpenStreetMap/log"
)

// Config is the optional JSON configuration file. Command line flags
// take precedence over the file.
type Config struct {
	Connection  string `json:"connection"`
	Corrections string `json:"corrections"`
}

const defaultConnection = "csv://."

// Base holds the options shared by the audit and process commands.
type Base struct {
	Read        string
	Connection  string
	Corrections string
	ConfigFile  string
	Quiet       bool
}

func (o *Base) updateFromConfig() error {
	conf := &Config{}

	if o.ConfigFile != "" {
		f, err := os.Open(o.ConfigFile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := json.NewDecoder(f).Decode(&conf); err != nil {
			return err
		}
	}

	if o.Connection == defaultConnection && conf.Connection != "" {
		o.Connection = conf.Connection
	}
	if o.Corrections == "" {
		o.Corrections = conf.Corrections
	}
	return nil
}

func (o *Base) check() []error {
	errs := []error{}
	if o.Read == "" {
		errs = append(errs, errors.New("missing -read"))
	}
	return errs
}

var AuditFlags = flag.NewFlagSet("audit", flag.ExitOnError)
var ProcessFlags = flag.NewFlagSet("process", flag.ExitOnError)

var options = Base{}

func addBaseFlags(flags *flag.FlagSet) {
	flags.StringVar(&options.Read, "read", "", "OSM file to read (.osm, .osm.gz or .pbf)")
	flags.StringVar(&options.ConfigFile, "config", "", "config (json)")
	flags.BoolVar(&options.Quiet, "quiet", false, "quiet log output")
}

func UsageAudit() {
	fmt.Fprintf(os.Stderr, "Usage: %s %s [args]\n\n", os.Args[0], os.Args[1])
	AuditFlags.PrintDefaults()
	os.Exit(2)
}

func UsageProcess() {
	fmt.Fprintf(os.Stderr, "Usage: %s %s [args]\n\n", os.Args[0], os.Args[1])
	ProcessFlags.PrintDefaults()
	os.Exit(2)
}

func init() {
	AuditFlags.Usage = UsageAudit
	ProcessFlags.Usage = UsageProcess

	addBaseFlags(AuditFlags)

	addBaseFlags(ProcessFlags)
	// the audit pass only reads, it takes neither an output connection
	// nor correction tables
	ProcessFlags.StringVar(&options.Connection, "connection", defaultConnection,
		"output connection (csv://dir, sqlite://file or postgres://...)")
	ProcessFlags.StringVar(&options.Corrections, "corrections", "", "corrections file (yaml)")
}

func ParseAudit(args []string) Base {
	return parse(AuditFlags, args, UsageAudit)
}

func ParseProcess(args []string) Base {
	return parse(ProcessFlags, args, UsageProcess)
}

func parse(flags *flag.FlagSet, args []string, usage func()) Base {
	if len(args) == 0 {
		usage()
	}
	if err := flags.Parse(args); err != nil {
		log.Fatal(err)
	}
	if err := options.updateFromConfig(); err != nil {
		log.Fatal(err)
	}
	if errs := options.check(); len(errs) != 0 {
		reportErrors(errs)
		usage()
	}
	return options
}

func reportErrors(errs []error) {
	fmt.Println("errors in config/options:")
	for _, err := range errs {
		fmt.Printf("\t%s\n", err)
	}
	os.Exit(1)
}
