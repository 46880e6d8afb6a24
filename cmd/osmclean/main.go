package main

import (
	"fmt"
	"os"

	openstreetmap "github.com/nbijlani/OpenStreetMap"
	"github.com/nbijlani/OpenStreetMap/audit"
	"github.com/nbijlani/OpenStreetMap/config"
	"github.com/nbijlani/OpenStreetMap/log"
	"github.com/nbijlani/OpenStreetMap/process"
)

func printCmds() {
	fmt.Fprintf(os.Stderr, "Usage: %s COMMAND [args]\n\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "Available commands:")
	fmt.Fprintln(os.Stderr, "\taudit")
	fmt.Fprintln(os.Stderr, "\tprocess")
	fmt.Fprintln(os.Stderr, "\tversion")
}

func main() {
	if len(os.Args) <= 1 {
		printCmds()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "audit":
		opts := config.ParseAudit(os.Args[2:])
		audit.Run(opts)
	case "process":
		opts := config.ParseProcess(os.Args[2:])
		process.Run(opts)
	case "version":
		fmt.Println(openstreetmap.Version)
	default:
		printCmds()
		log.Fatalf("invalid command: '%s'", os.Args[1])
	}
}
