// Package main is the entry point for the gcpmsm CLI.
//
// gcpmsm deploys a containerized microservice to Google Cloud Run and
// publishes it through Google API Gateway. Each deployment fully replaces
// the managed resources: existing ones are deleted, their removal confirmed,
// and fresh ones created from the desired configuration.
//
// Commands: deploy, init, version.
//
// For detailed usage information, run:
//
//	gcpmsm --help
package main

import (
	"fmt"
	"os"

	"github.com/MarsLyceum/gcp-microservice-management/cmd/gcpmsm/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
