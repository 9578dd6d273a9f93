// ABOUTME: Entry point for fleet-spares CLI
// ABOUTME: Command-line tool for spare parts provisioning and CI integration

package main

import (
	"fmt"
	"os"

	"github.com/marinops/fleet-spares-analyzer/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
