// ABOUTME: Plan command for fleet-spares CLI
// ABOUTME: Launches the interactive sizing wizard TUI

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marinops/fleet-spares-analyzer/cli/internal/client"
	"github.com/marinops/fleet-spares-analyzer/cli/internal/tui"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Interactive sizing wizard",
	Long: `Launch the interactive terminal UI. Walks through fleet parameters,
sizes the spare stock against the backend, and renders the probability
distribution with the recommended spare count.`,
	Run: func(cmd *cobra.Command, args []string) {
		c := client.New(GetAPIURL())
		if err := tui.Run(c); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}
