// ABOUTME: Sweep command for fleet-spares CLI
// ABOUTME: Sizes the same fleet against several confidence thresholds

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/marinops/fleet-spares-analyzer/cli/internal/client"
)

var (
	sweepUnits      int
	sweepVessels    int
	sweepHours      int
	sweepMonths     int
	sweepMTBR       float64
	sweepThresholds []float64
	sweepUnitCost   float64
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Compare spare counts across thresholds",
	Long: `Size the same fleet against several confidence thresholds and
print a comparison table, useful for budget trade-off discussions.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runSweep(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)
	sweepCmd.Flags().IntVar(&sweepUnits, "units", 1, "Units needing spares per vessel")
	sweepCmd.Flags().IntVar(&sweepVessels, "vessels", 1, "Number of vessels in the fleet")
	sweepCmd.Flags().IntVar(&sweepHours, "hours", 0, "Running hours per vessel per month")
	sweepCmd.Flags().IntVar(&sweepMonths, "months", 12, "Observation period in months")
	sweepCmd.Flags().Float64Var(&sweepMTBR, "mtbr", 0, "Mean time between repair, hours")
	sweepCmd.Flags().Float64SliceVar(&sweepThresholds, "thresholds", []float64{0.8, 0.9, 0.95, 0.99}, "Confidence thresholds to compare")
	sweepCmd.Flags().Float64Var(&sweepUnitCost, "cost", 0, "Cost per spare unit")
	sweepCmd.MarkFlagRequired("hours")
	sweepCmd.MarkFlagRequired("mtbr")
}

// runSweep executes the sweep and returns exit code
func runSweep(ctx context.Context, w io.Writer) int {
	c := client.New(GetAPIURL())

	resp, err := c.Sweep(ctx, &client.SweepRequest{
		Fleet: client.FleetParameters{
			Units:        sweepUnits,
			Vessels:      sweepVessels,
			RunningHours: sweepHours,
			Months:       sweepMonths,
			MTBR:         sweepMTBR,
		},
		Thresholds: sweepThresholds,
		UnitCost:   sweepUnitCost,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatSweepHuman(resp))
	}

	return 0
}

// formatSweepHuman renders the sweep comparison table
func formatSweepHuman(resp *client.SweepResponse) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Expected failures (lambda): %.4f\n\n", resp.Lambda)

	sb.WriteString("Threshold  Spares  Total Cost  Converged\n")
	sb.WriteString("---------  ------  ----------  ---------\n")
	for _, result := range resp.Results {
		fmt.Fprintf(&sb, "%9.2f  %6d  %10.2f  %9t\n",
			result.Threshold, result.MinSpares, result.TotalCost, result.Converged)
	}

	return strings.TrimRight(sb.String(), "\n")
}
