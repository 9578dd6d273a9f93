// ABOUTME: Evaluate command for fleet-spares CLI
// ABOUTME: Runs one sparing calculation and prints the probability table

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
	evalUnits         int
	evalVessels       int
	evalHours         int
	evalMonths        int
	evalMTBR          float64
	evalThreshold     float64
	evalUnitCost      float64
	evalMaxIterations int
	evalAdvisory      bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Size spare stock for a fleet",
	Long: `Size spare parts stock for a fleet configuration.

Derives the expected failure count from the fleet parameters, builds the
Poisson probability table, and reports the minimum spares meeting the
confidence threshold.

Exit codes:
  0 - Evaluation succeeded
  1 - Evaluation succeeded but did not converge within the iteration cap
  2 - Error (connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runEvaluate(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
	evaluateCmd.Flags().IntVar(&evalUnits, "units", 1, "Units needing spares per vessel")
	evaluateCmd.Flags().IntVar(&evalVessels, "vessels", 1, "Number of vessels in the fleet")
	evaluateCmd.Flags().IntVar(&evalHours, "hours", 0, "Running hours per vessel per month")
	evaluateCmd.Flags().IntVar(&evalMonths, "months", 12, "Observation period in months")
	evaluateCmd.Flags().Float64Var(&evalMTBR, "mtbr", 0, "Mean time between repair, hours")
	evaluateCmd.Flags().Float64Var(&evalThreshold, "threshold", 0.9, "Confidence threshold (0-0.99)")
	evaluateCmd.Flags().Float64Var(&evalUnitCost, "cost", 0, "Cost per spare unit")
	evaluateCmd.Flags().IntVar(&evalMaxIterations, "max-iterations", 0, "Iteration cap (0 = server default)")
	evaluateCmd.Flags().BoolVar(&evalAdvisory, "advisory", false, "Request an AI advisory when the backend has one configured")
	evaluateCmd.MarkFlagRequired("hours")
	evaluateCmd.MarkFlagRequired("mtbr")
}

// runEvaluate executes the evaluation and returns exit code
func runEvaluate(ctx context.Context, w io.Writer) int {
	c := client.New(GetAPIURL())

	resp, err := c.Evaluate(ctx, &client.EvaluateRequest{
		Fleet: client.FleetParameters{
			Units:        evalUnits,
			Vessels:      evalVessels,
			RunningHours: evalHours,
			Months:       evalMonths,
			MTBR:         evalMTBR,
		},
		Threshold:       evalThreshold,
		UnitCost:        evalUnitCost,
		MaxIterations:   evalMaxIterations,
		IncludeAdvisory: evalAdvisory,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatEvaluateHuman(resp))
	}

	if !resp.Converged {
		return 1
	}
	return 0
}

// formatEvaluateHuman renders the evaluation for terminal reading
func formatEvaluateHuman(resp *client.EvaluateResponse) string {
	var sb strings.Builder

	sb.WriteString(resp.Summary)
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "Expected failures (lambda): %.4f\n", resp.Lambda)
	fmt.Fprintf(&sb, "Fleet hours:                %d\n", resp.FleetHours)
	fmt.Fprintf(&sb, "Unit hours:                 %d\n\n", resp.UnitHours)

	sb.WriteString("Spares  Probability  Cumulative\n")
	sb.WriteString("------  -----------  ----------\n")
	for _, row := range resp.Table {
		marker := " "
		if row.Spares == resp.MinSpares {
			marker = "*"
		}
		fmt.Fprintf(&sb, "%5d%s  %11.4f  %10.4f\n", row.Spares, marker, row.Probability, row.Cumulative)
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "Recommended spares: %d\n", resp.MinSpares)
	if resp.TotalCost > 0 {
		fmt.Fprintf(&sb, "Total cost:         %.2f\n", resp.TotalCost)
	}

	if resp.Warning != "" {
		fmt.Fprintf(&sb, "\nWarning: %s\n", resp.Warning)
	}

	if len(resp.Insights) > 0 {
		sb.WriteString("\nInsights:\n")
		for _, insight := range resp.Insights {
			fmt.Fprintf(&sb, "  - %s\n", insight.Statement)
		}
	}

	if resp.Advisory != "" {
		fmt.Fprintf(&sb, "\nAdvisory: %s\n", resp.Advisory)
	}

	return strings.TrimRight(sb.String(), "\n")
}
