// ABOUTME: Tests for insight generation
// ABOUTME: Validates shortage-risk flagging and zero-row skipping

package models

import (
	"strings"
	"testing"
)

func TestLambdaSummary(t *testing.T) {
	params := FleetParameters{Units: 2, Vessels: 5, RunningHours: 300, Months: 12, MTBR: 4000}

	summary := LambdaSummary(params, 9.0)

	if !strings.Contains(summary, "18000 hours") {
		t.Errorf("Summary should contain fleet hours 18000, got: %s", summary)
	}
	if !strings.Contains(summary, "9.00 failures") {
		t.Errorf("Summary should contain expected failure count, got: %s", summary)
	}
}

func TestFleetHours(t *testing.T) {
	params := FleetParameters{Units: 3, Vessels: 4, RunningHours: 100, Months: 6, MTBR: 1000}

	if got := FleetHours(params); got != 2400 {
		t.Errorf("Expected fleet hours 2400, got %d", got)
	}
	if got := UnitHours(params); got != 7200 {
		t.Errorf("Expected unit hours 7200, got %d", got)
	}
}

func TestBuildInsights_RiskFlagging(t *testing.T) {
	table := []ProbabilityRow{
		{Spares: 0, Probability: 0.30, Cumulative: 0.30}, // risk 0.70 -> elevated
		{Spares: 1, Probability: 0.45, Cumulative: 0.75}, // risk 0.25 -> elevated
		{Spares: 2, Probability: 0.15, Cumulative: 0.90}, // risk 0.10 -> fine
	}

	insights := BuildInsights(table)

	if len(insights) != 3 {
		t.Fatalf("Expected 3 insights, got %d", len(insights))
	}
	if !insights[0].Elevated || !insights[1].Elevated {
		t.Error("Rows with risk > 0.2 should be flagged as elevated")
	}
	if insights[2].Elevated {
		t.Error("Row with risk 0.10 should not be flagged")
	}
	if !strings.Contains(insights[0].Statement, "risk of stock shortage") {
		t.Errorf("Elevated row should mention shortage risk, got: %s", insights[0].Statement)
	}
	if strings.Contains(insights[2].Statement, "risk of stock shortage") {
		t.Errorf("Safe row should not mention shortage risk, got: %s", insights[2].Statement)
	}
}

func TestBuildInsights_SkipsZeroRows(t *testing.T) {
	table := []ProbabilityRow{
		{Spares: 0, Probability: 0, Cumulative: 0},
		{Spares: 1, Probability: 0.5, Cumulative: 0.5},
	}

	insights := BuildInsights(table)

	if len(insights) != 1 {
		t.Fatalf("Expected zero-probability row to be skipped, got %d insights", len(insights))
	}
	if insights[0].Spares != 1 {
		t.Errorf("Expected surviving insight for spares=1, got %d", insights[0].Spares)
	}
}

func TestBuildInsights_SingularPlural(t *testing.T) {
	table := []ProbabilityRow{
		{Spares: 1, Probability: 0.9, Cumulative: 0.9},
	}

	insights := BuildInsights(table)

	if strings.Contains(insights[0].Statement, "1 spares") {
		t.Errorf("Expected singular form for one spare, got: %s", insights[0].Statement)
	}
}
