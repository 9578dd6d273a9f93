// ABOUTME: Human-readable insight generation from sparing results
// ABOUTME: Produces the lambda summary and per-row shortage-risk statements

package models

import "fmt"

// shortageRiskThreshold flags rows where the chance of needing more
// spares than the row covers exceeds 20%.
const shortageRiskThreshold = 0.2

// Insight is a risk statement for one probability-table row.
type Insight struct {
	Spares       int     `json:"spares"`
	Statement    string  `json:"statement"`
	ShortageRisk float64 `json:"shortage_risk"`
	Elevated     bool    `json:"elevated"`
}

// LambdaSummary builds the narrative line describing the derived failure rate.
func LambdaSummary(params FleetParameters, lambda float64) string {
	fleetHours := FleetHours(params)
	return fmt.Sprintf(
		"Over %d hours of vessel operation, with %d spare-eligible units per vessel and an MTBR of %.0f, expect around %.2f failures across the fleet.",
		fleetHours, params.Units, params.MTBR, lambda)
}

// FleetHours is the total running hours across the fleet: N·M·T.
func FleetHours(params FleetParameters) int {
	return params.Vessels * params.RunningHours * params.Months
}

// UnitHours is the accumulated operating hours of all spare-eligible
// units: A·N·M·T.
func UnitHours(params FleetParameters) int {
	return params.Units * FleetHours(params)
}

// BuildInsights turns a probability table into per-row risk statements.
// Rows where both probability and cumulative probability are zero carry
// no information and are skipped.
func BuildInsights(table []ProbabilityRow) []Insight {
	insights := make([]Insight, 0, len(table))
	for _, row := range table {
		if row.Probability == 0 && row.Cumulative == 0 {
			continue
		}

		risk := 1 - row.Cumulative
		if risk < 0 {
			risk = 0
		}

		plural := "s"
		if row.Spares == 1 {
			plural = ""
		}
		statement := fmt.Sprintf(
			"For %d spare%s: %.2f%% chance of needing exactly that many, %.2f%% confidence you won't need more than %d.",
			row.Spares, plural, row.Probability*100, row.Cumulative*100, row.Spares)

		elevated := risk > shortageRiskThreshold
		if elevated {
			statement += fmt.Sprintf(" %.2f%% risk of stock shortage.", risk*100)
		}

		insights = append(insights, Insight{
			Spares:       row.Spares,
			Statement:    statement,
			ShortageRisk: risk,
			Elevated:     elevated,
		})
	}
	return insights
}
