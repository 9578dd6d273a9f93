// ABOUTME: Data models for fleet parameters, sparing results, and API responses
// ABOUTME: JSON-serializable structures shared by handlers and the CLI client

package models

import "time"

// FleetParameters holds the operator-supplied failure-rate inputs.
// Field letters follow the standard sparing formula λ = (A·N·M·T)/MTBR.
type FleetParameters struct {
	Units        int     `json:"units"`         // A: units needing spares per vessel
	Vessels      int     `json:"vessels"`       // N: number of vessels
	RunningHours int     `json:"running_hours"` // M: running hours per vessel per month
	Months       int     `json:"months"`        // T: time in months
	MTBR         float64 `json:"mtbr"`          // mean time between repair, hours
}

// ProbabilityRow is one row of the Poisson probability table.
// Row index equals the spares count, starting at 0.
type ProbabilityRow struct {
	Spares      int     `json:"spares"`
	Probability float64 `json:"probability"`
	Cumulative  float64 `json:"cumulative_probability"`
}

// SizingOutcome is the result of a spare-sizing run.
type SizingOutcome struct {
	Table     []ProbabilityRow `json:"table"`
	MinSpares int              `json:"min_spares"`
	TotalCost float64          `json:"total_cost"`
	Converged bool             `json:"converged"`
}

// EvaluateRequest is the body of POST /api/v1/evaluate.
// Threshold is a pointer so an explicit 0 is distinguishable from an
// omitted field; omitted selects the service default of 0.9.
type EvaluateRequest struct {
	Fleet           FleetParameters `json:"fleet"`
	Threshold       *float64        `json:"threshold,omitempty"`
	UnitCost        float64         `json:"unit_cost"`
	MaxIterations   int             `json:"max_iterations,omitempty"` // 0 selects the default (1000)
	IncludeAdvisory bool            `json:"include_advisory,omitempty"`
}

// EvaluateResponse is the full evaluation result.
type EvaluateResponse struct {
	Lambda     float64          `json:"lambda"`
	FleetHours int              `json:"fleet_hours"`
	UnitHours  int              `json:"unit_hours"`
	Summary    string           `json:"summary"`
	Table      []ProbabilityRow `json:"table"`
	MinSpares  int              `json:"min_spares"`
	TotalCost  float64          `json:"total_cost"`
	Converged  bool             `json:"converged"`
	Warning    string           `json:"warning,omitempty"`
	Insights   []Insight        `json:"insights"`
	Advisory   string           `json:"advisory,omitempty"`
	Timestamp  time.Time        `json:"timestamp"`
}

// SweepRequest sizes the same fleet against several probability thresholds.
type SweepRequest struct {
	Fleet         FleetParameters `json:"fleet"`
	Thresholds    []float64       `json:"thresholds"`
	UnitCost      float64         `json:"unit_cost"`
	MaxIterations int             `json:"max_iterations,omitempty"`
}

// SweepResult is one threshold's outcome within a sweep.
type SweepResult struct {
	Threshold float64 `json:"threshold"`
	MinSpares int     `json:"min_spares"`
	TotalCost float64 `json:"total_cost"`
	Converged bool    `json:"converged"`
}

// SweepResponse is the body returned by POST /api/v1/evaluate/sweep.
type SweepResponse struct {
	Lambda    float64       `json:"lambda"`
	Results   []SweepResult `json:"results"`
	Timestamp time.Time     `json:"timestamp"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}
