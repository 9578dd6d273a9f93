// ABOUTME: Rate calculator deriving the expected fleet failure count
// ABOUTME: Computes lambda = (A·N·M·T)/MTBR with domain validation

package services

import (
	"math"

	"github.com/marinops/fleet-spares-analyzer/models"
)

// RateCalculator derives the Poisson rate parameter from fleet inputs.
// It is pure; the same parameters always yield the same lambda.
type RateCalculator struct{}

// NewRateCalculator creates a new calculator
func NewRateCalculator() *RateCalculator {
	return &RateCalculator{}
}

// ComputeLambda returns the expected number of failures over the
// observation period: (A·N·M·T)/MTBR.
func (c *RateCalculator) ComputeLambda(params models.FleetParameters) (float64, error) {
	if params.MTBR == 0 {
		return 0, &InvalidParameterError{Param: "mtbr", Reason: "MTBR cannot be zero"}
	}
	if params.MTBR < 0 || math.IsNaN(params.MTBR) || math.IsInf(params.MTBR, 0) {
		return 0, &InvalidParameterError{Param: "mtbr", Reason: "MTBR must be a positive finite number"}
	}
	if params.Units < 0 {
		return 0, &InvalidParameterError{Param: "units", Reason: "units per vessel cannot be negative"}
	}
	if params.Vessels < 1 {
		return 0, &InvalidParameterError{Param: "vessels", Reason: "vessel count must be positive"}
	}
	if params.RunningHours < 0 {
		return 0, &InvalidParameterError{Param: "running_hours", Reason: "running hours cannot be negative"}
	}
	if params.Months < 0 {
		return 0, &InvalidParameterError{Param: "months", Reason: "months cannot be negative"}
	}

	unitHours := float64(params.Units) * float64(params.Vessels) * float64(params.RunningHours) * float64(params.Months)
	return unitHours / params.MTBR, nil
}
