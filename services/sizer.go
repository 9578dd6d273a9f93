// ABOUTME: Spare sizer iterating the Poisson cumulative distribution
// ABOUTME: Finds the minimum spare count meeting a probability threshold

package services

import (
	"math"

	"github.com/marinops/fleet-spares-analyzer/models"
)

const (
	// DefaultMaxIterations bounds the table when the threshold is never met.
	DefaultMaxIterations = 1000

	// negligibilityFloor: PMF terms below this contribute nothing further.
	// Only applied once the terms are decaying (spares past the mode),
	// otherwise a large lambda would truncate the table before the
	// distribution's mass is reached.
	negligibilityFloor = 1e-8
)

// SpareSizer searches the Poisson CDF for the minimum spare count.
// Each call owns its own table buffer, so a single sizer is safe to
// share across concurrent evaluations.
type SpareSizer struct {
	maxIterations int
}

// NewSpareSizer creates a sizer with the default iteration cap.
func NewSpareSizer() *SpareSizer {
	return &SpareSizer{maxIterations: DefaultMaxIterations}
}

// NewSpareSizerWithCap creates a sizer with a custom iteration cap.
func NewSpareSizerWithCap(maxIterations int) *SpareSizer {
	if maxIterations < 1 {
		maxIterations = DefaultMaxIterations
	}
	return &SpareSizer{maxIterations: maxIterations}
}

// Size builds the probability table for lambda and returns the minimum
// spare count whose cumulative probability reaches threshold.
//
// Thresholds live in [0, 1): the reference UI caps at 0.99. A threshold
// of exactly 1.0 is tolerated and bounded by the iteration cap rather
// than rejected, so the loop always terminates.
//
// Probabilities accumulate at full precision; rounding to four decimals
// is left to presentation layers.
func (s *SpareSizer) Size(lambda, threshold, unitCost float64) (models.SizingOutcome, error) {
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) {
		return models.SizingOutcome{}, &InvalidParameterError{Param: "lambda", Reason: "lambda must be finite"}
	}
	if lambda < 0 {
		return models.SizingOutcome{}, &InvalidParameterError{Param: "lambda", Reason: "lambda cannot be negative"}
	}
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return models.SizingOutcome{}, &InvalidParameterError{Param: "threshold", Reason: "threshold must lie in [0, 1]"}
	}
	if math.IsNaN(unitCost) || unitCost < 0 {
		return models.SizingOutcome{}, &InvalidParameterError{Param: "unit_cost", Reason: "unit cost cannot be negative"}
	}

	table := make([]models.ProbabilityRow, 0, 16)
	cumulative := 0.0
	converged := false

	// PMF via the stable recurrence p0 = e^-lambda, pk = pk-1 * lambda/k,
	// avoiding overflow in lambda^k and k! for large lambda.
	p := math.Exp(-lambda)

	for spares := 0; spares <= s.maxIterations; spares++ {
		if spares > 0 {
			p *= lambda / float64(spares)
		}
		cumulative += p
		table = append(table, models.ProbabilityRow{
			Spares:      spares,
			Probability: p,
			Cumulative:  cumulative,
		})

		if cumulative >= threshold {
			converged = true
			break
		}
		if p < negligibilityFloor && float64(spares) >= lambda {
			converged = true
			break
		}
	}

	minSpares := table[len(table)-1].Spares

	return models.SizingOutcome{
		Table:     table,
		MinSpares: minSpares,
		TotalCost: float64(minSpares) * unitCost,
		Converged: converged,
	}, nil
}
