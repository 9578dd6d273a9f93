// ABOUTME: HTTP handlers for spare-sizing evaluation endpoints
// ABOUTME: Single evaluation plus a concurrent threshold sweep

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/marinops/fleet-spares-analyzer/models"
	"github.com/marinops/fleet-spares-analyzer/services"
)

const (
	defaultThreshold   = 0.9
	maxSweepThresholds = 20
)

// Evaluate runs the full sparing calculation for one fleet configuration.
// Every request is computed fresh; nothing about an evaluation outlives
// the response.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req models.EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	threshold := defaultThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	if threshold < 0 || threshold >= 1 {
		writeError(w, "threshold must lie in [0, 1)", http.StatusBadRequest)
		return
	}
	if h.cfg != nil && req.MaxIterations > h.cfg.MaxIterationsCap {
		writeError(w, "max_iterations exceeds the configured cap", http.StatusBadRequest)
		return
	}

	resp, err := h.evaluate(r, req, threshold)
	if err != nil {
		var ipe *services.InvalidParameterError
		if errors.As(err, &ipe) {
			writeErrorDetails(w, "Invalid fleet parameters", ipe.Error(), http.StatusBadRequest)
			return
		}
		slog.Error("Evaluation failed", "error", err)
		writeError(w, "Evaluation failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) evaluate(r *http.Request, req models.EvaluateRequest, threshold float64) (*models.EvaluateResponse, error) {
	lambda, err := h.rate.ComputeLambda(req.Fleet)
	if err != nil {
		return nil, err
	}

	outcome, err := h.sizerFor(req.MaxIterations).Size(lambda, threshold, req.UnitCost)
	if err != nil {
		return nil, err
	}

	resp := &models.EvaluateResponse{
		Lambda:     lambda,
		FleetHours: models.FleetHours(req.Fleet),
		UnitHours:  models.UnitHours(req.Fleet),
		Summary:    models.LambdaSummary(req.Fleet, lambda),
		Table:      outcome.Table,
		MinSpares:  outcome.MinSpares,
		TotalCost:  outcome.TotalCost,
		Converged:  outcome.Converged,
		Insights:   models.BuildInsights(outcome.Table),
		Timestamp:  time.Now().UTC(),
	}

	if !outcome.Converged {
		resp.Warning = "Iteration cap reached before the confidence threshold; the recommendation is best-effort."
	}
	if req.IncludeAdvisory && h.advisor != nil {
		resp.Advisory = h.advisor.Advise(r.Context(), req.Fleet, lambda, threshold, outcome)
	}

	slog.Info("Evaluation complete",
		"lambda", lambda,
		"min_spares", outcome.MinSpares,
		"converged", outcome.Converged,
	)

	return resp, nil
}

// EvaluateSweep sizes the same fleet against several thresholds, one
// goroutine per threshold. Results keep the request order.
func (h *Handler) EvaluateSweep(w http.ResponseWriter, r *http.Request) {
	var req models.SweepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if len(req.Thresholds) == 0 {
		writeError(w, "thresholds must not be empty", http.StatusBadRequest)
		return
	}
	if len(req.Thresholds) > maxSweepThresholds {
		writeError(w, "too many thresholds requested", http.StatusBadRequest)
		return
	}
	for _, threshold := range req.Thresholds {
		if threshold <= 0 || threshold >= 1 {
			writeError(w, "each threshold must lie in (0, 1)", http.StatusBadRequest)
			return
		}
	}
	if h.cfg != nil && req.MaxIterations > h.cfg.MaxIterationsCap {
		writeError(w, "max_iterations exceeds the configured cap", http.StatusBadRequest)
		return
	}

	lambda, err := h.rate.ComputeLambda(req.Fleet)
	if err != nil {
		var ipe *services.InvalidParameterError
		if errors.As(err, &ipe) {
			writeErrorDetails(w, "Invalid fleet parameters", ipe.Error(), http.StatusBadRequest)
			return
		}
		writeError(w, "Evaluation failed", http.StatusInternalServerError)
		return
	}

	sizer := h.sizerFor(req.MaxIterations)
	results := make([]models.SweepResult, len(req.Thresholds))

	g, _ := errgroup.WithContext(r.Context())
	for i, threshold := range req.Thresholds {
		g.Go(func() error {
			outcome, err := sizer.Size(lambda, threshold, req.UnitCost)
			if err != nil {
				return err
			}
			results[i] = models.SweepResult{
				Threshold: threshold,
				MinSpares: outcome.MinSpares,
				TotalCost: outcome.TotalCost,
				Converged: outcome.Converged,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var ipe *services.InvalidParameterError
		if errors.As(err, &ipe) {
			writeErrorDetails(w, "Invalid sweep parameters", ipe.Error(), http.StatusBadRequest)
			return
		}
		slog.Error("Sweep failed", "error", err)
		writeError(w, "Evaluation failed", http.StatusInternalServerError)
		return
	}

	slog.Info("Sweep complete", "lambda", lambda, "thresholds", len(req.Thresholds))

	writeJSON(w, http.StatusOK, models.SweepResponse{
		Lambda:    lambda,
		Results:   results,
		Timestamp: time.Now().UTC(),
	})
}

// sizerFor returns the shared sizer, or a one-off sizer when the caller
// requested a custom iteration cap.
func (h *Handler) sizerFor(maxIterations int) *services.SpareSizer {
	if maxIterations > 0 {
		return services.NewSpareSizerWithCap(maxIterations)
	}
	return h.sizer
}
