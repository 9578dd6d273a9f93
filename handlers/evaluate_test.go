// ABOUTME: Unit tests for evaluation endpoints
// ABOUTME: Covers the happy path, validation failures, statelessness, and sweeps

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/marinops/fleet-spares-analyzer/cache"
	"github.com/marinops/fleet-spares-analyzer/models"
)

func testHandler() *Handler {
	return NewHandler(nil, cache.NewMemory(), nil)
}

func threshold(v float64) *float64 {
	return &v
}

// recordingStore counts store traffic so tests can assert that
// evaluation handlers never touch the session store.
type recordingStore struct {
	gets    int
	sets    int
	deletes int
}

func (s *recordingStore) Get(key string) ([]byte, bool) {
	s.gets++
	return nil, false
}

func (s *recordingStore) Set(key string, value []byte, ttl time.Duration) {
	s.sets++
}

func (s *recordingStore) Delete(key string) {
	s.deletes++
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}
	r := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	w := httptest.NewRecorder()
	handler(w, r)
	return w
}

func typicalFleet() models.FleetParameters {
	return models.FleetParameters{Units: 2, Vessels: 5, RunningHours: 300, Months: 12, MTBR: 4000}
}

func TestEvaluate_HappyPath(t *testing.T) {
	h := testHandler()

	w := postJSON(t, h.Evaluate, "/api/v1/evaluate", models.EvaluateRequest{
		Fleet:     typicalFleet(),
		Threshold: threshold(0.9),
		UnitCost:  150,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.EvaluateResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp.Lambda != 9.0 {
		t.Errorf("Expected lambda 9.0, got %v", resp.Lambda)
	}
	if resp.FleetHours != 18000 {
		t.Errorf("Expected fleet hours 18000, got %d", resp.FleetHours)
	}
	if resp.UnitHours != 36000 {
		t.Errorf("Expected unit hours 36000, got %d", resp.UnitHours)
	}
	if !resp.Converged {
		t.Error("Expected converged result")
	}
	if resp.MinSpares < 9 {
		t.Errorf("Expected at least 9 spares for lambda=9 at 0.9, got %d", resp.MinSpares)
	}
	if resp.TotalCost != float64(resp.MinSpares)*150 {
		t.Errorf("Total cost %v does not match min spares * unit cost", resp.TotalCost)
	}
	if len(resp.Table) != resp.MinSpares+1 {
		t.Errorf("Expected %d table rows, got %d", resp.MinSpares+1, len(resp.Table))
	}
	if len(resp.Insights) == 0 {
		t.Error("Expected insights")
	}
	if resp.Summary == "" {
		t.Error("Expected summary text")
	}
	if resp.Warning != "" {
		t.Errorf("Unexpected warning: %s", resp.Warning)
	}
}

func TestEvaluate_DefaultThreshold(t *testing.T) {
	h := testHandler()

	w := postJSON(t, h.Evaluate, "/api/v1/evaluate", models.EvaluateRequest{
		Fleet: typicalFleet(),
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp models.EvaluateResponse
	json.NewDecoder(w.Body).Decode(&resp)

	last := resp.Table[len(resp.Table)-1]
	if last.Cumulative < 0.9 {
		t.Errorf("Expected default 0.9 threshold to be met, terminal CDF %v", last.Cumulative)
	}
}

func TestEvaluate_InvalidInputs(t *testing.T) {
	h := testHandler()

	tests := []struct {
		name string
		req  models.EvaluateRequest
	}{
		{"zero MTBR", models.EvaluateRequest{
			Fleet:     models.FleetParameters{Units: 1, Vessels: 1, RunningHours: 1, Months: 1, MTBR: 0},
			Threshold: threshold(0.9),
		}},
		{"negative units", models.EvaluateRequest{
			Fleet:     models.FleetParameters{Units: -1, Vessels: 1, RunningHours: 1, Months: 1, MTBR: 100},
			Threshold: threshold(0.9),
		}},
		{"threshold of one", models.EvaluateRequest{
			Fleet:     typicalFleet(),
			Threshold: threshold(1.0),
		}},
		{"negative threshold", models.EvaluateRequest{
			Fleet:     typicalFleet(),
			Threshold: threshold(-0.5),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, h.Evaluate, "/api/v1/evaluate", tt.req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
			}

			var errResp models.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&errResp); err != nil {
				t.Fatalf("Error response is not JSON: %v", err)
			}
			if errResp.Error == "" {
				t.Error("Expected an error message")
			}
		})
	}
}

func TestEvaluate_MalformedJSON(t *testing.T) {
	h := testHandler()

	r := httptest.NewRequest(http.MethodPost, "/api/v1/evaluate", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	h.Evaluate(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed JSON, got %d", w.Code)
	}
}

func TestEvaluate_NonConvergenceWarning(t *testing.T) {
	h := testHandler()

	w := postJSON(t, h.Evaluate, "/api/v1/evaluate", models.EvaluateRequest{
		Fleet:         models.FleetParameters{Units: 10, Vessels: 10, RunningHours: 500, Months: 24, MTBR: 100},
		Threshold:     threshold(0.9),
		MaxIterations: 5,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for a capped evaluation, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.EvaluateResponse
	json.NewDecoder(w.Body).Decode(&resp)

	if resp.Converged {
		t.Error("Expected converged=false")
	}
	if resp.Warning == "" {
		t.Error("Expected a warning for a capped evaluation")
	}
	if len(resp.Table) != 6 {
		t.Errorf("Expected 6 rows for a cap of 5, got %d", len(resp.Table))
	}
}

func TestEvaluate_ExplicitZeroThreshold(t *testing.T) {
	h := testHandler()

	// Threshold 0 is a valid request, not a stand-in for the default:
	// row 0 already satisfies a cumulative target of zero.
	w := postJSON(t, h.Evaluate, "/api/v1/evaluate", models.EvaluateRequest{
		Fleet:     typicalFleet(),
		Threshold: threshold(0),
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for threshold 0, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.EvaluateResponse
	json.NewDecoder(w.Body).Decode(&resp)

	if resp.MinSpares != 0 {
		t.Errorf("Expected 0 spares for threshold 0, got %d", resp.MinSpares)
	}
	if len(resp.Table) != 1 {
		t.Errorf("Expected a single row for threshold 0, got %d", len(resp.Table))
	}
	if !resp.Converged {
		t.Error("Expected a threshold-0 evaluation to converge")
	}
}

func TestEvaluate_DoesNotPersistAcrossRequests(t *testing.T) {
	store := &recordingStore{}
	h := NewHandler(nil, store, nil)
	req := models.EvaluateRequest{Fleet: typicalFleet(), Threshold: threshold(0.9), UnitCost: 10}

	first := postJSON(t, h.Evaluate, "/api/v1/evaluate", req)
	second := postJSON(t, h.Evaluate, "/api/v1/evaluate", req)

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("Expected 200s, got %d and %d", first.Code, second.Code)
	}

	// Identical requests are recomputed, never replayed from the store.
	if store.gets != 0 || store.sets != 0 {
		t.Errorf("Expected no store traffic from evaluation, got %d gets and %d sets", store.gets, store.sets)
	}

	var a, b models.EvaluateResponse
	json.NewDecoder(first.Body).Decode(&a)
	json.NewDecoder(second.Body).Decode(&b)
	if b.Timestamp.Before(a.Timestamp) {
		t.Error("Expected the second response to carry its own timestamp")
	}
	if a.MinSpares != b.MinSpares {
		t.Errorf("Expected identical recomputation, got %d and %d spares", a.MinSpares, b.MinSpares)
	}
}

func TestEvaluateSweep_OrderPreserved(t *testing.T) {
	h := testHandler()

	thresholds := []float64{0.5, 0.99, 0.8}
	w := postJSON(t, h.EvaluateSweep, "/api/v1/evaluate/sweep", models.SweepRequest{
		Fleet:      typicalFleet(),
		Thresholds: thresholds,
		UnitCost:   100,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.SweepResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp.Lambda != 9.0 {
		t.Errorf("Expected lambda 9.0, got %v", resp.Lambda)
	}
	if len(resp.Results) != len(thresholds) {
		t.Fatalf("Expected %d results, got %d", len(thresholds), len(resp.Results))
	}
	for i, result := range resp.Results {
		if result.Threshold != thresholds[i] {
			t.Errorf("Result %d: expected threshold %v, got %v", i, thresholds[i], result.Threshold)
		}
		if !result.Converged {
			t.Errorf("Result %d: expected convergence", i)
		}
	}

	// A higher threshold can never need fewer spares.
	if resp.Results[1].MinSpares < resp.Results[2].MinSpares {
		t.Error("0.99 threshold needs at least as many spares as 0.8")
	}
	if resp.Results[2].MinSpares < resp.Results[0].MinSpares {
		t.Error("0.8 threshold needs at least as many spares as 0.5")
	}
}

func TestEvaluateSweep_Validation(t *testing.T) {
	h := testHandler()

	tests := []struct {
		name string
		req  models.SweepRequest
	}{
		{"empty thresholds", models.SweepRequest{Fleet: typicalFleet()}},
		{"threshold of one", models.SweepRequest{Fleet: typicalFleet(), Thresholds: []float64{1.0}}},
		{"threshold of zero", models.SweepRequest{Fleet: typicalFleet(), Thresholds: []float64{0}}},
		{"too many thresholds", models.SweepRequest{Fleet: typicalFleet(), Thresholds: make([]float64, 21)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, h.EvaluateSweep, "/api/v1/evaluate/sweep", tt.req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", w.Code)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	h := testHandler()

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", resp["status"])
	}
	if resp["session_store"] != "memory" {
		t.Errorf("Expected memory store, got %v", resp["session_store"])
	}
	if resp["advisor"] != "not_configured" {
		t.Errorf("Expected advisor not_configured, got %v", resp["advisor"])
	}
}
