// ABOUTME: HTTP client for the Fleet Spares Analyzer API
// ABOUTME: Wraps API calls with proper error handling for CLI usage

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client is the API client for the Fleet Spares Analyzer backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// HealthResponse represents the /api/v1/health endpoint response
type HealthResponse struct {
	Status       string `json:"status"`
	AuthMode     string `json:"auth_mode"`
	SessionStore string `json:"session_store"`
	Advisor      string `json:"advisor"`
}

// FleetParameters holds the failure-rate inputs sent to the backend
type FleetParameters struct {
	Units        int     `json:"units"`
	Vessels      int     `json:"vessels"`
	RunningHours int     `json:"running_hours"`
	Months       int     `json:"months"`
	MTBR         float64 `json:"mtbr"`
}

// EvaluateRequest is the body for POST /api/v1/evaluate
type EvaluateRequest struct {
	Fleet           FleetParameters `json:"fleet"`
	Threshold       float64         `json:"threshold"`
	UnitCost        float64         `json:"unit_cost"`
	MaxIterations   int             `json:"max_iterations,omitempty"`
	IncludeAdvisory bool            `json:"include_advisory,omitempty"`
}

// ProbabilityRow is one row of the Poisson probability table
type ProbabilityRow struct {
	Spares      int     `json:"spares"`
	Probability float64 `json:"probability"`
	Cumulative  float64 `json:"cumulative_probability"`
}

// Insight is a per-row risk statement
type Insight struct {
	Spares       int     `json:"spares"`
	Statement    string  `json:"statement"`
	ShortageRisk float64 `json:"shortage_risk"`
	Elevated     bool    `json:"elevated"`
}

// EvaluateResponse is the full evaluation result
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
	Timestamp  string           `json:"timestamp"`
}

// SweepRequest is the body for POST /api/v1/evaluate/sweep
type SweepRequest struct {
	Fleet         FleetParameters `json:"fleet"`
	Thresholds    []float64       `json:"thresholds"`
	UnitCost      float64         `json:"unit_cost"`
	MaxIterations int             `json:"max_iterations,omitempty"`
}

// SweepResult is one threshold's outcome within a sweep
type SweepResult struct {
	Threshold float64 `json:"threshold"`
	MinSpares int     `json:"min_spares"`
	TotalCost float64 `json:"total_cost"`
	Converged bool    `json:"converged"`
}

// SweepResponse is the full sweep result
type SweepResponse struct {
	Lambda    float64       `json:"lambda"`
	Results   []SweepResult `json:"results"`
	Timestamp string        `json:"timestamp"`
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}

// Health calls GET /api/v1/health
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleErrorResponse(resp)
	}

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}

	return &health, nil
}

// Evaluate calls POST /api/v1/evaluate
func (c *Client) Evaluate(ctx context.Context, input *EvaluateRequest) (*EvaluateResponse, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/evaluate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleErrorResponse(resp)
	}

	var result EvaluateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}

	return &result, nil
}

// Sweep calls POST /api/v1/evaluate/sweep
func (c *Client) Sweep(ctx context.Context, input *SweepRequest) (*SweepResponse, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/evaluate/sweep", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleErrorResponse(resp)
	}

	var result SweepResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}

	return &result, nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	if errResp.Details != "" {
		return fmt.Errorf("backend error: %s (%s)", errResp.Error, errResp.Details)
	}
	return fmt.Errorf("backend error: %s", errResp.Error)
}
