// ABOUTME: Optional AI advisory for sizing results via the Anthropic API
// ABOUTME: Falls back to a deterministic summary when no key is configured

package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/marinops/fleet-spares-analyzer/models"
)

const advisorSystemPrompt = "You are a marine reliability engineer reviewing " +
	"spare-parts provisioning for a vessel fleet. Be concise and practical. " +
	"Comment on whether the recommended stock level is reasonable for the " +
	"failure rate, and flag anything an operator should double-check. " +
	"Answer in 3-4 sentences of plain prose."

// Advisor produces a short narrative assessment of a sizing result.
// When no API key is configured it stays disabled and callers get a
// deterministic locally generated summary instead.
type Advisor struct {
	client  anthropic.Client
	model   string
	enabled bool
}

// NewAdvisor creates an advisor. An empty apiKey disables API calls.
func NewAdvisor(apiKey, model string) *Advisor {
	a := &Advisor{model: model, enabled: apiKey != ""}
	if a.enabled {
		a.client = anthropic.NewClient(option.WithAPIKey(apiKey))
	}
	return a
}

// Enabled reports whether API-backed advisories are available.
func (a *Advisor) Enabled() bool {
	return a.enabled
}

// Advise returns an assessment of the sizing result. API failures
// degrade to the fallback summary rather than failing the evaluation.
func (a *Advisor) Advise(ctx context.Context, params models.FleetParameters, lambda, threshold float64, outcome models.SizingOutcome) string {
	if !a.enabled {
		return a.fallbackAdvisory(lambda, threshold, outcome)
	}

	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: 300,
		System: []anthropic.TextBlockParam{
			{Text: advisorSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(a.buildPrompt(params, lambda, threshold, outcome))),
		},
	})
	if err != nil {
		slog.Warn("Advisory request failed, using fallback", "error", err)
		return a.fallbackAdvisory(lambda, threshold, outcome)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return a.fallbackAdvisory(lambda, threshold, outcome)
	}
	return text
}

func (a *Advisor) buildPrompt(params models.FleetParameters, lambda, threshold float64, outcome models.SizingOutcome) string {
	convergence := "The threshold was reached."
	if !outcome.Converged {
		convergence = "The iteration cap was reached before the threshold; the recommendation is best-effort."
	}

	return fmt.Sprintf(`Fleet configuration:
- %d units per vessel across %d vessels
- %d running hours per month over %d months
- MTBR %.1f hours

Sizing result:
- Expected failures over the period (lambda): %.4f
- Confidence threshold: %.2f
- Recommended spares: %d
- Achieved non-shortage probability: %.4f
- %s

Assess this recommendation.`,
		params.Units, params.Vessels, params.RunningHours, params.Months, params.MTBR,
		lambda, threshold, outcome.MinSpares,
		outcome.Table[len(outcome.Table)-1].Cumulative, convergence)
}

// fallbackAdvisory is deterministic: the same result always yields the
// same text, so evaluations stay reproducible without an API key.
func (a *Advisor) fallbackAdvisory(lambda, threshold float64, outcome models.SizingOutcome) string {
	achieved := outcome.Table[len(outcome.Table)-1].Cumulative

	if !outcome.Converged {
		return fmt.Sprintf("Stocking %d spares covers only %.1f%% of demand scenarios, short of the %.0f%% target. The expected failure count of %.2f is high for the iteration budget; consider raising the cap or revisiting the MTBR figure.",
			outcome.MinSpares, achieved*100, threshold*100, lambda)
	}
	if lambda == 0 {
		return "No failures are expected over the period, so no spares are required. Verify that the running hours and fleet size inputs reflect actual utilization."
	}
	return fmt.Sprintf("Stocking %d spares gives a %.1f%% probability of covering all failures against an expected %.2f over the period, meeting the %.0f%% target. Review the MTBR assumption periodically as field data accumulates.",
		outcome.MinSpares, achieved*100, lambda, threshold*100)
}
