// ABOUTME: Probability table chart rendered with block characters
// ABOUTME: Shows per-row PMF bars with the recommended spare count marked

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/marinops/fleet-spares-analyzer/cli/internal/client"
)

const (
	barFilled = '█'
	barEmpty  = '░'
)

// DistributionChart renders the probability table as horizontal bars,
// one row per spare count. Bars scale against the largest PMF value so
// the distribution shape stays visible for any lambda. The row meeting
// the threshold is marked as the recommendation.
func DistributionChart(table []client.ProbabilityRow, minSpares, barWidth int, okColor, markColor lipgloss.Color) string {
	if len(table) == 0 || barWidth <= 0 {
		return ""
	}

	maxP := 0.0
	for _, row := range table {
		if row.Probability > maxP {
			maxP = row.Probability
		}
	}

	var sb strings.Builder
	for i, row := range table {
		filled := 0
		if maxP > 0 {
			filled = int(row.Probability / maxP * float64(barWidth))
		}
		if filled > barWidth {
			filled = barWidth
		}

		bar := strings.Repeat(string(barFilled), filled) + strings.Repeat(string(barEmpty), barWidth-filled)

		color := okColor
		marker := ""
		if row.Spares == minSpares {
			color = markColor
			marker = " ◀ recommended"
		}

		line := fmt.Sprintf("%3d %s %6.2f%%  cum %6.2f%%%s",
			row.Spares,
			lipgloss.NewStyle().Foreground(color).Render(bar),
			row.Probability*100,
			row.Cumulative*100,
			marker)

		sb.WriteString(line)
		if i < len(table)-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
