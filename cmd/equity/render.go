package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/example/meeting-equity/internal/application"
	"github.com/example/meeting-equity/internal/equity"
)

func statusColor(status equity.Status) *color.Color {
	switch status {
	case equity.StatusGreen:
		return color.New(color.FgGreen)
	case equity.StatusOrange:
		return color.New(color.FgYellow)
	case equity.StatusRed:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

func scoreColor(result equity.ScoreResult) *color.Color {
	switch {
	case !result.Available:
		return color.New(color.FgHiBlack)
	case result.DisplayScore() >= 71:
		return color.New(color.FgGreen)
	case result.DisplayScore() >= 41:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

// renderAnalysis writes a human-readable report for one meeting analysis:
// the per-participant statuses at the proposed time, the aggregate score,
// a 24-hour heatmap, and the ranked slot suggestions.
func renderAnalysis(w io.Writer, meeting application.Meeting, analysis application.Analysis, names map[string]string, warnings []application.ConflictWarning) {
	title := color.New(color.Bold)

	fmt.Fprintf(w, "\n%s\n", title.Sprintf("%s — %s UTC (%d min)",
		meeting.Title, analysis.ProposedTime.Format("Mon 2006-01-02 15:04"), meeting.DurationMinutes))

	for _, status := range analysis.Statuses {
		name := names[status.ParticipantID]
		if name == "" {
			name = status.ParticipantID
		}
		line := fmt.Sprintf("  %-20s %-8s", name, statusColor(status.Status).Sprint(status.Status.String()))
		if !status.LocalTime.IsZero() {
			line += fmt.Sprintf(" %s (%s)", status.LocalTime.Format("15:04"), status.UTCOffset)
		}
		if status.Reason != "" {
			line += "  " + status.Reason
		}
		fmt.Fprintln(w, line)
	}

	fmt.Fprintf(w, "  Equity score: %s\n", formatScore(analysis.Score))

	fmt.Fprintf(w, "\n%s\n", title.Sprint("Heatmap (UTC)"))
	for _, slot := range analysis.Slots {
		fmt.Fprintf(w, "  %02d:00 %s %s\n", slot.Hour, heatmapBar(slot.Result), formatScore(slot.Result))
	}

	fmt.Fprintf(w, "\n%s\n", title.Sprint("Best slots"))
	for i, slot := range analysis.Suggestions {
		fmt.Fprintf(w, "  %d. %02d:00 UTC — %s\n", i+1, slot.Hour, formatScore(slot.Result))
	}

	if len(warnings) > 0 {
		warn := color.New(color.FgYellow)
		fmt.Fprintf(w, "\n%s\n", warn.Sprint("Double-booking warnings"))
		for _, warning := range warnings {
			fmt.Fprintf(w, "  participant %s overlaps meeting %s\n", warning.ParticipantID, warning.MeetingID)
		}
	}
}

func formatScore(result equity.ScoreResult) string {
	if !result.Available {
		return scoreColor(result).Sprint("no data")
	}
	return scoreColor(result).Sprintf("%d (%s)", result.DisplayScore(), result.QualityTier())
}

// heatmapBar draws a 20-cell bar proportional to the slot score.
func heatmapBar(result equity.ScoreResult) string {
	const width = 20
	if !result.Available {
		return strings.Repeat("·", width)
	}
	filled := result.DisplayScore() * width / 100
	if filled > width {
		filled = width
	}
	return scoreColor(result).Sprint(strings.Repeat("█", filled)) + strings.Repeat(" ", width-filled)
}
