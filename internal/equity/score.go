package equity

import "math"

// Breakdown counts participants per status. The four counts always sum to
// the number of classified participants.
type Breakdown struct {
	Green    int
	Orange   int
	Red      int
	Critical int
}

// Total returns the number of participants covered by the breakdown.
func (b Breakdown) Total() int {
	return b.Green + b.Orange + b.Red + b.Critical
}

// ScoreResult aggregates participant statuses into a single fairness score.
type ScoreResult struct {
	// Available distinguishes "no data" from a genuine zero. A score is
	// unavailable only when there were no participants to aggregate.
	Available bool
	// Score is the weighted mean in [0, 100], fractional internally.
	Score     float64
	Breakdown Breakdown
}

// Score computes the weighted mean of the statuses: green=100, orange=60,
// red=20, critical=0. An empty input yields an unavailable result rather
// than zero — "no data" is a distinct state from "terrible".
func Score(statuses []ParticipantStatus) ScoreResult {
	if len(statuses) == 0 {
		return ScoreResult{}
	}

	result := ScoreResult{Available: true}
	var sum float64
	for _, status := range statuses {
		sum += status.Status.Weight()
		switch status.Status {
		case StatusGreen:
			result.Breakdown.Green++
		case StatusOrange:
			result.Breakdown.Orange++
		case StatusRed:
			result.Breakdown.Red++
		default:
			result.Breakdown.Critical++
		}
	}
	result.Score = sum / float64(len(statuses))
	return result
}

// DisplayScore rounds the score to the nearest integer for presentation.
func (r ScoreResult) DisplayScore() int {
	if !r.Available {
		return 0
	}
	return int(math.Round(r.Score))
}

// QualityTier buckets the rounded score for display: >=71 Excellent,
// 41-70 Good, 1-40 Fair, 0 Poor. Unavailable results report "No data".
func (r ScoreResult) QualityTier() string {
	if !r.Available {
		return "No data"
	}
	switch score := r.DisplayScore(); {
	case score >= 71:
		return "Excellent"
	case score >= 41:
		return "Good"
	case score >= 1:
		return "Fair"
	default:
		return "Poor"
	}
}
