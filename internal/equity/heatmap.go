package equity

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// hourlyConcurrency bounds the parallel hour fan-out so a 24-slot analysis
// does not burst the holiday gateway with every lookup at once.
const hourlyConcurrency = 8

// HeatmapSlot is the equity analysis for one UTC hour of a candidate day.
type HeatmapSlot struct {
	// Hour is the UTC hour of the slot, 0..23.
	Hour int
	// Time is the concrete instant of the slot on the analyzed date.
	Time time.Time
	// Result aggregates the slot's participant statuses.
	Result ScoreResult
	// Statuses holds the per-participant classifications for the slot.
	Statuses []ParticipantStatus
}

// Generator builds ranked 24-hour heatmaps from the classifier and scorer.
type Generator struct {
	classifier *Classifier
}

// NewGenerator constructs a heatmap generator around the classifier.
func NewGenerator(classifier *Classifier) *Generator {
	return &Generator{classifier: classifier}
}

// GenerateSlots classifies and scores every whole UTC hour of the date's
// day, holding minutes and seconds at :00. It always returns exactly 24
// slots with strictly increasing hours.
//
// Hours are evaluated in parallel; each writes to its own index, so no
// ordering dependency exists between them. A slot is finalized only once
// every one of its participants has either resolved or degraded to unknown
// holiday status — partial slots are never surfaced. The generator does
// not search across dates; re-invoking with a new date yields an
// independent result.
func (g *Generator) GenerateSlots(ctx context.Context, date time.Time, participants []Participant) ([]HeatmapSlot, error) {
	day := date.UTC()
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	slots := make([]HeatmapSlot, 24)
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(hourlyConcurrency)

	for hour := 0; hour < 24; hour++ {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			instant := midnight.Add(time.Duration(hour) * time.Hour)
			statuses := g.classifier.ClassifyAll(groupCtx, participants, instant)
			slots[hour] = HeatmapSlot{
				Hour:     hour,
				Time:     instant,
				Result:   Score(statuses),
				Statuses: statuses,
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return slots, nil
}

// TopSuggestions returns the n best slots ranked by descending score, with
// ties broken by fewer critical participants, then by earlier hour. The
// ordering is deterministic and idempotent; the input slice is not
// modified. Slots without an available score rank last.
func TopSuggestions(slots []HeatmapSlot, n int) []HeatmapSlot {
	if n <= 0 || len(slots) == 0 {
		return nil
	}

	ranked := make([]HeatmapSlot, len(slots))
	copy(ranked, slots)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Result.Available != b.Result.Available {
			return a.Result.Available
		}
		if a.Result.Score != b.Result.Score {
			return a.Result.Score > b.Result.Score
		}
		if a.Result.Breakdown.Critical != b.Result.Breakdown.Critical {
			return a.Result.Breakdown.Critical < b.Result.Breakdown.Critical
		}
		return a.Hour < b.Hour
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
