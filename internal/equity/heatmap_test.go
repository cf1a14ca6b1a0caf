package equity

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/example/meeting-equity/internal/holiday"
)

func TestGenerator_GenerateSlots(t *testing.T) {
	t.Parallel()

	date := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

	t.Run("returns 24 slots with strictly increasing hours", func(t *testing.T) {
		t.Parallel()
		generator := NewGenerator(testClassifier(nil))

		slots, err := generator.GenerateSlots(context.Background(), date, []Participant{newYorkParticipant()})
		if err != nil {
			t.Fatalf("GenerateSlots returned error: %v", err)
		}
		if len(slots) != 24 {
			t.Fatalf("len(slots) = %d, want 24", len(slots))
		}
		for i, slot := range slots {
			if slot.Hour != i {
				t.Errorf("slots[%d].Hour = %d, want %d", i, slot.Hour, i)
			}
			want := date.Add(time.Duration(i) * time.Hour)
			if !slot.Time.Equal(want) {
				t.Errorf("slots[%d].Time = %v, want %v", i, slot.Time, want)
			}
			if slot.Time.Minute() != 0 || slot.Time.Second() != 0 {
				t.Errorf("slots[%d] not aligned to :00: %v", i, slot.Time)
			}
		}
	})

	t.Run("each slot is scored independently", func(t *testing.T) {
		t.Parallel()
		generator := NewGenerator(testClassifier(nil))

		slots, err := generator.GenerateSlots(context.Background(), date, []Participant{newYorkParticipant()})
		if err != nil {
			t.Fatalf("GenerateSlots returned error: %v", err)
		}
		// 14:00-21:00 UTC map into New York's 09:00-16:00 green window.
		if slots[14].Result.Score != 100 {
			t.Errorf("slot 14 score = %v, want 100 (green)", slots[14].Result.Score)
		}
		// 05:00 UTC is midnight local: red.
		if slots[5].Result.Score != 20 {
			t.Errorf("slot 5 score = %v, want 20 (red)", slots[5].Result.Score)
		}
		for _, slot := range slots {
			if slot.Result.Breakdown.Total() != 1 {
				t.Errorf("slot %d breakdown total = %d, want 1", slot.Hour, slot.Result.Breakdown.Total())
			}
		}
	})

	t.Run("gateway failure degrades per participant without aborting the batch", func(t *testing.T) {
		t.Parallel()
		gateway := holiday.NewStaticGateway()
		gateway.Fail(holiday.ErrGatewayUnavailable)
		generator := NewGenerator(testClassifier(gateway))

		slots, err := generator.GenerateSlots(context.Background(), date, []Participant{newYorkParticipant()})
		if err != nil {
			t.Fatalf("GenerateSlots returned error: %v", err)
		}
		if len(slots) != 24 {
			t.Fatalf("len(slots) = %d, want 24", len(slots))
		}
		if !slots[14].Result.Available {
			t.Error("slot 14 unavailable despite graceful gateway degradation")
		}
	})

	t.Run("empty participant set yields unavailable slots", func(t *testing.T) {
		t.Parallel()
		generator := NewGenerator(testClassifier(nil))

		slots, err := generator.GenerateSlots(context.Background(), date, nil)
		if err != nil {
			t.Fatalf("GenerateSlots returned error: %v", err)
		}
		for _, slot := range slots {
			if slot.Result.Available {
				t.Errorf("slot %d available with zero participants", slot.Hour)
			}
		}
	})

	t.Run("honours context cancellation", func(t *testing.T) {
		t.Parallel()
		generator := NewGenerator(testClassifier(nil))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := generator.GenerateSlots(ctx, date, []Participant{newYorkParticipant()}); err == nil {
			t.Error("GenerateSlots succeeded with cancelled context, want error")
		}
	})
}

func TestTopSuggestions(t *testing.T) {
	t.Parallel()

	slot := func(hour int, score float64, critical int) HeatmapSlot {
		return HeatmapSlot{
			Hour: hour,
			Result: ScoreResult{
				Available: true,
				Score:     score,
				Breakdown: Breakdown{Critical: critical},
			},
		}
	}

	t.Run("ranks by score then critical count then hour", func(t *testing.T) {
		t.Parallel()
		slots := []HeatmapSlot{
			slot(3, 60, 1),
			slot(9, 100, 0),
			slot(1, 60, 0),
			slot(0, 60, 0),
			slot(12, 80, 0),
		}

		top := TopSuggestions(slots, 3)
		gotHours := []int{top[0].Hour, top[1].Hour, top[2].Hour}
		if !reflect.DeepEqual(gotHours, []int{9, 12, 0}) {
			t.Errorf("top hours = %v, want [9 12 0]", gotHours)
		}
	})

	t.Run("fewer criticals win the tie before earlier hour", func(t *testing.T) {
		t.Parallel()
		slots := []HeatmapSlot{
			slot(2, 50, 2),
			slot(7, 50, 0),
		}

		top := TopSuggestions(slots, 1)
		if top[0].Hour != 7 {
			t.Errorf("top hour = %d, want 7 (fewer criticals)", top[0].Hour)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()
		slots := []HeatmapSlot{
			slot(5, 40, 0),
			slot(2, 90, 0),
			slot(8, 90, 1),
		}

		once := TopSuggestions(slots, 3)
		twice := TopSuggestions(once, 3)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("re-ranking changed order: %v vs %v", once, twice)
		}
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		t.Parallel()
		slots := []HeatmapSlot{slot(5, 40, 0), slot(2, 90, 0)}
		original := make([]HeatmapSlot, len(slots))
		copy(original, slots)

		TopSuggestions(slots, 2)
		if !reflect.DeepEqual(slots, original) {
			t.Error("TopSuggestions mutated its input slice")
		}
	})

	t.Run("unavailable slots rank last", func(t *testing.T) {
		t.Parallel()
		slots := []HeatmapSlot{
			{Hour: 0},
			slot(4, 10, 3),
		}

		top := TopSuggestions(slots, 2)
		if top[0].Hour != 4 {
			t.Errorf("top hour = %d, want 4 (available beats no-data)", top[0].Hour)
		}
	})

	t.Run("clamps n to the slot count", func(t *testing.T) {
		t.Parallel()
		if got := TopSuggestions([]HeatmapSlot{slot(1, 50, 0)}, 5); len(got) != 1 {
			t.Errorf("len = %d, want 1", len(got))
		}
		if got := TopSuggestions(nil, 3); got != nil {
			t.Errorf("TopSuggestions(nil) = %v, want nil", got)
		}
	})
}
