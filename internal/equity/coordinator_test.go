package equity

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestCoordinator_LastRequestWins(t *testing.T) {
	t.Parallel()

	coordinator := NewCoordinator[string]()

	release1 := make(chan struct{})
	release2 := make(chan struct{})

	_, done1 := coordinator.Submit(context.Background(), func(context.Context) (string, error) {
		<-release1
		return "generation-1", nil
	})
	_, done2 := coordinator.Submit(context.Background(), func(context.Context) (string, error) {
		<-release2
		return "generation-2", nil
	})
	gen3, done3 := coordinator.Submit(context.Background(), func(context.Context) (string, error) {
		return "generation-3", nil
	})
	<-done3

	// Generations 1 and 2 resolve after 3 completed; both must be discarded.
	close(release1)
	close(release2)
	<-done1
	<-done2

	result, gen, ok := coordinator.Latest()
	if !ok {
		t.Fatal("Latest() reports no result")
	}
	if result != "generation-3" || gen != gen3 {
		t.Errorf("Latest() = (%q, %d), want (%q, %d)", result, gen, "generation-3", gen3)
	}
}

func TestCoordinator_SupersededContextIsCancelled(t *testing.T) {
	t.Parallel()

	coordinator := NewCoordinator[int]()

	cancelled := make(chan struct{})
	_, done1 := coordinator.Submit(context.Background(), func(ctx context.Context) (int, error) {
		select {
		case <-ctx.Done():
			close(cancelled)
			return 0, ctx.Err()
		case <-time.After(5 * time.Second):
			return 1, nil
		}
	})

	_, done2 := coordinator.Submit(context.Background(), func(context.Context) (int, error) {
		return 2, nil
	})

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("superseded task context was not cancelled")
	}
	<-done1
	<-done2

	result, _, ok := coordinator.Latest()
	if !ok || result != 2 {
		t.Errorf("Latest() = (%d, %v), want (2, true)", result, ok)
	}
}

func TestCoordinator_FailedTasksLeaveLatestUntouched(t *testing.T) {
	t.Parallel()

	coordinator := NewCoordinator[string]()

	_, done := coordinator.Submit(context.Background(), func(context.Context) (string, error) {
		return "good", nil
	})
	<-done

	_, done = coordinator.Submit(context.Background(), func(context.Context) (string, error) {
		return "", errors.New("recompute failed")
	})
	<-done

	result, _, ok := coordinator.Latest()
	if !ok || result != "good" {
		t.Errorf("Latest() = (%q, %v), want (%q, true)", result, ok, "good")
	}
}

func TestCoordinator_GenerationsAreMonotonic(t *testing.T) {
	t.Parallel()

	coordinator := NewCoordinator[int]()

	var previous uint64
	for i := 0; i < 5; i++ {
		gen, done := coordinator.Submit(context.Background(), func(context.Context) (int, error) {
			return i, nil
		})
		if gen <= previous {
			t.Errorf("generation %d not greater than previous %d", gen, previous)
		}
		previous = gen
		<-done
	}

	if got := coordinator.Generation(); got != previous {
		t.Errorf("Generation() = %d, want %d", got, previous)
	}
}

func TestCoordinator_ConcurrentSubmitsKeepNewestAlive(t *testing.T) {
	t.Parallel()

	coordinator := NewCoordinator[uint64]()

	const submissions = 64
	release := make(chan struct{})
	dones := make([]<-chan struct{}, submissions)

	var wg sync.WaitGroup
	for i := 0; i < submissions; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, done := coordinator.Submit(context.Background(), func(ctx context.Context) (uint64, error) {
				<-release
				if err := ctx.Err(); err != nil {
					return 0, err
				}
				return 1, nil
			})
			dones[i] = done
		}(i)
	}
	wg.Wait()
	close(release)
	for _, done := range dones {
		<-done
	}

	// Whichever submission drew the highest token must have run to
	// completion with a live context and had its result applied.
	_, gen, ok := coordinator.Latest()
	if !ok {
		t.Fatal("Latest() reports no result after all submissions settled")
	}
	if current := coordinator.Generation(); gen != current {
		t.Errorf("Latest() generation = %d, want current generation %d", gen, current)
	}
}

func TestCoordinator_NoResultBeforeFirstCompletion(t *testing.T) {
	t.Parallel()

	coordinator := NewCoordinator[string]()
	if _, _, ok := coordinator.Latest(); ok {
		t.Error("Latest() reports a result before any submission")
	}
}
