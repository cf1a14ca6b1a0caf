package equity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/meeting-equity/internal/holiday"
	"github.com/example/meeting-equity/internal/logging"
	"github.com/example/meeting-equity/internal/timezone"
	"github.com/example/meeting-equity/internal/workinghours"
)

// ConfigResolver yields the working-hours configuration for a country.
type ConfigResolver interface {
	Resolve(countryCode string) workinghours.Config
}

// Classifier assigns a convenience status to a participant at an instant.
// All state is read-only after construction; Classify is safe to call
// concurrently.
type Classifier struct {
	resolver ConfigResolver
	gateway  holiday.Gateway
	logger   *slog.Logger
}

// NewClassifier wires the classifier's collaborators. A nil gateway skips
// holiday checks entirely; a nil logger falls back to slog.Default.
func NewClassifier(resolver ConfigResolver, gateway holiday.Gateway, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{resolver: resolver, gateway: gateway, logger: logger}
}

// Classify computes the status for one participant at one UTC instant.
//
// The decision runs in fixed precedence: holiday, then non-working day,
// then time-of-day bands. A holiday gateway failure is absorbed — the
// lookup degrades to "unknown holiday status" and evaluation falls through
// to the weekday check. The only error returned is timezone.ErrInvalidTimeZone,
// which is fatal to this participant's classification alone.
func (c *Classifier) Classify(ctx context.Context, p Participant, instant time.Time) (ParticipantStatus, error) {
	local, err := timezone.Convert(instant, p.Timezone)
	if err != nil {
		return ParticipantStatus{}, err
	}

	status := ParticipantStatus{
		ParticipantID: p.ID,
		LocalTime:     local.Time,
		UTCOffset:     timezone.FormatOffset(local.OffsetSeconds),
	}

	if c.gateway != nil {
		lookup, err := c.gateway.IsHoliday(ctx, local.Time, p.Country)
		switch {
		case err != nil:
			c.classifyLogger(ctx).Warn("holiday lookup failed, treating as unknown",
				"participant_id", p.ID,
				"country", p.Country,
				"date", holiday.DateKey(local.Time),
				"error", err)
		case lookup.IsHoliday:
			status.Status = StatusCritical
			status.IsCritical = true
			status.Reason = fmt.Sprintf("Holiday: %s", lookup.Name)
			return status, nil
		}
	}

	cfg := workinghours.Default()
	if c.resolver != nil {
		cfg = c.resolver.Resolve(p.Country)
	}

	if !cfg.IsWorkDay(local.ISOWeekday) {
		status.Status = StatusCritical
		status.IsCritical = true
		status.Reason = "Non-working day"
		return status, nil
	}

	minute := workinghours.Minute(local.MinuteOfDay)
	switch {
	case minute >= cfg.GreenStart && minute < cfg.GreenEnd:
		status.Status = StatusGreen
	case minute >= cfg.OrangeMorningStart && minute < cfg.OrangeMorningEnd,
		minute >= cfg.OrangeEveningStart && minute < cfg.OrangeEveningEnd:
		status.Status = StatusOrange
	default:
		status.Status = StatusRed
		status.Reason = "Outside working hours"
	}

	return status, nil
}

// ClassifyAll classifies every participant at the instant. An invalid time
// zone fails only the affected participant, who is reported critical with
// an explanatory reason so aggregate breakdowns stay complete and the
// analysis stays renderable.
func (c *Classifier) ClassifyAll(ctx context.Context, participants []Participant, instant time.Time) []ParticipantStatus {
	if len(participants) == 0 {
		return nil
	}
	statuses := make([]ParticipantStatus, 0, len(participants))
	for _, p := range participants {
		status, err := c.Classify(ctx, p, instant)
		if err != nil {
			c.classifyLogger(ctx).Warn("participant classification failed",
				"participant_id", p.ID,
				"timezone", p.Timezone,
				"error", err)
			status = ParticipantStatus{
				ParticipantID: p.ID,
				Status:        StatusCritical,
				IsCritical:    true,
				Reason:        fmt.Sprintf("Invalid time zone: %s", p.Timezone),
			}
		}
		statuses = append(statuses, status)
	}
	return statuses
}

func (c *Classifier) classifyLogger(ctx context.Context) *slog.Logger {
	if logger := logging.FromContext(ctx); logger != nil {
		return logger
	}
	return c.logger
}
