package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/example/meeting-equity/internal/application"
	"github.com/example/meeting-equity/internal/config"
	"github.com/example/meeting-equity/internal/equity"
	"github.com/example/meeting-equity/internal/holiday"
	"github.com/example/meeting-equity/internal/logging"
	"github.com/example/meeting-equity/internal/persistence/sqlite"
	"github.com/example/meeting-equity/internal/workinghours"
)

func main() {
	// A missing .env file is fine; the loader falls back to defaults.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stderr, cfg.LogLevel)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("equity engine failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	storage, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := storage.Migrate(ctx); err != nil {
		return err
	}

	idGenerator := uuid.NewString
	now := time.Now

	participantRepo := newParticipantRepositoryAdapter(storage)
	participantDirectory := newParticipantDirectoryAdapter(storage)
	meetingRepo := newMeetingRepositoryAdapter(storage)
	configRepo := newCountryConfigRepositoryAdapter(storage)

	resolver := workinghours.NewResolver(nil)

	participantService := application.NewParticipantServiceWithLogger(participantRepo, idGenerator, now, logger)
	meetingService := application.NewMeetingServiceWithLogger(meetingRepo, participantDirectory, idGenerator, now, logger)
	workingHoursService := application.NewWorkingHoursServiceWithLogger(configRepo, resolver, now, logger)

	if err := workingHoursService.LoadResolver(ctx); err != nil {
		return err
	}

	var gateway holiday.Gateway
	if cfg.OfflineHolidays {
		logger.Info("holiday lookups disabled, using empty static gateway")
		gateway = holiday.NewStaticGateway()
	} else {
		gateway = holiday.NewClient(cfg.HolidayCacheTTL, logger,
			holiday.WithBaseURL(cfg.HolidayAPIURL),
			holiday.WithHTTPClient(&http.Client{Timeout: cfg.HolidayTimeout}),
		)
	}

	classifier := equity.NewClassifier(resolver, gateway, logger)
	analysisService := application.NewAnalysisServiceWithLogger(meetingRepo, participantRepo, classifier, now, logger)
	analysisService.SetSuggestionCount(cfg.SuggestionCount)

	if err := seedDemoData(ctx, participantService, meetingService, logger); err != nil {
		return err
	}

	meetings, err := meetingService.ListMeetings(ctx)
	if err != nil {
		return err
	}
	participants, err := participantService.ListParticipants(ctx)
	if err != nil {
		return err
	}
	names := make(map[string]string, len(participants))
	for _, p := range participants {
		names[p.ID] = p.Name
	}

	for _, meeting := range meetings {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		analysis, err := analysisService.Analyze(ctx, meeting.ID)
		if err != nil {
			logger.Error("analysis failed", "meeting_id", meeting.ID, "error", err)
			continue
		}
		warnings, err := meetingService.ConflictWarnings(ctx, meeting)
		if err != nil {
			logger.Warn("conflict detection failed", "meeting_id", meeting.ID, "error", err)
		}
		renderAnalysis(os.Stdout, meeting, analysis, names, warnings)
	}

	return nil
}

// seedDemoData creates a small cross-continental roster and one meeting the
// first time the engine runs against an empty database.
func seedDemoData(ctx context.Context, participants *application.ParticipantService, meetings *application.MeetingService, logger *slog.Logger) error {
	existing, err := participants.ListParticipants(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	roster := []application.ParticipantInput{
		{Name: "Ada Lovelace", Timezone: "America/New_York", Country: "US"},
		{Name: "Grace Hopper", Timezone: "Europe/Berlin", Country: "DE"},
		{Name: "Asha Devi", Timezone: "Asia/Kolkata", Country: "IN"},
		{Name: "Kenji Tanaka", Timezone: "Asia/Tokyo", Country: "JP"},
	}

	ids := make([]string, 0, len(roster))
	for _, input := range roster {
		created, err := participants.CreateParticipant(ctx, input)
		if err != nil {
			return err
		}
		ids = append(ids, created.ID)
	}

	// Next Wednesday at 14:00 UTC keeps the demo on a working day.
	proposed := nextWeekday(time.Now().UTC(), time.Wednesday).Truncate(24 * time.Hour).Add(14 * time.Hour)
	if _, err := meetings.CreateMeeting(ctx, application.MeetingInput{
		Title:           "Global team sync",
		ProposedTime:    proposed,
		DurationMinutes: 60,
		ParticipantIDs:  ids,
	}); err != nil {
		return err
	}

	logger.Info("seeded demo roster", "participants", len(ids))
	return nil
}

func nextWeekday(from time.Time, day time.Weekday) time.Time {
	offset := (int(day) - int(from.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return from.AddDate(0, 0, offset)
}
