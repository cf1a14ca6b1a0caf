package testfixtures

import (
	"log/slog"
	"time"

	"github.com/example/meeting-equity/internal/application"
	"github.com/example/meeting-equity/internal/equity"
	"github.com/example/meeting-equity/internal/workinghours"
)

// ServiceFactory assists tests with constructing application services using
// deterministic identifiers and clocks.
type ServiceFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Clock:       NewClock(time.Time{}),
		IDGenerator: NewIDGenerator("id"),
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = NewIDGenerator("id")
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithIDGenerator overrides the identifier generator used by the factory.
func WithIDGenerator(generator *IDGenerator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.IDGenerator = generator
	}
}

// ParticipantServiceDeps captures dependencies for constructing a participant service.
type ParticipantServiceDeps struct {
	Participants application.ParticipantRepository
	IDGenerator  func() string
	Now          func() time.Time
	Logger       *slog.Logger
}

// NewParticipantService builds a participant service using the supplied
// dependencies combined with the factory defaults.
func (f *ServiceFactory) NewParticipantService(deps ParticipantServiceDeps) *application.ParticipantService {
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = f.IDGenerator.NextFunc()
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewParticipantServiceWithLogger(
		deps.Participants,
		idGen,
		now,
		deps.Logger,
	)
}

// MeetingServiceDeps captures dependencies for constructing a meeting service.
type MeetingServiceDeps struct {
	Meetings     application.MeetingRepository
	Participants application.ParticipantDirectory
	IDGenerator  func() string
	Now          func() time.Time
	Logger       *slog.Logger
}

// NewMeetingService builds a meeting service using the supplied dependencies.
func (f *ServiceFactory) NewMeetingService(deps MeetingServiceDeps) *application.MeetingService {
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = f.IDGenerator.NextFunc()
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewMeetingServiceWithLogger(
		deps.Meetings,
		deps.Participants,
		idGen,
		now,
		deps.Logger,
	)
}

// WorkingHoursServiceDeps captures dependencies for constructing a working-hours service.
type WorkingHoursServiceDeps struct {
	Configs  application.CountryConfigRepository
	Resolver *workinghours.Resolver
	Now      func() time.Time
	Logger   *slog.Logger
}

// NewWorkingHoursService builds a working-hours service using the supplied dependencies.
func (f *ServiceFactory) NewWorkingHoursService(deps WorkingHoursServiceDeps) *application.WorkingHoursService {
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	resolver := deps.Resolver
	if resolver == nil {
		resolver = workinghours.NewResolver(nil)
	}
	return application.NewWorkingHoursServiceWithLogger(
		deps.Configs,
		resolver,
		now,
		deps.Logger,
	)
}

// AnalysisServiceDeps captures dependencies for constructing an analysis service.
type AnalysisServiceDeps struct {
	Meetings     application.MeetingRepository
	Participants application.ParticipantRepository
	Classifier   *equity.Classifier
	Now          func() time.Time
	Logger       *slog.Logger
}

// NewAnalysisService builds an analysis service using the supplied dependencies.
func (f *ServiceFactory) NewAnalysisService(deps AnalysisServiceDeps) *application.AnalysisService {
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewAnalysisServiceWithLogger(
		deps.Meetings,
		deps.Participants,
		deps.Classifier,
		now,
		deps.Logger,
	)
}
