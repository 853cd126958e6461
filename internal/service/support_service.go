package service

import (
	"context"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/evaluaasi/support-gateway/internal/domain"
	"github.com/evaluaasi/support-gateway/internal/events"
	"github.com/evaluaasi/support-gateway/internal/fetch"
	"github.com/evaluaasi/support-gateway/internal/preview"
)

// Backend is the subset of the REST client the accessors need.
type Backend interface {
	Get(ctx context.Context, path string, query url.Values, result any) error
	Post(ctx context.Context, path string, body, result any) error
	Patch(ctx context.Context, path string, body, result any) error
}

// Recorder receives accessor observability signals.
type Recorder interface {
	RecordSource(accessor, source string)
	RecordFanOutFailures(n int)
}

// Options are fixed for the service lifetime.
type Options struct {
	// Preview makes every accessor answer from fixtures without touching the network.
	Preview     bool
	FanOutLimit int
	Location    *time.Location
}

// SupportDependencies bundles collaborators for the support service.
type SupportDependencies struct {
	Backend    Backend
	Fixtures   *preview.Fixtures
	Logger     *zap.Logger
	Metrics    Recorder
	Dispatcher events.Dispatcher
}

// SupportService is the support data-access layer: it picks live or preview
// data, normalizes backend shapes, falls back across endpoints and builds the
// aggregates the dashboards show.
type SupportService struct {
	api        Backend
	fixtures   *preview.Fixtures
	opts       Options
	logger     *zap.Logger
	metrics    Recorder
	dispatcher events.Dispatcher
}

// NewSupportService constructs the service.
func NewSupportService(opts Options, deps SupportDependencies) *SupportService {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.FanOutLimit <= 0 {
		opts.FanOutLimit = 8
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Fixtures == nil {
		deps.Fixtures = preview.Default()
	}
	return &SupportService{
		api:        deps.Backend,
		fixtures:   deps.Fixtures,
		opts:       opts,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
		dispatcher: deps.Dispatcher,
	}
}

// Preview reports whether fixtures are being served.
func (s *SupportService) Preview() bool {
	return s.opts.Preview
}

// Location is the time zone used for calendar-day computations.
func (s *SupportService) Location() *time.Location {
	return s.opts.Location
}

const (
	sourceSupport  = "support"
	sourceFallback = "fallback"
	sourcePreview  = "preview"
)

func liveSource(attempt fetch.Attempt) string {
	if attempt == fetch.Fallback {
		return sourceFallback
	}
	return sourceSupport
}

func (s *SupportService) recordSource(accessor, source string) {
	if s.metrics != nil {
		s.metrics.RecordSource(accessor, source)
	}
}

func (s *SupportService) publish(ctx context.Context, actor *domain.Principal, eventType events.EventType, subject string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{Type: eventType, Subject: subject, Payload: payload}
	if actor != nil {
		event.Actor = events.Actor{UserID: actor.UserID, Username: actor.Username, Role: actor.Role}
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event", string(eventType)), zap.Error(err))
	}
}
