package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/evaluaasi/support-gateway/internal/cache"
	"github.com/evaluaasi/support-gateway/internal/events"
)

// Invalidator drops cached query results.
type Invalidator interface {
	Invalidate(ctx context.Context, kinds ...cache.Kind)
}

// InvalidationService keeps the query cache honest after mutations and
// leaves an audit trail of who changed what.
type InvalidationService struct {
	dispatcher events.Dispatcher
	cache      Invalidator
	logger     *zap.Logger
}

// NewInvalidationService creates the service.
func NewInvalidationService(dispatcher events.Dispatcher, invalidator Invalidator, logger *zap.Logger) *InvalidationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvalidationService{dispatcher: dispatcher, cache: invalidator, logger: logger}
}

// affectedKinds maps each mutation to the cached views it makes stale.
var affectedKinds = map[events.EventType][]cache.Kind{
	events.EventTicketStatusChanged: {cache.KindTickets},
	events.EventTicketNoteAdded:     {cache.KindTickets},
	events.EventCampusCreated:       {cache.KindCampuses, cache.KindCalendar},
	events.EventSupportEmailSent:    {cache.KindUsers},
}

// RegisterHandlers subscribes to events.
func (n *InvalidationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	for eventType := range affectedKinds {
		n.dispatcher.Subscribe(eventType, n.handle)
	}
}

func (n *InvalidationService) handle(ctx context.Context, event events.Event) error {
	n.logger.Info("support mutation",
		zap.String("event", string(event.Type)),
		zap.String("event_id", event.ID),
		zap.String("subject", event.Subject),
		zap.String("actor", event.Actor.Username),
		zap.Any("payload", event.Payload))
	if n.cache != nil {
		n.cache.Invalidate(ctx, affectedKinds[event.Type]...)
	}
	return nil
}
