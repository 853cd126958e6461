package query

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evaluaasi/support-gateway/internal/cache"
	"github.com/evaluaasi/support-gateway/internal/domain"
	"github.com/evaluaasi/support-gateway/internal/events"
	"github.com/evaluaasi/support-gateway/internal/service"
)

// countingSupport wraps a preview service and counts calls per accessor.
type countingSupport struct {
	*service.SupportService
	mu    sync.Mutex
	calls map[string]int
}

func newCountingSupport(d events.Dispatcher) *countingSupport {
	svc := service.NewSupportService(service.Options{Preview: true}, service.SupportDependencies{Dispatcher: d})
	return &countingSupport{SupportService: svc, calls: map[string]int{}}
}

func (c *countingSupport) inc(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[name]++
}

func (c *countingSupport) count(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[name]
}

func (c *countingSupport) ListCampuses(ctx context.Context, f domain.CampusFilter) (*domain.CampusListing, error) {
	c.inc("campuses")
	return c.SupportService.ListCampuses(ctx, f)
}

func (c *countingSupport) ListPartners(ctx context.Context) ([]domain.PartnerOption, error) {
	c.inc("partners")
	return c.SupportService.ListPartners(ctx)
}

func (c *countingSupport) ListTickets(ctx context.Context, f domain.TicketFilter) (*domain.TicketListing, error) {
	c.inc("tickets")
	return c.SupportService.ListTickets(ctx, f)
}

func (c *countingSupport) SearchUsers(ctx context.Context, s domain.UserSearch) (*domain.UserPage, error) {
	c.inc("users")
	return c.SupportService.SearchUsers(ctx, s)
}

func TestClientMemoizesByFilter(t *testing.T) {
	support := newCountingSupport(nil)
	client := NewClient(support, cache.New(cache.Options{}))
	ctx := context.Background()

	first, err := client.Campuses(ctx, domain.CampusFilter{Active: domain.ActiveOnly})
	require.NoError(t, err)
	second, err := client.Campuses(ctx, domain.CampusFilter{Active: domain.ActiveOnly})
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, support.count("campuses"))

	_, err = client.Campuses(ctx, domain.CampusFilter{Active: domain.ActiveAll})
	require.NoError(t, err)
	assert.Equal(t, 2, support.count("campuses"))

	_, err = client.Partners(ctx)
	require.NoError(t, err)
	_, err = client.Partners(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, support.count("partners"))
}

func TestClientUsersKeyIncludesDefaults(t *testing.T) {
	support := newCountingSupport(nil)
	client := NewClient(support, cache.New(cache.Options{}))
	ctx := context.Background()

	_, err := client.Users(ctx, domain.UserSearch{Search: "ana"})
	require.NoError(t, err)
	_, err = client.Users(ctx, domain.UserSearch{Search: "ana", Page: 1, PerPage: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, support.count("users"))
}

func TestClientMutationInvalidatesTickets(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	qc := cache.New(cache.Options{})
	service.NewInvalidationService(dispatcher, qc, nil).RegisterHandlers()
	support := newCountingSupport(dispatcher)
	client := NewClient(support, qc)
	ctx := context.Background()

	_, err := client.Tickets(ctx, domain.TicketFilter{Status: domain.TicketStatusOpen})
	require.NoError(t, err)
	_, err = client.Campuses(ctx, domain.CampusFilter{})
	require.NoError(t, err)

	require.NoError(t, dispatcher.Publish(ctx, events.Event{Type: events.EventTicketStatusChanged, Subject: "1"}))

	_, err = client.Tickets(ctx, domain.TicketFilter{Status: domain.TicketStatusOpen})
	require.NoError(t, err)
	_, err = client.Campuses(ctx, domain.CampusFilter{})
	require.NoError(t, err)

	assert.Equal(t, 2, support.count("tickets"))
	assert.Equal(t, 1, support.count("campuses"))
}

func TestClientDoesNotCacheErrors(t *testing.T) {
	support := newCountingSupport(nil)
	client := NewClient(support, cache.New(cache.Options{}))

	_, err := client.Calendar(context.Background(), domain.CalendarQuery{Month: "nope"})
	require.Error(t, err)
	view, err := client.Calendar(context.Background(), domain.CalendarQuery{Month: "2024-03"})
	require.NoError(t, err)
	assert.Len(t, view.Events, 5)
}

func TestClientScopesEntriesByRole(t *testing.T) {
	support := newCountingSupport(nil)
	client := NewClient(support, cache.New(cache.Options{}))
	supportCtx := WithRole(context.Background(), domain.RoleSupport)
	adminCtx := WithRole(context.Background(), domain.RoleAdmin)

	_, err := client.Partners(supportCtx)
	require.NoError(t, err)
	_, err = client.Partners(WithRole(context.Background(), domain.RoleSupport))
	require.NoError(t, err)
	assert.Equal(t, 1, support.count("partners"))

	_, err = client.Partners(adminCtx)
	require.NoError(t, err)
	assert.Equal(t, 2, support.count("partners"))

	_, err = client.Users(supportCtx, domain.UserSearch{Role: "admin"})
	require.NoError(t, err)
	_, err = client.Users(adminCtx, domain.UserSearch{Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, 2, support.count("users"), "the searched role and the caller's role are distinct key parts")
}
