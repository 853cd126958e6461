// Package query exposes the support accessors the way the dashboards consume
// them: each read is memoized in the query cache under a key built from the
// entity kind and its filters.
package query

import (
	"context"
	"net/url"
	"strconv"

	"github.com/evaluaasi/support-gateway/internal/cache"
	"github.com/evaluaasi/support-gateway/internal/domain"
)

// Support is the accessor surface the hooks wrap.
type Support interface {
	ListCampuses(ctx context.Context, filter domain.CampusFilter) (*domain.CampusListing, error)
	CreateCampus(ctx context.Context, actor *domain.Principal, input domain.CampusCreateInput) (*domain.Campus, error)
	ListPartners(ctx context.Context) ([]domain.PartnerOption, error)
	ListTickets(ctx context.Context, filter domain.TicketFilter) (*domain.TicketListing, error)
	GetTicket(ctx context.Context, id int64) (*domain.SupportTicket, error)
	UpdateTicketStatus(ctx context.Context, actor *domain.Principal, id int64, status domain.TicketStatus) (*domain.SupportTicket, error)
	AddTicketNote(ctx context.Context, actor *domain.Principal, id int64, body string) (*domain.TicketNote, error)
	ListCalendarSessions(ctx context.Context, q domain.CalendarQuery) (*domain.CalendarView, error)
	SearchUsers(ctx context.Context, search domain.UserSearch) (*domain.UserPage, error)
	SendEmail(ctx context.Context, actor *domain.Principal, req domain.SendEmailRequest) (*domain.SendEmailResult, error)
}

// Client caches reads and passes writes straight through; cache entries
// touched by a write are invalidated by the mutation event subscribers.
type Client struct {
	support Support
	cache   *cache.QueryCache
}

// NewClient wires the hooks.
func NewClient(support Support, qc *cache.QueryCache) *Client {
	return &Client{support: support, cache: qc}
}

type roleKey struct{}

// WithRole records the caller's role for cache scoping. The backend shapes
// its answers by the forwarded bearer token, so an entry is only shared
// between callers holding the same role; callers without a role share one
// unscoped entry.
func WithRole(ctx context.Context, role domain.Role) context.Context {
	return context.WithValue(ctx, roleKey{}, role)
}

func roleFromContext(ctx context.Context) domain.Role {
	role, _ := ctx.Value(roleKey{}).(domain.Role)
	return role
}

// scoped adds the caller's role to the cache key parameters.
func scoped(ctx context.Context, params url.Values) url.Values {
	role := roleFromContext(ctx)
	if role == "" {
		return params
	}
	out := make(url.Values, len(params)+1)
	for k, v := range params {
		out[k] = v
	}
	out.Set("scope", string(role))
	return out
}

// Campuses is the cached campus listing.
func (c *Client) Campuses(ctx context.Context, filter domain.CampusFilter) (*domain.CampusListing, error) {
	params := url.Values{"state": {filter.State}, "active_only": {filter.Active.QueryValue()}}
	return cache.Fetch(ctx, c.cache, cache.KindCampuses, scoped(ctx, params), func(ctx context.Context) (*domain.CampusListing, error) {
		return c.support.ListCampuses(ctx, filter)
	})
}

// Partners is the cached partner reference list.
func (c *Client) Partners(ctx context.Context) ([]domain.PartnerOption, error) {
	return cache.Fetch(ctx, c.cache, cache.KindPartners, scoped(ctx, nil), c.support.ListPartners)
}

// Tickets is the cached ticket listing.
func (c *Client) Tickets(ctx context.Context, filter domain.TicketFilter) (*domain.TicketListing, error) {
	params := url.Values{
		"status":    {string(filter.Status)},
		"priority":  {string(filter.Priority)},
		"channel":   {string(filter.Channel)},
		"search":    {filter.Search},
		"date_from": {filter.DateFrom},
		"date_to":   {filter.DateTo},
	}
	if filter.CompanyID != nil {
		params.Set("company_id", strconv.FormatInt(*filter.CompanyID, 10))
	}
	return cache.Fetch(ctx, c.cache, cache.KindTickets, scoped(ctx, params), func(ctx context.Context) (*domain.TicketListing, error) {
		return c.support.ListTickets(ctx, filter)
	})
}

// Ticket is a cached single ticket, stored under the tickets kind so any
// ticket mutation refreshes it.
func (c *Client) Ticket(ctx context.Context, id int64) (*domain.SupportTicket, error) {
	params := url.Values{"id": {strconv.FormatInt(id, 10)}}
	return cache.Fetch(ctx, c.cache, cache.KindTickets, scoped(ctx, params), func(ctx context.Context) (*domain.SupportTicket, error) {
		return c.support.GetTicket(ctx, id)
	})
}

// Calendar is the cached month view.
func (c *Client) Calendar(ctx context.Context, q domain.CalendarQuery) (*domain.CalendarView, error) {
	params := url.Values{"month": {q.Month}}
	if q.PartnerID != nil {
		params.Set("partner_id", strconv.FormatInt(*q.PartnerID, 10))
	}
	if q.CampusID != nil {
		params.Set("campus_id", strconv.FormatInt(*q.CampusID, 10))
	}
	return cache.Fetch(ctx, c.cache, cache.KindCalendar, scoped(ctx, params), func(ctx context.Context) (*domain.CalendarView, error) {
		return c.support.ListCalendarSessions(ctx, q)
	})
}

// Users is the cached directory page.
func (c *Client) Users(ctx context.Context, search domain.UserSearch) (*domain.UserPage, error) {
	search = search.WithDefaults()
	params := url.Values{
		"search":   {search.Search},
		"role":     {search.Role},
		"page":     {strconv.Itoa(search.Page)},
		"per_page": {strconv.Itoa(search.PerPage)},
	}
	return cache.Fetch(ctx, c.cache, cache.KindUsers, scoped(ctx, params), func(ctx context.Context) (*domain.UserPage, error) {
		return c.support.SearchUsers(ctx, search)
	})
}

// CreateCampus passes through.
func (c *Client) CreateCampus(ctx context.Context, actor *domain.Principal, input domain.CampusCreateInput) (*domain.Campus, error) {
	return c.support.CreateCampus(ctx, actor, input)
}

// UpdateTicketStatus passes through.
func (c *Client) UpdateTicketStatus(ctx context.Context, actor *domain.Principal, id int64, status domain.TicketStatus) (*domain.SupportTicket, error) {
	return c.support.UpdateTicketStatus(ctx, actor, id, status)
}

// AddTicketNote passes through.
func (c *Client) AddTicketNote(ctx context.Context, actor *domain.Principal, id int64, body string) (*domain.TicketNote, error) {
	return c.support.AddTicketNote(ctx, actor, id, body)
}

// SendEmail passes through.
func (c *Client) SendEmail(ctx context.Context, actor *domain.Principal, req domain.SendEmailRequest) (*domain.SendEmailResult, error) {
	return c.support.SendEmail(ctx, actor, req)
}
