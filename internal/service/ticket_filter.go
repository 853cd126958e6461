package service

import (
	"strings"
	"time"

	"github.com/evaluaasi/support-gateway/internal/domain"
)

const dateLayout = "2006-01-02"

// FilterTickets applies every set dimension of f with AND semantics. Creation
// dates are compared as calendar dates in loc; an unparsable bound is ignored.
func FilterTickets(tickets []domain.SupportTicket, f domain.TicketFilter, loc *time.Location) []domain.SupportTicket {
	if loc == nil {
		loc = time.UTC
	}
	from, hasFrom := parseDay(f.DateFrom)
	to, hasTo := parseDay(f.DateTo)
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]domain.SupportTicket, 0, len(tickets))
	for _, t := range tickets {
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Priority != "" && t.Priority != f.Priority {
			continue
		}
		if f.Channel != "" && t.Channel != f.Channel {
			continue
		}
		if f.CompanyID != nil && (t.CompanyID == nil || *t.CompanyID != *f.CompanyID) {
			continue
		}
		if search != "" && !ticketMatches(t, search) {
			continue
		}
		if hasFrom || hasTo {
			if t.CreatedAt == nil {
				continue
			}
			day := civilDay(*t.CreatedAt, loc)
			if hasFrom && day.Before(from) {
				continue
			}
			if hasTo && day.After(to) {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

func ticketMatches(t domain.SupportTicket, needle string) bool {
	for _, hay := range []string{t.Subject, t.Message, t.RequesterName, t.RequesterEmail, t.Folio, t.CompanyName} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}

func parseDay(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// civilDay drops the clock, keeping the calendar date as seen in loc.
func civilDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
