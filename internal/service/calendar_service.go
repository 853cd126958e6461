package service

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/evaluaasi/support-gateway/internal/domain"
	apperrors "github.com/evaluaasi/support-gateway/pkg/util/errorutil"
)

const monthLayout = "2006-01"

type calendarResponse struct {
	Events   []domain.CalendarEvent `json:"events"`
	Sessions []domain.CalendarEvent `json:"sessions"`
}

// ListCalendarSessions returns one month of exam sessions with their summary.
func (s *SupportService) ListCalendarSessions(ctx context.Context, q domain.CalendarQuery) (*domain.CalendarView, error) {
	month, err := time.ParseInLocation(monthLayout, strings.TrimSpace(q.Month), s.opts.Location)
	if err != nil {
		return nil, apperrors.NewValidationError("month must be YYYY-MM", map[string]any{"month": q.Month})
	}

	var evts []domain.CalendarEvent
	if s.opts.Preview {
		evts = s.previewEvents(month, q)
		s.recordSource("calendar", sourcePreview)
	} else {
		query := url.Values{}
		query.Set("month", month.Format(monthLayout))
		if q.PartnerID != nil {
			query.Set("partner_id", strconv.FormatInt(*q.PartnerID, 10))
		}
		if q.CampusID != nil {
			query.Set("campus_id", strconv.FormatInt(*q.CampusID, 10))
		}
		var resp calendarResponse
		if err := s.api.Get(ctx, "/support/calendar/sessions", query, &resp); err != nil {
			return nil, err
		}
		evts = resp.Events
		if len(evts) == 0 {
			evts = resp.Sessions
		}
		s.recordSource("calendar", sourceSupport)
	}
	if evts == nil {
		evts = []domain.CalendarEvent{}
	}

	return &domain.CalendarView{
		Events:  evts,
		Summary: SummarizeCalendar(evts, s.opts.Location),
	}, nil
}

func (s *SupportService) previewEvents(month time.Time, q domain.CalendarQuery) []domain.CalendarEvent {
	out := make([]domain.CalendarEvent, 0)
	for _, e := range s.fixtures.Events {
		if e.Start == nil {
			continue
		}
		start := e.Start.In(s.opts.Location)
		if start.Year() != month.Year() || start.Month() != month.Month() {
			continue
		}
		if q.PartnerID != nil && (e.PartnerID == nil || *e.PartnerID != *q.PartnerID) {
			continue
		}
		if q.CampusID != nil && (e.CampusID == nil || *e.CampusID != *q.CampusID) {
			continue
		}
		out = append(out, e)
	}
	return out
}
