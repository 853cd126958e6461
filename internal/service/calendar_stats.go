package service

import (
	"math"
	"time"

	"github.com/evaluaasi/support-gateway/internal/domain"
)

// IndexEventsByDay groups events by the day of month of their start, in loc.
// Events without a start are left out.
func IndexEventsByDay(events []domain.CalendarEvent, loc *time.Location) map[int][]domain.CalendarEvent {
	if loc == nil {
		loc = time.UTC
	}
	byDay := make(map[int][]domain.CalendarEvent)
	for _, e := range events {
		if e.Start == nil {
			continue
		}
		day := e.Start.In(loc).Day()
		byDay[day] = append(byDay[day], e)
	}
	return byDay
}

// TopExamByActiveSessions returns the exam with most active sessions, the
// lowest exam id winning ties, or nil when no active session names an exam.
func TopExamByActiveSessions(events []domain.CalendarEvent) *domain.ExamActivity {
	counts := make(map[int64]int)
	for _, e := range events {
		if e.Active() && e.ExamID != nil {
			counts[*e.ExamID]++
		}
	}
	var top *domain.ExamActivity
	for examID, n := range counts {
		if top == nil || n > top.ActiveSessions || (n == top.ActiveSessions && examID < top.ExamID) {
			top = &domain.ExamActivity{ExamID: examID, ActiveSessions: n}
		}
	}
	return top
}

// AvailabilityPercent is round(100 * active / total), or 0 when total is 0.
func AvailabilityPercent(active, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(active) / float64(total)))
}

// SummarizeCalendar computes every calendar aggregate from scratch.
func SummarizeCalendar(events []domain.CalendarEvent, loc *time.Location) domain.CalendarSummary {
	active := 0
	for _, e := range events {
		if e.Active() {
			active++
		}
	}
	return domain.CalendarSummary{
		ByDay:               IndexEventsByDay(events, loc),
		ActiveSessions:      active,
		TotalSessions:       len(events),
		TopExam:             TopExamByActiveSessions(events),
		AvailabilityPercent: AvailabilityPercent(active, len(events)),
	}
}
