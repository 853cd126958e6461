package domain

import "time"

// CalendarEvent is one scheduled exam session.
type CalendarEvent struct {
	ID          int64      `json:"id"`
	ResultID    *string    `json:"result_id"`
	Title       string     `json:"title"`
	SessionType string     `json:"session_type"`
	Start       *time.Time `json:"start"`
	End         *time.Time `json:"end"`
	// Status 0 is active; any other value is inactive.
	Status      int      `json:"status"`
	Score       *float64 `json:"score"`
	ExamID      *int64   `json:"exam_id"`
	UserID      string   `json:"user_id"`
	UserName    string   `json:"user_name"`
	CampusID    *int64   `json:"campus_id,omitempty"`
	CampusName  *string  `json:"campus_name,omitempty"`
	PartnerID   *int64   `json:"partner_id,omitempty"`
	PartnerName *string  `json:"partner_name,omitempty"`
}

// Active reports whether the session is active.
func (e CalendarEvent) Active() bool {
	return e.Status == 0
}

// CalendarQuery selects one month of sessions.
type CalendarQuery struct {
	// Month is YYYY-MM.
	Month     string
	PartnerID *int64
	CampusID  *int64
}

// ExamActivity is the exam with the most active sessions.
type ExamActivity struct {
	ExamID         int64 `json:"exam_id"`
	ActiveSessions int   `json:"active_sessions"`
}

// CalendarSummary holds the aggregates the calendar dashboard shows.
type CalendarSummary struct {
	ByDay               map[int][]CalendarEvent `json:"by_day"`
	ActiveSessions      int                     `json:"active_sessions"`
	TotalSessions       int                     `json:"total_sessions"`
	TopExam             *ExamActivity           `json:"top_exam"`
	AvailabilityPercent int                     `json:"availability_percent"`
}

// CalendarView is a month of events together with its summary.
type CalendarView struct {
	Events  []CalendarEvent `json:"events"`
	Summary CalendarSummary `json:"summary"`
}
