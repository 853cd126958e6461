package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Backend records are decoded leniently: a field of an unexpected shape
// becomes its null default instead of failing the whole payload.

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp accepts RFC 3339, zone-less ISO 8601 (read as UTC) and
// date-only values. Anything else yields nil.
func ParseTimestamp(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// scalarText returns a JSON string's content or a JSON number's literal text.
func scalarText(data []byte) (string, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "", false
	}
	switch data[0] {
	case '"':
		var s string
		if json.Unmarshal(data, &s) != nil {
			return "", false
		}
		return s, true
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if json.Unmarshal(data, &n) != nil {
			return "", false
		}
		return n.String(), true
	}
	return "", false
}

type looseTime struct{ v *time.Time }

func (l *looseTime) UnmarshalJSON(data []byte) error {
	l.v = nil
	if s, ok := scalarText(data); ok {
		l.v = ParseTimestamp(s)
	}
	return nil
}

type looseString struct{ v *string }

func (l *looseString) UnmarshalJSON(data []byte) error {
	l.v = nil
	if s, ok := scalarText(data); ok {
		l.v = &s
	}
	return nil
}

func (l looseString) value() string {
	if l.v == nil {
		return ""
	}
	return *l.v
}

type looseInt struct{ v *int64 }

func (l *looseInt) UnmarshalJSON(data []byte) error {
	l.v = nil
	s, ok := scalarText(data)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		l.v = &n
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		n := int64(f)
		l.v = &n
	}
	return nil
}

func (l looseInt) value() int64 {
	if l.v == nil {
		return 0
	}
	return *l.v
}

type looseFloat struct{ v *float64 }

func (l *looseFloat) UnmarshalJSON(data []byte) error {
	l.v = nil
	if s, ok := scalarText(data); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			l.v = &f
		}
	}
	return nil
}

type looseBool struct{ v bool }

func (l *looseBool) UnmarshalJSON(data []byte) error {
	switch strings.ToLower(strings.Trim(string(bytes.TrimSpace(data)), `"`)) {
	case "true", "1", "yes":
		l.v = true
	default:
		l.v = false
	}
	return nil
}

// UnmarshalJSON decodes a backend calendar event leniently.
func (e *CalendarEvent) UnmarshalJSON(data []byte) error {
	type Alias CalendarEvent
	aux := struct {
		*Alias
		ID          looseInt    `json:"id"`
		ResultID    looseString `json:"result_id"`
		Title       looseString `json:"title"`
		SessionType looseString `json:"session_type"`
		Start       looseTime   `json:"start"`
		End         looseTime   `json:"end"`
		Status      looseInt    `json:"status"`
		Score       looseFloat  `json:"score"`
		ExamID      looseInt    `json:"exam_id"`
		UserID      looseString `json:"user_id"`
		UserName    looseString `json:"user_name"`
		CampusID    looseInt    `json:"campus_id"`
		CampusName  looseString `json:"campus_name"`
		PartnerID   looseInt    `json:"partner_id"`
		PartnerName looseString `json:"partner_name"`
	}{Alias: (*Alias)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	e.ID = aux.ID.value()
	e.ResultID = aux.ResultID.v
	e.Title = aux.Title.value()
	e.SessionType = aux.SessionType.value()
	e.Start = aux.Start.v
	e.End = aux.End.v
	e.Status = int(aux.Status.value())
	e.Score = aux.Score.v
	e.ExamID = aux.ExamID.v
	e.UserID = aux.UserID.value()
	e.UserName = aux.UserName.value()
	e.CampusID = aux.CampusID.v
	e.CampusName = aux.CampusName.v
	e.PartnerID = aux.PartnerID.v
	e.PartnerName = aux.PartnerName.v
	return nil
}

// UnmarshalJSON decodes a backend ticket leniently.
func (t *SupportTicket) UnmarshalJSON(data []byte) error {
	type Alias SupportTicket
	aux := struct {
		*Alias
		ID          looseInt    `json:"id"`
		Folio       looseString `json:"folio"`
		CompanyID   looseInt    `json:"company_id"`
		CompanyName looseString `json:"company_name"`
		CreatedAt   looseTime   `json:"created_at"`
		UpdatedAt   looseTime   `json:"updated_at"`
	}{Alias: (*Alias)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.ID = aux.ID.value()
	t.Folio = aux.Folio.value()
	t.CompanyID = aux.CompanyID.v
	t.CompanyName = aux.CompanyName.value()
	t.CreatedAt = aux.CreatedAt.v
	t.UpdatedAt = aux.UpdatedAt.v
	return nil
}

// UnmarshalJSON decodes a backend ticket note leniently.
func (n *TicketNote) UnmarshalJSON(data []byte) error {
	type Alias TicketNote
	aux := struct {
		*Alias
		ID        looseInt  `json:"id"`
		TicketID  looseInt  `json:"ticket_id"`
		CreatedAt looseTime `json:"created_at"`
	}{Alias: (*Alias)(n)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	n.ID = aux.ID.value()
	n.TicketID = aux.TicketID.value()
	n.CreatedAt = aux.CreatedAt.v
	return nil
}

// UnmarshalJSON decodes a backend directory user leniently.
func (u *DirectoryUser) UnmarshalJSON(data []byte) error {
	type Alias DirectoryUser
	aux := struct {
		*Alias
		ID        looseString `json:"id"`
		IsActive  looseBool   `json:"is_active"`
		CreatedAt looseTime   `json:"created_at"`
		LastLogin looseTime   `json:"last_login"`
	}{Alias: (*Alias)(u)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	u.ID = aux.ID.value()
	u.IsActive = aux.IsActive.v
	u.CreatedAt = aux.CreatedAt.v
	u.LastLogin = aux.LastLogin.v
	return nil
}
