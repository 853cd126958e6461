package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	cases := map[string]*time.Time{
		"2024-01-06T10:00:00Z":      ptrTime(time.Date(2024, 1, 6, 10, 0, 0, 0, time.UTC)),
		"2024-01-06T10:00:00-06:00": ptrTime(time.Date(2024, 1, 6, 16, 0, 0, 0, time.UTC)),
		"2024-01-06T10:00:00":       ptrTime(time.Date(2024, 1, 6, 10, 0, 0, 0, time.UTC)),
		"2024-01-06T10:00:00.250":   ptrTime(time.Date(2024, 1, 6, 10, 0, 0, 250_000_000, time.UTC)),
		"2024-01-06 10:00:00":       ptrTime(time.Date(2024, 1, 6, 10, 0, 0, 0, time.UTC)),
		"2024-01-06":                ptrTime(time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)),
		"":                          nil,
		"06/01/2024":                nil,
		"pronto":                    nil,
	}
	for raw, want := range cases {
		got := ParseTimestamp(raw)
		if want == nil {
			assert.Nil(t, got, raw)
			continue
		}
		require.NotNil(t, got, raw)
		assert.True(t, want.Equal(*got), "%s: got %v", raw, got)
	}
}

func TestSupportTicketDecodesLeniently(t *testing.T) {
	var tickets []SupportTicket
	err := json.Unmarshal([]byte(`[
		{"id": 1, "folio": "SUP-1", "status": "open", "company_id": 3, "created_at": "2024-01-10T08:00:00Z"},
		{"id": "2", "folio": 2002, "status": "pending", "company_id": "x", "created_at": "2024-01-11", "updated_at": false}
	]`), &tickets)
	require.NoError(t, err)
	require.Len(t, tickets, 2)

	assert.Equal(t, int64(1), tickets[0].ID)
	assert.Equal(t, int64(3), *tickets[0].CompanyID)

	second := tickets[1]
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, "2002", second.Folio)
	assert.Equal(t, TicketStatusPending, second.Status)
	assert.Nil(t, second.CompanyID)
	require.NotNil(t, second.CreatedAt)
	assert.Equal(t, 11, second.CreatedAt.Day())
	assert.Nil(t, second.UpdatedAt)
}

func TestDirectoryUserDecodesLeniently(t *testing.T) {
	var users []DirectoryUser
	err := json.Unmarshal([]byte(`[
		{"id": "a1b2", "username": "ana", "is_active": true, "last_login": null},
		{"id": 42, "username": "beto", "is_active": 1, "created_at": "ayer", "last_login": "2024-02-01T09:30:00"}
	]`), &users)
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, "a1b2", users[0].ID)
	assert.True(t, users[0].IsActive)
	assert.Nil(t, users[0].LastLogin)

	assert.Equal(t, "42", users[1].ID)
	assert.Equal(t, "beto", users[1].Username)
	assert.True(t, users[1].IsActive)
	assert.Nil(t, users[1].CreatedAt)
	require.NotNil(t, users[1].LastLogin)
	assert.Equal(t, 9, users[1].LastLogin.Hour())
}

func TestLenientRecordsSurviveRoundTrip(t *testing.T) {
	start := time.Date(2024, 3, 4, 15, 0, 0, 0, time.UTC)
	exam := int64(8)
	in := CalendarEvent{ID: 5, Title: "Sesion", Start: &start, ExamID: &exam, UserID: "u-5"}

	raw, err := json.Marshal(in)
	require.NoError(t, err)
	var out CalendarEvent
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, in, out)
}

func ptrTime(t time.Time) *time.Time { return &t }
