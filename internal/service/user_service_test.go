package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evaluaasi/support-gateway/internal/domain"
	"github.com/evaluaasi/support-gateway/internal/events"
	apperrors "github.com/evaluaasi/support-gateway/pkg/util/errorutil"
)

func TestSearchUsersLive(t *testing.T) {
	fb := newFakeBackend(t)
	var gotQuery string
	fb.handle(http.MethodGet, "/support/users", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, map[string]any{
			"users": []map[string]any{{"id": "u-1", "username": "alopez", "role": "candidato"}},
			"total": 41,
		})
	})

	page, err := liveService(fb, nil, nil).SearchUsers(context.Background(), domain.UserSearch{Search: "ana"})
	require.NoError(t, err)

	assert.Equal(t, "page=1&per_page=20&search=ana", gotQuery)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.PerPage)
	assert.Equal(t, 41, page.Total)
	assert.Equal(t, 3, page.Pages)
	require.Len(t, page.Users, 1)
}

func TestSearchUsersPreview(t *testing.T) {
	svc := previewService()

	page, err := svc.SearchUsers(context.Background(), domain.UserSearch{Search: "ANA"})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	assert.Equal(t, "alopez", page.Users[0].Username)

	page, err = svc.SearchUsers(context.Background(), domain.UserSearch{Role: "candidato", PerPage: 2, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.Pages)
	require.Len(t, page.Users, 1)
	assert.Equal(t, "jdiaz", page.Users[0].Username)

	page, err = svc.SearchUsers(context.Background(), domain.UserSearch{Page: 9})
	require.NoError(t, err)
	assert.Empty(t, page.Users)
	assert.Equal(t, 5, page.Total)
}

func TestSendEmail(t *testing.T) {
	fb := newFakeBackend(t)
	var body map[string]any
	fb.handle(http.MethodPost, "/support/users/send-email", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusOK, map[string]any{"message": "enviado"})
	})
	dispatcher := events.NewInMemoryDispatcher()
	sink := newEventSink(dispatcher, events.EventSupportEmailSent)
	svc := liveService(fb, nil, dispatcher)

	result, err := svc.SendEmail(context.Background(), nil, domain.SendEmailRequest{Target: "u-1", Template: " Reenvio "})
	require.NoError(t, err)
	assert.True(t, result.Sent)
	assert.Equal(t, "enviado", result.Message)
	assert.Equal(t, "reenvio", body["template"])
	assert.Len(t, sink.all(), 1)

	_, err = svc.SendEmail(context.Background(), nil, domain.SendEmailRequest{Target: "u-1", Template: "bienvenida"})
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	_, err = previewService().SendEmail(context.Background(), nil, domain.SendEmailRequest{Target: "u-1", Template: domain.EmailTemplateNew})
	assert.Equal(t, "PREVIEW_READ_ONLY", apperrors.ToDomainError(err).Code)
}
