package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evaluaasi/support-gateway/internal/domain"
)

func TestListPartners(t *testing.T) {
	t.Run("support endpoint", func(t *testing.T) {
		fb := newFakeBackend(t)
		fb.reply(http.MethodGet, "/support/partners", http.StatusOK, map[string]any{"partners": []map[string]any{
			{"id": 2, "name": "Beta", "rfc": "XAXX010101000"},
		}})
		rec := &fakeRecorder{}

		partners, err := liveService(fb, rec, nil).ListPartners(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []domain.PartnerOption{{ID: 2, Name: "Beta"}}, partners)
		assert.Equal(t, recordedSource{"partners", "support"}, rec.last())
		assert.Equal(t, 0, fb.count(http.MethodGet, "/partners"))
	})

	t.Run("fallback projects id and name", func(t *testing.T) {
		fb := newFakeBackend(t)
		fb.reply(http.MethodGet, "/partners", http.StatusOK, map[string]any{"partners": []map[string]any{
			{"id": 1, "name": "Alfa", "is_active": false},
			{"name": "Sin id"},
			{"id": "3", "name": "Gamma"},
		}})
		rec := &fakeRecorder{}

		partners, err := liveService(fb, rec, nil).ListPartners(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []domain.PartnerOption{{ID: 1, Name: "Alfa"}, {ID: 3, Name: "Gamma"}}, partners)
		assert.Equal(t, recordedSource{"partners", "fallback"}, rec.last())
	})

	t.Run("fallback failure is reported", func(t *testing.T) {
		fb := newFakeBackend(t)
		fb.reply(http.MethodGet, "/partners", http.StatusServiceUnavailable, nil)

		_, err := liveService(fb, nil, nil).ListPartners(context.Background())
		assert.Error(t, err)
	})

	t.Run("preview", func(t *testing.T) {
		svc := previewService()
		partners, err := svc.ListPartners(context.Background())
		require.NoError(t, err)
		require.Len(t, partners, 3)

		partners[0].Name = "mutated"
		again, err := svc.ListPartners(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Grupo Educativo Alfa", again[0].Name)
	})
}
