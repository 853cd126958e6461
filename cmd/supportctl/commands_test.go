package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evaluaasi/support-gateway/internal/auth"
	"github.com/evaluaasi/support-gateway/internal/domain"
)

// run executes supportctl with args against an unreachable backend, so only
// preview mode can answer.
func run(t *testing.T, args ...string) ([]byte, error) {
	t.Helper()
	t.Setenv("APP_PREVIEW", "false")
	t.Setenv("BACKEND_BASE_URL", "http://127.0.0.1:1/api")
	t.Setenv("BACKEND_TIMEOUT_SECONDS", "1")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.Bytes(), err
}

func TestCampusesCommandInPreview(t *testing.T) {
	raw, err := run(t, "--preview", "campuses", "--active", "true")
	require.NoError(t, err)

	var listing domain.CampusListing
	require.NoError(t, json.Unmarshal(raw, &listing))
	assert.Equal(t, domain.SourcePreview, listing.Source)
	assert.Equal(t, len(listing.Campuses), listing.Total)
	require.NotEmpty(t, listing.Campuses)
	for _, c := range listing.Campuses {
		assert.True(t, c.IsActive)
	}
}

func TestCampusesCommandRejectsBadActiveFlag(t *testing.T) {
	raw, err := run(t, "--preview", "campuses", "--active", "maybe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--active")
	assert.Empty(t, raw)
}

func TestTicketsCommandAppliesFilters(t *testing.T) {
	raw, err := run(t, "--preview", "tickets", "--status", "open", "--priority", "high")
	require.NoError(t, err)

	var listing domain.TicketListing
	require.NoError(t, json.Unmarshal(raw, &listing))
	assert.Equal(t, 2, listing.Total)
	for _, tk := range listing.Tickets {
		assert.Equal(t, domain.TicketStatusOpen, tk.Status)
		assert.Equal(t, domain.TicketPriorityHigh, tk.Priority)
	}

	_, err = run(t, "--preview", "tickets", "--channel", "fax")
	require.Error(t, err)
}

func TestUsersCommandDefaultsPaging(t *testing.T) {
	raw, err := run(t, "--preview", "users")
	require.NoError(t, err)

	var page domain.UserPage
	require.NoError(t, json.Unmarshal(raw, &page))
	assert.Equal(t, domain.DefaultUserPage, page.Page)
	assert.Equal(t, domain.DefaultUserPerPage, page.PerPage)
}

func TestLiveModeWithoutBackendFails(t *testing.T) {
	_, err := run(t, "partners")
	require.Error(t, err)
}

func TestTokenCommandSignsVerifiableToken(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "cli-secret")
	raw, err := run(t, "token", "--user-id", "9", "--role", "ADMIN")
	require.NoError(t, err)

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	claims, err := auth.NewTokenManager("cli-secret", 60).ParseToken(out.Token)
	require.NoError(t, err)
	assert.Equal(t, "9", claims.Subject)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}
