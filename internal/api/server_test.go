package api

import (
	"testing"
	"time"

	"shelfcloud/internal/config"
	"shelfcloud/internal/secrets"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	box, err := secrets.NewBox("6368616e676520746869732070617373776f726420746f206120736563726574")
	require.NoError(t, err)

	cfg := &config.Config{
		Environment:     "development",
		JWTSecret:       "test-secret",
		SessionTTL:      time.Hour,
		RateLimitRPS:    100,
		RateLimitBurst:  200,
		ValidateTimeout: 10 * time.Second,
	}
	return NewServer(db, cfg, box)
}

// The registered surface is part of the public contract; renaming a path
// breaks every client coded against it.
func TestRouteSurface(t *testing.T) {
	srv := testServer(t)

	want := []struct {
		method string
		path   string
	}{
		{"POST", "/api/v1/organizations"},
		{"PATCH", "/api/v1/organizations/:id"},
		{"DELETE", "/api/v1/organizations/:id"},
		{"POST", "/api/v1/organizations/:id/teams"},
		{"PATCH", "/api/v1/organizations/teams/:id"},
		{"DELETE", "/api/v1/organizations/teams/:id"},
		{"POST", "/api/v1/organizations/invite"},
		{"POST", "/api/v1/organizations/invitations/:id/accept"},
		{"POST", "/api/v1/organizations/invitations/:id/decline"},
		{"DELETE", "/api/v1/organizations/invitations/:id"},
		{"POST", "/api/v1/buckets"},
		{"GET", "/api/v1/buckets"},
		{"PATCH", "/api/v1/buckets/:id"},
		{"DELETE", "/api/v1/buckets/:id"},
		{"POST", "/api/v1/buckets/:id/validate"},
		{"POST", "/api/v1/buckets/:id/rotate-credentials"},
		{"POST", "/api/v1/buckets/:id/access"},
		{"DELETE", "/api/v1/buckets/:id/access/:teamId"},
		{"GET", "/api/v1/buckets/:id/available-teams"},
		{"POST", "/api/v1/projects"},
		{"GET", "/api/v1/projects/:id"},
		{"PUT", "/api/v1/projects/:id"},
		{"DELETE", "/api/v1/projects/:id"},
		{"POST", "/api/v1/projects/:id/transfer"},
		{"POST", "/api/v1/projects/:id/api-keys"},
		{"DELETE", "/api/v1/projects/:id/api-keys/:keyId"},
		{"POST", "/api/v1/projects/:id/api-keys/:keyId/regenerate"},
		{"POST", "/api/v1/projects/:id/tenants"},
		{"PUT", "/api/v1/projects/:id/tenants/:tenantId"},
		{"DELETE", "/api/v1/projects/:id/tenants/:tenantId"},
		{"POST", "/api/v1/auth/login"},
		{"POST", "/api/v1/auth/logout"},
		{"GET", "/api/v1/auth/session"},
	}

	registered := make(map[string]bool)
	for _, r := range srv.router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}
	for _, w := range want {
		require.True(t, registered[w.method+" "+w.path], "missing route %s %s", w.method, w.path)
	}
}
