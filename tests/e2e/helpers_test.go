//go:build e2e

package e2e_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/insight-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/insight-backend/internal/app"
	authpkg "github.com/heartmarshall/insight-backend/internal/auth"
	"github.com/heartmarshall/insight-backend/internal/config"
)

const (
	jwtSecret = "test-secret-at-least-32-chars-long!!"
	jwtIssuer = "test-issuer"
)

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	jwt    *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{}
	cfg.Auth = config.AuthConfig{
		JWTSecret:        jwtSecret,
		JWTIssuer:        jwtIssuer,
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  24 * time.Hour,
		ResetTokenTTL:    time.Hour,
		PasswordHashCost: bcrypt.MinCost,
		ResetURLBase:     "http://localhost:3000",
	}
	cfg.Insight = config.InsightConfig{DefaultLimit: 10, MaxLimit: 100, MaxTrendDays: 3650}
	cfg.Export = config.ExportConfig{
		Tables:             []string{"authors", "engagements", "post_metadata", "posts", "users"},
		ReportPath:         t.TempDir() + "/report.pptx",
		WorkspaceDir:       t.TempDir(),
		WorkspaceRetention: time.Hour,
		ArchiveName:        "data.zip",
	}
	cfg.CORS = config.CORSConfig{
		AllowedOrigins: "*",
		AllowedMethods: "GET,POST,OPTIONS",
		AllowedHeaders: "Authorization,Content-Type",
		MaxAge:         86400,
	}
	cfg.RateLimit = config.RateLimitConfig{AuthPerMinute: 1000, CleanupInterval: time.Minute}
	return cfg
}

// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	return setupTestServerWith(t, testConfig(t))
}

func setupTestServerWith(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	server := app.NewServer(cfg, logger, pool, prometheus.NewRegistry())
	t.Cleanup(server.Close)

	srv := httptest.NewServer(server.Handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		jwt:    authpkg.NewJWTManager(jwtSecret, jwtIssuer, cfg.Auth.AccessTokenTTL, cfg.Auth.ResetTokenTTL),
	}
}

// do sends a request with an optional JSON body and bearer token.
func (ts *testServer) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, ts.URL+path, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

// getJSON performs a GET and decodes the body into a value of type T.
func getJSON[T any](t *testing.T, ts *testServer, path, token string) (int, T) {
	t.Helper()

	resp := ts.do(t, http.MethodGet, path, token, nil)
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v), "decode %s", path)
	return resp.StatusCode, v
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	return m
}

type credentials struct {
	Email    string
	Username string
	Password string
}

func newCredentials() credentials {
	suffix := uuid.New().String()[:8]
	return credentials{
		Email:    "e2e-" + suffix + "@example.com",
		Username: "e2e-" + suffix,
		Password: "securepassword123",
	}
}

// register creates a user through the API and returns its token pair.
func register(t *testing.T, ts *testServer, c credentials) (access, refresh string) {
	t.Helper()

	resp := ts.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    c.Email,
		"username": c.Username,
		"password": c.Password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decode(t, resp)
	return body["access_token"].(string), body["refresh_token"].(string)
}
