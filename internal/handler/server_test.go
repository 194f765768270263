package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/safari-hire/dashboard/internal/domain"
	"github.com/safari-hire/dashboard/internal/handler"
	"github.com/safari-hire/dashboard/internal/pkg/clock"
	"github.com/safari-hire/dashboard/internal/repo"
	"github.com/safari-hire/dashboard/internal/service"
)

// testNow sits between the sample bookings: booking 1 has been returned,
// bookings 2 and 3 are still out or upcoming.
var testNow = time.Date(2025, 1, 19, 12, 0, 0, 0, time.UTC)

// ---- mock Exporter ---------------------------------------------------------

type mockExporter struct {
	export func() []domain.ExportRow
}

func (m *mockExporter) Export() []domain.ExportRow { return m.export() }

// compile-time check: mockExporter must satisfy handler.Exporter.
var _ handler.Exporter = (*mockExporter)(nil)

// ---- harness ---------------------------------------------------------------

// testEnv is a fully wired Server over an in-memory store seeded with the
// sample data.
type testEnv struct {
	handler http.Handler
	kv      repo.KV
	store   *service.Store
	gate    *service.AuthGate
	clock   *clock.MockClock
}

type envOption func(*envConfig)

type envConfig struct {
	signedIn   bool
	exporter   handler.Exporter
	loginDelay time.Duration
	kv         repo.KV
}

// signedOut starts the environment without a session.
func signedOut() envOption { return func(c *envConfig) { c.signedIn = false } }

func withExporter(e handler.Exporter) envOption { return func(c *envConfig) { c.exporter = e } }

func withLoginDelay(d time.Duration) envOption { return func(c *envConfig) { c.loginDelay = d } }

// withKV hydrates the store and the gate from kv instead of an empty backend.
func withKV(kv repo.KV) envOption { return func(c *envConfig) { c.kv = kv } }

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	cfg := envConfig{signedIn: true, kv: repo.NewMemoryKV()}
	for _, o := range opts {
		o(&cfg)
	}

	ctx := context.Background()
	log := slog.New(slog.DiscardHandler)
	adapter := repo.NewAdapter(cfg.kv, log)
	clk := clock.NewMockClock(testNow)

	n := 0
	ids := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	store := service.NewStore(ctx, adapter, clk, ids, log)
	gate := service.NewAuthGate(ctx, adapter, service.DefaultRoster(), log)
	if cfg.signedIn {
		_, err := gate.Login(ctx, "admin", "admin123")
		require.NoError(t, err)
	}

	exporter := cfg.exporter
	if exporter == nil {
		exporter = service.NewExportService(store)
	}

	srv := handler.NewServer(store, gate, service.NewDashboard(store), exporter, handler.Options{
		Clock:      clk,
		LoginDelay: cfg.loginDelay,
	})
	return &testEnv{handler: srv.Routes(), kv: cfg.kv, store: store, gate: gate, clock: clk}
}

// do sends a request through the router. body is JSON-encoded unless it is
// already a string.
func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, r)
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// apiError mirrors the JSON error body.
type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), "body: %s", rec.Body.String())
	return v
}
