package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"storefront-client/internal/client"
	"storefront-client/internal/config"
	"storefront-client/internal/model"
	"storefront-client/internal/notify"
	"storefront-client/internal/repository"
	"storefront-client/internal/server"
	"storefront-client/internal/state"
	"storefront-client/internal/view"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type harness struct {
	store *server.Store
	srv   *server.Server
	url   string
	db    *gorm.DB
	repo  repository.SessionRepository

	// intercept, when set, answers requests in place of the fake server.
	// next is the fake server itself.
	intercept func(w http.ResponseWriter, r *http.Request, next http.Handler)

	state   *state.AppState
	notes   *notify.Recorder
	view    *view.Recorder
	api     client.APIClient
	auth    AuthService
	catalog CatalogService
	orders  OrderService
}

func sampleContents() []model.ContentItem {
	return []model.ContentItem{
		{ID: 1, Title: "Dune", Type: model.ContentNovel, Price: decimal.NewFromInt(10)},
		{ID: 2, Title: "Blue", Type: model.ContentMusic, Price: decimal.NewFromInt(5)},
	}
}

func newHarness(t *testing.T, contents ...model.ContentItem) *harness {
	t.Helper()
	store := server.NewStore(contents...)
	srv := server.NewServer(store)
	h := &harness{store: store, srv: srv}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.intercept != nil {
			h.intercept(w, r, srv)
			return
		}
		srv.ServeHTTP(w, r)
	}))
	t.Cleanup(ts.Close)

	db, err := client.InitSessionDB(&config.Session{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "session.db")})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	h.url = ts.URL + "/api"
	h.db = db
	h.repo = repository.NewSessionRepository(db)
	h.reset()
	return h
}

// reset builds a fresh client context over the same server and store, as a
// client restart would.
func (h *harness) reset() {
	logger, _ := test.NewNullLogger()
	h.state = state.New()
	h.notes = &notify.Recorder{}
	h.view = &view.Recorder{}
	h.api = client.NewAPIClient(&config.API{BaseURL: h.url, Timeout: 5 * time.Second}, h.state, h.notes, logger)
	h.catalog = NewCatalogService(h.api, h.state, h.notes, h.view, logger)
	h.auth = NewAuthService(h.api, h.state, h.repo, h.catalog, h.notes, h.view, logger)
	h.orders = NewOrderService(h.api, h.state, h.notes, h.view, logger)
}

func (h *harness) login(t *testing.T, username, password string) {
	t.Helper()
	_ = h.store.Register(username, password, "")
	require.NoError(t, h.auth.Login(context.Background(), username, password))
}

type scriptedConfirmer struct {
	answers []bool
	prompts []string
}

func (c *scriptedConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	c.prompts = append(c.prompts, prompt)
	if len(c.answers) == 0 {
		return false, nil
	}
	answer := c.answers[0]
	c.answers = c.answers[1:]
	return answer, nil
}

// writeJSON answers a request the way the storefront does.
func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	assert.NoError(t, json.NewEncoder(w).Encode(body))
}
