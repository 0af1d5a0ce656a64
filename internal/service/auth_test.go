package service

import (
	"context"
	"net/http"
	"storefront-client/internal/apperr"
	"storefront-client/internal/model"
	"storefront-client/internal/notify"
	"storefront-client/internal/state"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidationSkipsNetwork(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	tests := []struct {
		name              string
		user, pass, again string
	}{
		{"empty username", "  ", "p", "p"},
		{"empty password", "a", "", ""},
		{"mismatch", "a", "p", "q"},
	}

	for _, tt := range tests {
		err := h.auth.Register(ctx, tt.user, tt.pass, tt.again)
		assert.ErrorIs(t, err, apperr.ErrValidation, tt.name)
		assert.Equal(t, notify.Warning, h.notes.Last().Severity, tt.name)
	}
	assert.Zero(t, h.srv.Requests())
}

func TestRegisterDoesNotLogIn(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.auth.Register(context.Background(), "a", "p", "p"))

	assert.False(t, h.state.Session().Authenticated())
	assert.Equal(t, 1, h.view.LoginPrompts)
	assert.Equal(t, notify.Success, h.notes.Last().Severity)
}

func TestRegisterDuplicateIsRejection(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.auth.Register(ctx, "a", "p", "p"))

	err := h.auth.Register(ctx, "a", "p", "p")

	assert.ErrorIs(t, err, apperr.ErrBusinessRejection)
	assert.Equal(t, notify.Danger, h.notes.Last().Severity)
	assert.Equal(t, "username already exists", h.notes.Last().Message)
}

func TestLoginValidationSkipsNetwork(t *testing.T) {
	h := newHarness(t)

	err := h.auth.Login(context.Background(), "", "p")

	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Zero(t, h.srv.Requests())
}

func TestLoginWrongPassword(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.store.Register("a", "p", ""))

	err := h.auth.Login(context.Background(), "a", "wrong")

	// the storefront answers bad credentials with 401, which ends any session
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	assert.False(t, h.state.Session().Authenticated())
	token, user, err := h.repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Empty(t, user)

	notes := h.notes.All()
	require.Len(t, notes, 2)
	assert.Equal(t, "Logged out", notes[0].Message)
	unauth := apperr.NoticeFor(apperr.KindUnauthenticated)
	assert.Equal(t, unauth.Message, notes[1].Message)
	assert.Equal(t, unauth.Severity, notes[1].Severity)
	assert.False(t, h.view.Session.Authenticated())
}

func TestLoginWrongPasswordEndsExistingSession(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.login(t, "a", "p")
	require.NoError(t, h.store.Register("b", "p", ""))

	err := h.auth.Login(ctx, "b", "wrong")

	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	assert.False(t, h.state.Session().Authenticated())
	token, _, err := h.repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestLoginRejectedInsideEnvelope(t *testing.T) {
	h := newHarness(t)
	h.intercept = func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		writeJSON(t, w, http.StatusOK, map[string]any{"success": false, "message": "account locked"})
	}

	err := h.auth.Login(context.Background(), "a", "p")

	assert.ErrorIs(t, err, apperr.ErrBusinessRejection)
	assert.False(t, h.state.Session().Authenticated())
	assert.Equal(t, "account locked", h.notes.Last().Message)
}

func TestLoginThenRestoreOnFreshContext(t *testing.T) {
	h := newHarness(t)
	h.login(t, "a", "p")
	before := h.state.Session()
	require.True(t, before.Authenticated())
	assert.Equal(t, "a", before.User.Username)
	assert.Equal(t, "a", h.view.Session.User.Username)

	h.reset()
	require.False(t, h.state.Session().Authenticated())
	requests := h.srv.Requests()

	require.NoError(t, h.auth.RestoreSession(context.Background()))

	after := h.state.Session()
	require.True(t, after.Authenticated())
	assert.Equal(t, before.Token, after.Token)
	assert.Equal(t, *before.User, *after.User)
	assert.Equal(t, requests, h.srv.Requests())
}

func TestLogoutIsIdempotent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.login(t, "a", "p")

	h.auth.Logout(ctx)
	once := h.state.Session()
	h.auth.Logout(ctx)

	assert.Equal(t, once, h.state.Session())
	assert.Equal(t, model.Session{}, h.state.Session())
	token, user, err := h.repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Empty(t, user)
}

func TestLogoutWhenAnonymous(t *testing.T) {
	h := newHarness(t)

	h.auth.Logout(context.Background())

	assert.False(t, h.state.Session().Authenticated())
	assert.Equal(t, notify.Info, h.notes.Last().Severity)
}

func TestLogoutFromMemberPanelReloadsCategory(t *testing.T) {
	h := newHarness(t, sampleContents()...)
	ctx := context.Background()
	h.login(t, "a", "p")
	require.NoError(t, h.catalog.LoadContents(ctx, model.Category("music")))
	h.state.SetPanel(state.PanelMember)
	loads := h.srv.Hits("GET /api/content")

	h.auth.Logout(ctx)

	assert.Equal(t, state.PanelCatalog, h.state.Panel())
	assert.Equal(t, state.PanelCatalog, h.view.Panel)
	assert.Equal(t, loads+1, h.srv.Hits("GET /api/content"))
	assert.Equal(t, model.Category("music"), h.state.Category())
}

func TestRestoreSessionDiscardsMalformedUser(t *testing.T) {
	for _, raw := range []string{"{not json", "null", `"a"`} {
		h := newHarness(t)
		ctx := context.Background()
		require.NoError(t, h.repo.Save(ctx, "tok", raw))

		require.NoError(t, h.auth.RestoreSession(ctx))

		sess := h.state.Session()
		assert.False(t, sess.Authenticated(), raw)
		assert.Empty(t, sess.Token, raw)
		token, user, err := h.repo.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, token, raw)
		assert.Empty(t, user, raw)
	}
}

func TestRestoreSessionTokenWithoutUser(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.db.Create(&model.SessionEntry{Key: "token", Value: "tok"}).Error)

	require.NoError(t, h.auth.RestoreSession(ctx))

	assert.Equal(t, model.Session{}, h.state.Session())
	token, _, err := h.repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestUnauthenticatedResponseClearsSession(t *testing.T) {
	h := newHarness(t, sampleContents()...)
	ctx := context.Background()
	h.login(t, "a", "p")
	h.store.RevokeTokens()

	err := h.orders.LoadOrders(ctx)

	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	assert.False(t, h.state.Session().Authenticated())
	token, user, err := h.repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Empty(t, user)
	assert.Equal(t, apperr.NoticeFor(apperr.KindUnauthenticated).Message, h.notes.Last().Message)
}

func TestStaleRestoredTokenSelfHeals(t *testing.T) {
	h := newHarness(t, sampleContents()...)
	ctx := context.Background()
	require.NoError(t, h.repo.Save(ctx, "stale-token", `{"username":"a","membership_level":"vip"}`))
	require.NoError(t, h.auth.RestoreSession(ctx))
	require.True(t, h.state.Session().Authenticated())
	require.NoError(t, h.catalog.LoadContents(ctx, model.CategoryAll))

	_, err := h.orders.Purchase(ctx, 1, &scriptedConfirmer{answers: []bool{true, true}})

	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	assert.False(t, h.state.Session().Authenticated())
}
