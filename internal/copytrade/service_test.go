package copytrade

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spreadedge/internal/shared/middleware"
	"spreadedge/internal/token"
	"spreadedge/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{ err error }

func (s failingStore) Toggle(context.Context, string, string) (bool, error) { return false, s.err }

func (s failingStore) Following(context.Context, string) (map[string]bool, error) {
	return nil, s.err
}

func newTestService() Service {
	return NewService(NewSeededRoster(5), NewMemoryFollowStore(), logger.Discard())
}

func TestService_ToggleAndTraders(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	following, err := svc.Toggle(ctx, "a@example.com", "3")
	require.NoError(t, err)
	assert.True(t, following)

	traders, err := svc.Traders(ctx, "a@example.com")
	require.NoError(t, err)
	for _, tr := range traders {
		assert.Equal(t, tr.ID == "3", tr.IsFollowing, tr.Name)
	}

	// another subject sees its own state
	traders, err = svc.Traders(ctx, "b@example.com")
	require.NoError(t, err)
	for _, tr := range traders {
		assert.False(t, tr.IsFollowing)
	}

	following, err = svc.Toggle(ctx, "a@example.com", "3")
	require.NoError(t, err)
	assert.False(t, following)
}

func TestService_AnonymousTraders(t *testing.T) {
	svc := NewService(NewSeededRoster(5), failingStore{err: errors.New("unused")}, logger.Discard())

	traders, err := svc.Traders(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, traders, 5)
}

func TestService_ToggleUnknownTrader(t *testing.T) {
	_, err := newTestService().Toggle(context.Background(), "a@example.com", "42")
	assert.ErrorIs(t, err, ErrTraderNotFound)
}

func TestService_StoreError(t *testing.T) {
	boom := errors.New("redis down")
	svc := NewService(NewSeededRoster(5), failingStore{err: boom}, logger.Discard())

	_, err := svc.Toggle(context.Background(), "a@example.com", "1")
	assert.ErrorIs(t, err, boom)

	_, err = svc.Traders(context.Background(), "a@example.com")
	assert.ErrorIs(t, err, boom)
}

type routeFixture struct {
	router *gin.Engine
	bearer string
}

func newRouteFixture(t *testing.T) *routeFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := token.NewService(token.Config{
		Secret:     "copytrade-secret",
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	})
	require.NoError(t, err)

	access, err := tokens.CreateAccessToken(token.Claims{token.ClaimSubject: "test@example.com"})
	require.NoError(t, err)

	log := logger.Discard()
	r := gin.New()
	NewRouter(NewController(newTestService(), log), middleware.NewAuthenticator(tokens, log)).SetupRoutes(&r.RouterGroup)
	return &routeFixture{router: r, bearer: "Bearer " + access}
}

func (f *routeFixture) do(method, path, authorization string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	var body struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NoError(t, json.Unmarshal(body.Data, dest))
}

func TestToggleRoute(t *testing.T) {
	f := newRouteFixture(t)

	w := f.do(http.MethodPost, "/copy-trade/toggle", f.bearer, []byte(`{"traderId":"2"}`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var toggled ToggleResponse
	decodeData(t, w, &toggled)
	assert.Equal(t, ToggleResponse{TraderID: "2", Following: true}, toggled)

	w = f.do(http.MethodGet, "/copy-trade/traders", f.bearer, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var traders []Trader
	decodeData(t, w, &traders)
	require.Len(t, traders, 5)
	assert.True(t, traders[1].IsFollowing)
	assert.False(t, traders[0].IsFollowing)
}

func TestToggleRoute_RequiresAuth(t *testing.T) {
	f := newRouteFixture(t)

	w := f.do(http.MethodPost, "/copy-trade/toggle", "", []byte(`{"traderId":"2"}`))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}

func TestToggleRoute_BadRequests(t *testing.T) {
	f := newRouteFixture(t)

	for name, body := range map[string]string{
		"unknown trader": `{"traderId":"99"}`,
		"missing id":     `{}`,
		"not json":       `traderId=2`,
	} {
		w := f.do(http.MethodPost, "/copy-trade/toggle", f.bearer, []byte(body))
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
	}
}

func TestTradersRoute_Anonymous(t *testing.T) {
	f := newRouteFixture(t)

	w := f.do(http.MethodGet, "/copy-trade/traders", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var traders []Trader
	decodeData(t, w, &traders)
	assert.Len(t, traders, 5)
}
