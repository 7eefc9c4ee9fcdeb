package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spreadedge/internal/auth"
	"spreadedge/internal/copytrade"
	"spreadedge/internal/market"
	"spreadedge/internal/shared/config"
	"spreadedge/internal/shared/database"
	"spreadedge/internal/signals"
	"spreadedge/internal/token"
	"spreadedge/internal/users"
	"spreadedge/pkg/cache"
	"spreadedge/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, basePath string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := token.NewService(token.Config{
		Secret:     "routes-secret",
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	})
	require.NoError(t, err)

	log := logger.Discard()
	repo := auth.NewMemoryRepository()
	_, err = auth.EnsureUser(context.Background(), repo, auth.TestUserEmail, auth.TestUserPassword, users.RoleUser)
	require.NoError(t, err)

	cfg := &config.Config{APIVersion: "1.0.0", APIBasePath: basePath, RequestTimeout: 5 * time.Second}
	cfg.Market.CacheTTL = time.Minute

	r := NewRouter(cfg, Dependencies{
		DB:        &database.DB{},
		Tokens:    tokens,
		Cache:     cache.NewMemoryService(log),
		Users:     repo,
		Follows:   copytrade.NewMemoryFollowStore(),
		Provider:  market.NewSeededMockProvider(9),
		Publisher: signals.NopPublisher{},
		Log:       log,
	})
	t.Cleanup(func() { assert.NoError(t, r.Close()) })

	engine := gin.New()
	r.SetupRoutes(engine)
	return engine
}

func get(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestInfoRoutes(t *testing.T) {
	engine := newTestEngine(t, "")

	w := get(engine, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Welcome to SpreadEdge API"}`, w.Body.String())

	w = get(engine, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	var health struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, map[string]string{"postgres": "disabled", "redis": "disabled"}, health.Checks)

	assert.Equal(t, http.StatusOK, get(engine, "/ping").Code)

	w = get(engine, "/status")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"market_provider":"mock"`)
}

func TestFeatureRoutesMounted(t *testing.T) {
	engine := newTestEngine(t, "")

	assert.Equal(t, http.StatusOK, get(engine, "/market/analysis").Code)
	assert.Equal(t, http.StatusOK, get(engine, "/market/crypto").Code)
	assert.Equal(t, http.StatusNotFound, get(engine, "/market/bonds").Code)
	assert.Equal(t, http.StatusOK, get(engine, "/signals").Code)
	assert.Equal(t, http.StatusOK, get(engine, "/copy-trade/traders").Code)
	assert.Equal(t, http.StatusUnauthorized, get(engine, "/users/me").Code)
}

func TestBasePath(t *testing.T) {
	engine := newTestEngine(t, "/api/v1")

	assert.Equal(t, http.StatusOK, get(engine, "/api/v1/market/forex").Code)
	assert.Equal(t, http.StatusNotFound, get(engine, "/market/forex").Code)
	// info routes stay at the root
	assert.Equal(t, http.StatusOK, get(engine, "/health").Code)
}
