package market

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spreadedge/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMarketRouter(p Provider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc, _ := newTestService(p, 10)

	r := gin.New()
	NewRouter(NewController(svc, logger.Discard()), time.Second).SetupRoutes(&r.RouterGroup)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestGetAnalysis(t *testing.T) {
	r := newMarketRouter(NewSeededMockProvider(3))

	w := get(r, "/market/analysis")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string   `json:"status"`
		Data   Analysis `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.Len(t, body.Data.All, 6)
}

func TestGetQuotes(t *testing.T) {
	r := newMarketRouter(NewSeededMockProvider(3))

	for _, class := range []string{"crypto", "forex", "stocks"} {
		w := get(r, "/market/"+class)
		require.Equal(t, http.StatusOK, w.Code, class)

		var body struct {
			Data []Quote `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body.Data, 2)
		assert.Len(t, body.Data[0].ChartData, chartPoints)
	}
}

func TestGetQuotes_UnknownClass(t *testing.T) {
	r := newMarketRouter(NewSeededMockProvider(3))
	assert.Equal(t, http.StatusNotFound, get(r, "/market/bonds").Code)
}

func TestGetQuotes_UpstreamDown(t *testing.T) {
	r := newMarketRouter(&fakeProvider{err: errors.New("down")})
	assert.Equal(t, http.StatusServiceUnavailable, get(r, "/market/crypto").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(r, "/market/analysis").Code)
}
