package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"spreadedge/internal/shared/middleware"
	"spreadedge/internal/shared/utils/response"
	"spreadedge/internal/token"
	"spreadedge/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *token.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, tokens := newSeededService(t)
	log := logger.Discard()

	r := gin.New()
	NewRouter(NewController(svc, log), middleware.NewAuthenticator(tokens, log)).SetupRoutes(&r.RouterGroup)
	return r, tokens
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func formLogin(username, password string) *http.Request {
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func login(t *testing.T, r *gin.Engine) TokenResponse {
	t.Helper()
	w := serve(r, formLogin(TestUserEmail, TestUserPassword))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestTokenEndpoint_Form(t *testing.T) {
	r, _ := newTestRouter(t)
	resp := login(t, r)

	assert.Equal(t, "bearer", resp.TokenType)
	assert.Len(t, strings.Split(resp.AccessToken, "."), 3)
	assert.NotEmpty(t, resp.RefreshToken)
}

func TestTokenEndpoint_JSON(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/token",
		strings.NewReader(`{"username":"test@example.com","password":"password123"}`))
	req.Header.Set("Content-Type", "application/json")

	w := serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTokenEndpoint_BadPassword(t *testing.T) {
	r, _ := newTestRouter(t)

	w := serve(r, formLogin(TestUserEmail, "nope"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

	var body response.StandardApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Incorrect username or password", body.Message)
}

func TestTokenEndpoint_MissingFields(t *testing.T) {
	r, _ := newTestRouter(t)
	w := serve(r, formLogin("", ""))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUsersMe(t *testing.T) {
	r, _ := newTestRouter(t)
	tokens := login(t, r)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	w := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data MeResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, TestUserEmail, body.Data.Email)
}

func TestUsersMe_RejectsRefreshToken(t *testing.T) {
	r, _ := newTestRouter(t)
	tokens := login(t, r)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.RefreshToken)
	w := serve(r, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshToken(t *testing.T) {
	r, svc := newTestRouter(t)
	pair := login(t, r)

	for name, credential := range map[string]string{"refresh": pair.RefreshToken, "access": pair.AccessToken} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/refresh-token", nil)
			req.Header.Set("Authorization", "Bearer "+credential)
			w := serve(r, req)
			require.Equal(t, http.StatusOK, w.Code)

			var resp AccessTokenResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "bearer", resp.TokenType)

			subject, err := svc.ResolvePrincipal(resp.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, TestUserEmail, subject)
		})
	}
}

func TestRegisterEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return serve(r, req)
	}

	assert.Equal(t, http.StatusCreated, post(`{"email":"a@example.com","password":"secret1"}`).Code)
	assert.Equal(t, http.StatusConflict, post(`{"email":"a@example.com","password":"secret1"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(`{"email":"not-an-email","password":"secret1"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(`{"email":"b@example.com","password":"123"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(`{`).Code)
}
