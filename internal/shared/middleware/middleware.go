package middleware

import (
	"strings"

	"spreadedge/internal/shared/utils/response"
	"spreadedge/internal/token"
	"spreadedge/pkg/logger"
	"spreadedge/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware
const (
	ContextSubject   = "subject"
	ContextTokenType = "token_type"
)

// Authenticator guards routes with bearer credentials
type Authenticator struct {
	tokens *token.Service
	log    *logger.Logger
}

func NewAuthenticator(tokens *token.Service, log *logger.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, log: log}
}

// RequireAuth accepts access credentials only
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return a.require(token.TypeAccess)
}

// RequireAnyToken accepts access and refresh credentials. Only the refresh
// endpoint uses it.
func (a *Authenticator) RequireAnyToken() gin.HandlerFunc {
	return a.require(token.TypeAccess, token.TypeRefresh)
}

func (a *Authenticator) require(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			a.reject(c, "missing_bearer")
			return
		}

		subject, claims, err := a.tokens.Resolve(raw)
		if err != nil {
			a.reject(c, token.Reason(err))
			return
		}
		if !contains(allowed, claims.Type()) {
			a.reject(c, "wrong_token_type")
			return
		}

		c.Set(ContextSubject, subject)
		c.Set(ContextTokenType, claims.Type())
		c.Next()
	}
}

// OptionalAuth sets the subject when a valid access credential is present and
// otherwise lets the request through anonymously
func (a *Authenticator) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		subject, claims, err := a.tokens.Resolve(raw)
		if err == nil && claims.Type() == token.TypeAccess {
			c.Set(ContextSubject, subject)
			c.Set(ContextTokenType, claims.Type())
		}
		c.Next()
	}
}

// reject logs the precise reason and answers with one indistinguishable 401
func (a *Authenticator) reject(c *gin.Context, reason string) {
	a.log.LogAuthFailure(c.Request.Context(), reason, c.ClientIP())
	metrics.IncAuthFailure(reason)
	response.RespondUnauthenticated(c, response.UnauthenticatedMessage)
}

// Subject returns the authenticated subject, if any
func Subject(c *gin.Context) (string, bool) {
	subject := c.GetString(ContextSubject)
	return subject, subject != ""
}

func bearerToken(header string) (string, bool) {
	scheme, credential, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	credential = strings.TrimSpace(credential)
	return credential, credential != ""
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
