package middleware

import (
	"net/http"
	"time"

	"spreadedge/internal/shared/utils/response"

	"github.com/gin-contrib/timeout"
	"github.com/gin-gonic/gin"
)

func timeoutResponse(c *gin.Context) {
	response.RespondJSON(c, "error", http.StatusGatewayTimeout, "Request timed out", nil, nil)
}

// Timeout bounds handlers that call slow upstreams
func Timeout(to time.Duration) gin.HandlerFunc {
	return timeout.New(
		timeout.WithTimeout(to),
		timeout.WithResponse(timeoutResponse),
	)
}
