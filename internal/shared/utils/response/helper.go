package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UnauthenticatedMessage is the single body every rejected credential gets
const UnauthenticatedMessage = "Could not validate credentials"

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondUnauthenticated writes the bearer challenge and aborts the chain
func RespondUnauthenticated(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	RespondJSON(c, "error", http.StatusUnauthorized, message, nil, nil)
	c.Abort()
}
