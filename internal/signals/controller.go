package signals

import (
	"net/http"

	"spreadedge/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetSignals godoc
//
//	@Summary	Trading signals derived from the current market snapshot
//	@Tags		Signals
//	@Produce	json
//	@Success	200	{object}	response.StandardApiResponse{data=[]TradingSignal}
//	@Router		/signals [get]
func (c *Controller) GetSignals(ctx *gin.Context) {
	batch := c.service.Signals(ctx.Request.Context())
	response.RespondJSON(ctx, "success", http.StatusOK, "Signals retrieved successfully", batch, nil)
}
