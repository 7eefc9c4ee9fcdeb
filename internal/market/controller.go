package market

import (
	"errors"
	"net/http"

	"spreadedge/internal/shared/utils/response"
	"spreadedge/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
	log     *logger.Logger
}

func NewController(service Service, log *logger.Logger) *Controller {
	return &Controller{service: service, log: log}
}

// GetAnalysis godoc
//
//	@Summary	Quotes for every asset class
//	@Tags		Market
//	@Produce	json
//	@Success	200	{object}	response.StandardApiResponse{data=Analysis}
//	@Failure	503	{object}	response.StandardApiResponse
//	@Router		/market/analysis [get]
func (c *Controller) GetAnalysis(ctx *gin.Context) {
	analysis, err := c.service.Analysis(ctx.Request.Context())
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Market analysis retrieved successfully", analysis, nil)
}

// GetQuotes godoc
//
//	@Summary	Quotes for one asset class
//	@Tags		Market
//	@Produce	json
//	@Param		class	path		string	true	"crypto, forex or stocks"
//	@Success	200		{object}	response.StandardApiResponse{data=[]Quote}
//	@Failure	404		{object}	response.StandardApiResponse
//	@Failure	503		{object}	response.StandardApiResponse
//	@Router		/market/{class} [get]
func (c *Controller) GetQuotes(ctx *gin.Context) {
	class, err := ParseAssetClass(ctx.Param("class"))
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	quotes, err := c.service.Quotes(ctx.Request.Context(), class)
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Quotes retrieved successfully", quotes, nil)
}

func (c *Controller) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnknownAssetClass):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Unknown asset class", nil, nil)
	case errors.Is(err, ErrUpstreamUnavailable):
		c.log.LogHTTPError(ctx, err, http.StatusServiceUnavailable)
		response.RespondJSON(ctx, "error", http.StatusServiceUnavailable, "Market data is temporarily unavailable", nil, nil)
	default:
		c.log.LogHTTPError(ctx, err, http.StatusInternalServerError)
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to load market data", nil, nil)
	}
}
