package copytrade

import (
	"errors"
	"net/http"

	"spreadedge/internal/shared/middleware"
	"spreadedge/internal/shared/utils/response"
	"spreadedge/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	validator *validator.Validate
	log       *logger.Logger
}

func NewController(service Service, log *logger.Logger) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
		log:       log,
	}
}

// GetTraders godoc
//
//	@Summary	Traders available for copy trading
//	@Tags		CopyTrade
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	response.StandardApiResponse{data=[]Trader}
//	@Router		/copy-trade/traders [get]
func (c *Controller) GetTraders(ctx *gin.Context) {
	// Anonymous callers get the list without follow state
	subject, _ := middleware.Subject(ctx)

	traders, err := c.service.Traders(ctx.Request.Context(), subject)
	if err != nil {
		c.log.LogHTTPError(ctx, err, http.StatusInternalServerError)
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to load traders", nil, nil)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Traders retrieved successfully", traders, nil)
}

// ToggleFollow godoc
//
//	@Summary	Follow or unfollow a trader
//	@Tags		CopyTrade
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		ToggleRequest	true	"trader to toggle"
//	@Success	200		{object}	response.StandardApiResponse{data=ToggleResponse}
//	@Failure	400		{object}	response.StandardApiResponse
//	@Failure	401		{object}	response.StandardApiResponse
//	@Router		/copy-trade/toggle [post]
func (c *Controller) ToggleFollow(ctx *gin.Context) {
	subject, ok := middleware.Subject(ctx)
	if !ok {
		response.RespondUnauthenticated(ctx, response.UnauthenticatedMessage)
		return
	}

	var req ToggleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	following, err := c.service.Toggle(ctx.Request.Context(), subject, req.TraderID)
	if err != nil {
		switch {
		case errors.Is(err, ErrTraderNotFound):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Failed to toggle follow status", nil, err.Error())
		default:
			c.log.LogHTTPError(ctx, err, http.StatusInternalServerError)
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to toggle follow status", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Follow status toggled successfully",
		ToggleResponse{TraderID: req.TraderID, Following: following}, nil)
}
