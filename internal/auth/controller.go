package auth

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

// Login godoc
//
//	@Summary	Exchange username and password for a token pair
//	@Tags		Auth
//	@Accept		x-www-form-urlencoded,json
//	@Produce	json
//	@Param		username	formData	string	true	"account email"
//	@Param		password	formData	string	true	"account password"
//	@Success	200	{object}	TokenResponse
//	@Failure	401	{object}	response.StandardApiResponse
//	@Router		/token [post]
func (c *Controller) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			c.log.LogAuthFailure(ctx.Request.Context(), "bad_password", ctx.ClientIP())
			response.RespondUnauthenticated(ctx, "Incorrect username or password")
		default:
			c.log.LogHTTPError(ctx, err, http.StatusInternalServerError)
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to login", nil, nil)
		}
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// RefreshToken godoc
//
//	@Summary	Issue a new access token for the bearer
//	@Tags		Auth
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	AccessTokenResponse
//	@Failure	401	{object}	response.StandardApiResponse
//	@Router		/refresh-token [post]
func (c *Controller) RefreshToken(ctx *gin.Context) {
	subject, ok := middleware.Subject(ctx)
	if !ok {
		response.RespondUnauthenticated(ctx, response.UnauthenticatedMessage)
		return
	}

	resp, err := c.service.Refresh(ctx.Request.Context(), subject)
	if err != nil {
		c.log.LogHTTPError(ctx, err, http.StatusInternalServerError)
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to refresh token", nil, nil)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Register godoc
//
//	@Summary	Create an account
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		RegisterRequest	true	"new account"
//	@Success	201		{object}	response.StandardApiResponse{data=UserResponse}
//	@Failure	409		{object}	response.StandardApiResponse
//	@Router		/auth/register [post]
func (c *Controller) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.Register(ctx.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserAlreadyExists):
			response.RespondJSON(ctx, "error", http.StatusConflict, "User with this email already exists", nil, nil)
		default:
			c.log.LogHTTPError(ctx, err, http.StatusInternalServerError)
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to register user", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "User registered successfully", resp, nil)
}

// GetMe godoc
//
//	@Summary	Identify the bearer
//	@Tags		Users
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	response.StandardApiResponse{data=MeResponse}
//	@Failure	401	{object}	response.StandardApiResponse
//	@Router		/users/me [get]
func (c *Controller) GetMe(ctx *gin.Context) {
	subject, ok := middleware.Subject(ctx)
	if !ok {
		response.RespondUnauthenticated(ctx, response.UnauthenticatedMessage)
		return
	}

	me, err := c.service.Me(ctx.Request.Context(), subject)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to load user", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "User data retrieved successfully", me, nil)
}
