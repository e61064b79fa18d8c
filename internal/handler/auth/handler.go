package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/careops/hospital-platform/internal/model"
	"github.com/careops/hospital-platform/internal/service/auth"
	apperrors "github.com/careops/hospital-platform/pkg/errors"
	"github.com/careops/hospital-platform/pkg/httputil"
)

type Handler struct {
	service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	group := r.Group("/auth")
	{
		group.POST("/login", h.login)
		group.POST("/register", h.register)
		group.POST("/validate", h.validate)
		group.GET("/validate", h.validate)
	}
}

func (h *Handler) login(c *gin.Context) {
	var req model.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondSuccess(c, http.StatusOK, "login successful", resp)
}

func (h *Handler) register(c *gin.Context) {
	var req model.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondSuccess(c, http.StatusCreated, "registration successful", resp)
}

// validate always answers 200; the verdict lives in the body so callers can
// probe a token without triggering auth middleware semantics.
func (h *Handler) validate(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		c.JSON(http.StatusOK, model.ValidateResponse{
			Valid:   false,
			Message: "missing or malformed authorization header",
		})
		return
	}

	c.JSON(http.StatusOK, h.service.Validate(strings.TrimPrefix(header, "Bearer ")))
}
