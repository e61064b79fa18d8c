package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/careops/hospital-platform/internal/model"
	"github.com/careops/hospital-platform/internal/service/patient"
	apperrors "github.com/careops/hospital-platform/pkg/errors"
	"github.com/careops/hospital-platform/pkg/httputil"
)

type Handler struct {
	service *patient.Service
}

func NewHandler(service *patient.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	patients := r.Group("/api/patients")
	{
		patients.POST("", h.create)
		patients.GET("", h.list)
		patients.GET("/search", h.search)
		patients.GET("/email/:email", h.getByEmail)
		patients.GET("/:id", h.get)
		patients.PUT("/:id", h.update)
		patients.DELETE("/:id", h.delete)
	}
}

func (h *Handler) create(c *gin.Context) {
	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondSuccess(c, http.StatusCreated, "patient created", created)
}

func (h *Handler) get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, apperrors.BadRequest("invalid patient id", err))
		return
	}

	found, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondSuccess(c, http.StatusOK, "", found)
}

func (h *Handler) getByEmail(c *gin.Context) {
	found, err := h.service.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondSuccess(c, http.StatusOK, "", found)
}

func (h *Handler) list(c *gin.Context) {
	patients, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondSuccess(c, http.StatusOK, "", patients)
}

func (h *Handler) search(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		httputil.RespondError(c, apperrors.BadRequest("name query parameter is required", nil))
		return
	}

	patients, err := h.service.Search(c.Request.Context(), name)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondSuccess(c, http.StatusOK, "", patients)
}

func (h *Handler) update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, apperrors.BadRequest("invalid patient id", err))
		return
	}

	var req model.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondSuccess(c, http.StatusOK, "patient updated", updated)
}

func (h *Handler) delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, apperrors.BadRequest("invalid patient id", err))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondSuccess(c, http.StatusOK, "patient deleted", nil)
}
