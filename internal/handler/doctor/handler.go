package doctor

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/careops/hospital-platform/internal/model"
	"github.com/careops/hospital-platform/internal/service/doctor"
	apperrors "github.com/careops/hospital-platform/pkg/errors"
	"github.com/careops/hospital-platform/pkg/httputil"
)

type Handler struct {
	service *doctor.Service
}

func NewHandler(service *doctor.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	doctors := r.Group("/api/doctors")
	{
		doctors.POST("", h.create)
		doctors.GET("", h.list)
		doctors.GET("/available", h.listAvailable)
		doctors.GET("/specialization/:specialization", h.listBySpecialization)
		doctors.GET("/department/:department", h.listByDepartment)
		doctors.GET("/:id", h.get)
		doctors.PUT("/:id", h.update)
		doctors.PATCH("/:id/availability", h.setAvailability)
		doctors.DELETE("/:id", h.delete)
	}
}

func (h *Handler) create(c *gin.Context) {
	var req model.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondSuccess(c, http.StatusCreated, "doctor created", created)
}

func (h *Handler) get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, apperrors.BadRequest("invalid doctor id", err))
		return
	}

	found, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondSuccess(c, http.StatusOK, "", found)
}

func (h *Handler) list(c *gin.Context) {
	doctors, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondSuccess(c, http.StatusOK, "", doctors)
}

func (h *Handler) listAvailable(c *gin.Context) {
	doctors, err := h.service.ListAvailable(c.Request.Context())
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondSuccess(c, http.StatusOK, "", doctors)
}

func (h *Handler) listBySpecialization(c *gin.Context) {
	doctors, err := h.service.ListBySpecialization(c.Request.Context(), c.Param("specialization"))
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondSuccess(c, http.StatusOK, "", doctors)
}

func (h *Handler) listByDepartment(c *gin.Context) {
	doctors, err := h.service.ListByDepartment(c.Request.Context(), c.Param("department"))
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondSuccess(c, http.StatusOK, "", doctors)
}

func (h *Handler) update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, apperrors.BadRequest("invalid doctor id", err))
		return
	}

	var req model.UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondSuccess(c, http.StatusOK, "doctor updated", updated)
}

func (h *Handler) setAvailability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, apperrors.BadRequest("invalid doctor id", err))
		return
	}

	var req struct {
		IsAvailable *bool `json:"is_available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	updated, err := h.service.SetAvailability(c.Request.Context(), id, *req.IsAvailable)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondSuccess(c, http.StatusOK, "doctor availability updated", updated)
}

func (h *Handler) delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, apperrors.BadRequest("invalid doctor id", err))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondSuccess(c, http.StatusOK, "doctor deleted", nil)
}
