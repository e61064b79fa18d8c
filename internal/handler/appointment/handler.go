package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/careops/hospital-platform/internal/model"
	"github.com/careops/hospital-platform/internal/service/appointment"
	apperrors "github.com/careops/hospital-platform/pkg/errors"
	"github.com/careops/hospital-platform/pkg/httputil"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	appointments := r.Group("/api/appointments")
	{
		appointments.POST("", h.create)
		appointments.GET("", h.list)
		appointments.GET("/:id", h.get)
		appointments.PATCH("/:id/status", h.updateStatus)
		appointments.PATCH("/:id/medical", h.updateMedicalDetails)
		appointments.DELETE("/:id", h.delete)
	}
}

func (h *Handler) create(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondSuccess(c, http.StatusCreated, "appointment booked", created)
}

func (h *Handler) get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, apperrors.BadRequest("invalid appointment id", err))
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
	filters, err := parseFilters(c)
	if err != nil {
		httputil.RespondError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	appointments, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondSuccess(c, http.StatusOK, "", appointments)
}

func (h *Handler) updateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, apperrors.BadRequest("invalid appointment id", err))
		return
	}

	var req model.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	updated, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondSuccess(c, http.StatusOK, "appointment status updated", updated)
}

func (h *Handler) updateMedicalDetails(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, apperrors.BadRequest("invalid appointment id", err))
		return
	}

	var req model.UpdateMedicalDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	updated, err := h.service.UpdateMedicalDetails(c.Request.Context(), id, req.Diagnosis, req.Prescription)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondSuccess(c, http.StatusOK, "medical details updated", updated)
}

func (h *Handler) delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, apperrors.BadRequest("invalid appointment id", err))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondSuccess(c, http.StatusOK, "appointment deleted", nil)
}

func parseFilters(c *gin.Context) (*model.AppointmentFilters, error) {
	filters := &model.AppointmentFilters{
		Date:      c.Query("date"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Status:    model.AppointmentStatus(c.Query("status")),
	}

	if raw := c.Query("patient_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, err
		}
		filters.PatientID = id
	}
	if raw := c.Query("doctor_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, err
		}
		filters.DoctorID = id
	}
	return filters, nil
}
