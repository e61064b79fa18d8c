package invoice

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/careops/hospital-platform/internal/model"
	"github.com/careops/hospital-platform/internal/service/billing"
	apperrors "github.com/careops/hospital-platform/pkg/errors"
	"github.com/careops/hospital-platform/pkg/httputil"
)

type Handler struct {
	service *billing.Service
}

func NewHandler(service *billing.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	invoices := r.Group("/api/invoices")
	{
		invoices.POST("", h.create)
		invoices.GET("", h.list)
		invoices.GET("/patient/:patientId", h.listByPatient)
		invoices.GET("/appointment/:appointmentId", h.getByAppointment)
		invoices.GET("/:id", h.get)
		invoices.POST("/:id/payments", h.addPayment)
		invoices.POST("/:id/cancel", h.cancel)
		invoices.POST("/:id/refund", h.refund)
	}
}

func (h *Handler) create(c *gin.Context) {
	var req model.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondSuccess(c, http.StatusCreated, "invoice created", created)
}

func (h *Handler) get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, apperrors.BadRequest("invalid invoice id", err))
		return
	}

	found, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondSuccess(c, http.StatusOK, "", found)
}

func (h *Handler) getByAppointment(c *gin.Context) {
	appointmentID, err := uuid.Parse(c.Param("appointmentId"))
	if err != nil {
		httputil.RespondError(c, apperrors.BadRequest("invalid appointment id", err))
		return
	}

	found, err := h.service.GetByAppointment(c.Request.Context(), appointmentID)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondSuccess(c, http.StatusOK, "", found)
}

func (h *Handler) list(c *gin.Context) {
	if raw := c.Query("status"); raw != "" {
		invoices, err := h.service.ListByStatus(c.Request.Context(), model.InvoiceStatus(raw))
		if err != nil {
			httputil.RespondError(c, err)
			return
		}
		httputil.RespondSuccess(c, http.StatusOK, "", invoices)
		return
	}

	invoices, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondSuccess(c, http.StatusOK, "", invoices)
}

func (h *Handler) listByPatient(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		httputil.RespondError(c, apperrors.BadRequest("invalid patient id", err))
		return
	}

	invoices, err := h.service.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondSuccess(c, http.StatusOK, "", invoices)
}

func (h *Handler) addPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, apperrors.BadRequest("invalid invoice id", err))
		return
	}

	var req model.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	updated, err := h.service.AddPayment(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondSuccess(c, http.StatusOK, "payment recorded", updated)
}

func (h *Handler) cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, apperrors.BadRequest("invalid invoice id", err))
		return
	}

	updated, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondSuccess(c, http.StatusOK, "invoice cancelled", updated)
}

func (h *Handler) refund(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, apperrors.BadRequest("invalid invoice id", err))
		return
	}

	updated, err := h.service.Refund(c.Request.Context(), id)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondSuccess(c, http.StatusOK, "invoice refunded", updated)
}
