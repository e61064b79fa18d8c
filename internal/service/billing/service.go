package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/careops/hospital-platform/internal/client"
	"github.com/careops/hospital-platform/internal/model"
	"github.com/careops/hospital-platform/internal/repository"
	"github.com/careops/hospital-platform/internal/service/event"
	apperrors "github.com/careops/hospital-platform/pkg/errors"
	"github.com/careops/hospital-platform/pkg/validator"
)

const (
	EventCreated = "invoice.created"
	EventPaid    = "invoice.paid"
)

// Service computes charges, applies payments and drives the invoice
// lifecycle. All amounts are exact decimals; totals are recomputed on every
// mutation of a charge or payment field.
type Service struct {
	repo         repository.InvoiceRepository
	patients     client.PatientFetcher
	appointments client.AppointmentFetcher
	events       *event.Service
	logger       zerolog.Logger

	now func() time.Time
}

func NewService(
	repo repository.InvoiceRepository,
	patients client.PatientFetcher,
	appointments client.AppointmentFetcher,
	events *event.Service,
	logger zerolog.Logger,
) *Service {
	return &Service{
		repo:         repo,
		patients:     patients,
		appointments: appointments,
		events:       events,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *Service) Create(ctx context.Context, req *model.CreateInvoiceRequest) (*model.InvoiceResponse, error) {
	if err := validateCharges(req); err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}

	exists, err := s.repo.ExistsForAppointment(ctx, req.AppointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check invoice existence: %w", err)
	}
	if exists {
		return nil, apperrors.Conflict(fmt.Sprintf(
			"invoice already exists for appointment: %s", req.AppointmentID,
		))
	}

	// Hard-fail peer validations; an invoice must reference a patient and
	// appointment that exist right now.
	patient, err := s.patients.GetPatient(ctx, req.PatientID)
	if err != nil {
		return nil, peerError("patient", req.PatientID, err)
	}
	appointment, err := s.appointments.GetAppointment(ctx, req.AppointmentID)
	if err != nil {
		return nil, peerError("appointment", req.AppointmentID, err)
	}

	invoice := &model.Invoice{
		PatientID:         req.PatientID,
		AppointmentID:     req.AppointmentID,
		InvoiceNumber:     s.generateInvoiceNumber(),
		ConsultationFee:   req.ConsultationFee,
		MedicationCharges: req.MedicationCharges,
		TestCharges:       req.TestCharges,
		OtherCharges:      req.OtherCharges,
		Discount:          req.Discount,
		Tax:               req.Tax,
		PaidAmount:        decimal.Zero,
		Notes:             req.Notes,
	}
	invoice.Recalculate()

	if err := s.repo.Create(ctx, invoice); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict(fmt.Sprintf(
				"invoice already exists for appointment: %s", req.AppointmentID,
			))
		}
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	s.events.Emit(ctx, EventCreated, invoice.ID, invoice)
	s.logger.Info().
		Str("invoice_id", invoice.ID.String()).
		Str("invoice_number", invoice.InvoiceNumber).
		Str("total", invoice.TotalAmount.String()).
		Msg("invoice created")

	resp := &model.InvoiceResponse{Invoice: *invoice}
	resp.PatientName = patient.FullName()
	resp.AppointmentDate = appointment.AppointmentDate
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.InvoiceResponse, error) {
	invoice, err := s.getInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, invoice), nil
}

func (s *Service) GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*model.InvoiceResponse, error) {
	invoice, err := s.repo.GetByAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("invoice", appointmentID)
		}
		return nil, fmt.Errorf("failed to get invoice by appointment: %w", err)
	}
	return s.enrich(ctx, invoice), nil
}

func (s *Service) List(ctx context.Context) ([]*model.InvoiceResponse, error) {
	invoices, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return s.enrichAll(ctx, invoices), nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.InvoiceResponse, error) {
	invoices, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices by patient: %w", err)
	}
	return s.enrichAll(ctx, invoices), nil
}

func (s *Service) ListByStatus(ctx context.Context, status model.InvoiceStatus) ([]*model.InvoiceResponse, error) {
	invoices, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices by status: %w", err)
	}
	return s.enrichAll(ctx, invoices), nil
}

// AddPayment applies a partial or full payment. A payment may never push
// paidAmount past totalAmount, and terminal invoices reject payments.
func (s *Service) AddPayment(ctx context.Context, id uuid.UUID, req *model.PaymentRequest) (*model.InvoiceResponse, error) {
	if err := validator.Positive("amount", req.Amount); err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}

	invoice, err := s.getInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	switch invoice.Status {
	case model.InvoiceStatusPaid:
		return nil, apperrors.InvalidState("invoice is already fully paid")
	case model.InvoiceStatusCancelled:
		return nil, apperrors.InvalidState("cannot add payment to cancelled invoice")
	case model.InvoiceStatusRefunded:
		return nil, apperrors.InvalidState("cannot add payment to refunded invoice")
	}

	newPaid := invoice.PaidAmount.Add(req.Amount)
	if newPaid.Cmp(invoice.TotalAmount) > 0 {
		return nil, apperrors.InvalidState("payment amount exceeds total amount")
	}

	invoice.PaidAmount = newPaid
	method := req.PaymentMethod
	invoice.PaymentMethod = &method
	if req.Notes != "" {
		if invoice.Notes != "" {
			invoice.Notes += "\n"
		}
		invoice.Notes += req.Notes
	}

	invoice.Recalculate()
	if invoice.Status == model.InvoiceStatusPaid {
		now := s.now()
		invoice.PaidAt = &now
	}

	if err := s.repo.Update(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to apply payment: %w", err)
	}

	if invoice.Status == model.InvoiceStatusPaid {
		s.events.Emit(ctx, EventPaid, invoice.ID, invoice)
	}
	s.logger.Info().
		Str("invoice_id", id.String()).
		Str("amount", req.Amount.String()).
		Str("status", string(invoice.Status)).
		Msg("payment applied")

	return s.enrich(ctx, invoice), nil
}

// Cancel marks an unpaid invoice CANCELLED. Paid invoices must go through
// Refund so the money trail stays explicit.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*model.InvoiceResponse, error) {
	invoice, err := s.getInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	if invoice.Status == model.InvoiceStatusPaid {
		return nil, apperrors.InvalidState("cannot cancel a paid invoice, process a refund instead")
	}

	invoice.Status = model.InvoiceStatusCancelled
	if err := s.repo.Update(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to cancel invoice: %w", err)
	}

	s.logger.Info().Str("invoice_id", id.String()).Msg("invoice cancelled")
	return s.enrich(ctx, invoice), nil
}

// Refund reverses a fully paid invoice: paidAmount drops to zero, the
// balance returns to the full total and the paid timestamp is cleared.
func (s *Service) Refund(ctx context.Context, id uuid.UUID) (*model.InvoiceResponse, error) {
	invoice, err := s.getInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	if invoice.Status != model.InvoiceStatusPaid {
		return nil, apperrors.InvalidState("only paid invoices can be refunded")
	}

	invoice.Status = model.InvoiceStatusRefunded
	invoice.PaidAmount = decimal.Zero
	invoice.BalanceAmount = invoice.TotalAmount
	invoice.PaidAt = nil

	if err := s.repo.Update(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to refund invoice: %w", err)
	}

	s.logger.Info().Str("invoice_id", id.String()).Msg("invoice refunded")
	return s.enrich(ctx, invoice), nil
}

func (s *Service) getInvoice(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	invoice, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("invoice", id)
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return invoice, nil
}

// enrich attaches peer display fields in soft-fail mode.
func (s *Service) enrich(ctx context.Context, invoice *model.Invoice) *model.InvoiceResponse {
	resp := &model.InvoiceResponse{Invoice: *invoice}

	if patient, err := s.patients.GetPatient(ctx, invoice.PatientID); err == nil {
		resp.PatientName = patient.FullName()
	} else {
		s.logger.Warn().Err(err).
			Str("invoice_id", invoice.ID.String()).
			Msg("could not enrich invoice with patient details")
	}

	if apt, err := s.appointments.GetAppointment(ctx, invoice.AppointmentID); err == nil {
		resp.AppointmentDate = apt.AppointmentDate
	} else {
		s.logger.Warn().Err(err).
			Str("invoice_id", invoice.ID.String()).
			Msg("could not enrich invoice with appointment details")
	}

	return resp
}

func (s *Service) enrichAll(ctx context.Context, invoices []*model.Invoice) []*model.InvoiceResponse {
	responses := make([]*model.InvoiceResponse, 0, len(invoices))
	for _, invoice := range invoices {
		responses = append(responses, s.enrich(ctx, invoice))
	}
	return responses
}

func (s *Service) generateInvoiceNumber() string {
	return "INV-" + s.now().Format("20060102150405")
}

func validateCharges(req *model.CreateInvoiceRequest) error {
	fields := map[string]decimal.Decimal{
		"consultation_fee":   req.ConsultationFee,
		"medication_charges": req.MedicationCharges,
		"test_charges":       req.TestCharges,
		"other_charges":      req.OtherCharges,
		"discount":           req.Discount,
		"tax":                req.Tax,
	}
	for field, amount := range fields {
		if err := validator.NonNegative(field, amount); err != nil {
			return err
		}
	}
	return nil
}

func peerError(resource string, id uuid.UUID, err error) error {
	if errors.Is(err, client.ErrNotFound) {
		return apperrors.NotFound(resource, id)
	}
	return apperrors.Unavailable(resource, err)
}
