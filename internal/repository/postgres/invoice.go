package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careops/hospital-platform/internal/model"
	"github.com/careops/hospital-platform/internal/repository"
)

const invoiceColumns = `
	id, patient_id, appointment_id, invoice_number,
	consultation_fee, medication_charges, test_charges, other_charges,
	discount, tax, total_amount, paid_amount, balance_amount,
	status, payment_method, notes, paid_at, created_at, updated_at
`

func (r *invoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	query := `
		INSERT INTO invoices (
			id, patient_id, appointment_id, invoice_number,
			consultation_fee, medication_charges, test_charges, other_charges,
			discount, tax, total_amount, paid_amount, balance_amount,
			status, payment_method, notes, paid_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`
	invoice.ID = uuid.New()
	invoice.CreatedAt = time.Now()
	invoice.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		invoice.ID,
		invoice.PatientID,
		invoice.AppointmentID,
		invoice.InvoiceNumber,
		invoice.ConsultationFee,
		invoice.MedicationCharges,
		invoice.TestCharges,
		invoice.OtherCharges,
		invoice.Discount,
		invoice.Tax,
		invoice.TotalAmount,
		invoice.PaidAmount,
		invoice.BalanceAmount,
		invoice.Status,
		invoice.PaymentMethod,
		invoice.Notes,
		invoice.PaidAt,
		invoice.CreatedAt,
		invoice.UpdatedAt,
	)
	if err != nil {
		// unique constraints cover both invoice_number and appointment_id
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

func (r *invoiceRepository) Get(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE id = $1`

	var invoice model.Invoice
	err := r.db.GetContext(ctx, &invoice, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return &invoice, nil
}

func (r *invoiceRepository) GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*model.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE appointment_id = $1`

	var invoice model.Invoice
	err := r.db.GetContext(ctx, &invoice, query, appointmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invoice by appointment: %w", err)
	}
	return &invoice, nil
}

func (r *invoiceRepository) ExistsForAppointment(ctx context.Context, appointmentID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM invoices WHERE appointment_id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, appointmentID); err != nil {
		return false, fmt.Errorf("failed to check invoice existence: %w", err)
	}
	return exists, nil
}

func (r *invoiceRepository) List(ctx context.Context) ([]*model.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM invoices
		ORDER BY created_at DESC`

	var invoices []*model.Invoice
	if err := r.db.SelectContext(ctx, &invoices, query); err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE patient_id = $1
		ORDER BY created_at DESC`

	var invoices []*model.Invoice
	if err := r.db.SelectContext(ctx, &invoices, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list invoices by patient: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepository) ListByStatus(ctx context.Context, status model.InvoiceStatus) ([]*model.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE status = $1
		ORDER BY created_at DESC`

	var invoices []*model.Invoice
	if err := r.db.SelectContext(ctx, &invoices, query, status); err != nil {
		return nil, fmt.Errorf("failed to list invoices by status: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *model.Invoice) error {
	query := `
		UPDATE invoices
		SET consultation_fee = $1, medication_charges = $2, test_charges = $3,
			other_charges = $4, discount = $5, tax = $6, total_amount = $7,
			paid_amount = $8, balance_amount = $9, status = $10,
			payment_method = $11, notes = $12, paid_at = $13, updated_at = $14
		WHERE id = $15
	`
	invoice.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		invoice.ConsultationFee,
		invoice.MedicationCharges,
		invoice.TestCharges,
		invoice.OtherCharges,
		invoice.Discount,
		invoice.Tax,
		invoice.TotalAmount,
		invoice.PaidAmount,
		invoice.BalanceAmount,
		invoice.Status,
		invoice.PaymentMethod,
		invoice.Notes,
		invoice.PaidAt,
		invoice.UpdatedAt,
		invoice.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	return requireRows(result)
}
