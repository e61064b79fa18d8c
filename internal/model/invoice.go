package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusPending       InvoiceStatus = "PENDING"
	InvoiceStatusPartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoiceStatusPaid          InvoiceStatus = "PAID"
	InvoiceStatusCancelled     InvoiceStatus = "CANCELLED"
	InvoiceStatusRefunded      InvoiceStatus = "REFUNDED"
)

type PaymentMethod string

const (
	PaymentMethodCash       PaymentMethod = "CASH"
	PaymentMethodCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard  PaymentMethod = "DEBIT_CARD"
	PaymentMethodUPI        PaymentMethod = "UPI"
	PaymentMethodNetBanking PaymentMethod = "NET_BANKING"
	PaymentMethodInsurance  PaymentMethod = "INSURANCE"
)

type Invoice struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	PatientID         uuid.UUID       `json:"patient_id" db:"patient_id"`
	AppointmentID     uuid.UUID       `json:"appointment_id" db:"appointment_id"`
	InvoiceNumber     string          `json:"invoice_number" db:"invoice_number"`
	ConsultationFee   decimal.Decimal `json:"consultation_fee" db:"consultation_fee"`
	MedicationCharges decimal.Decimal `json:"medication_charges" db:"medication_charges"`
	TestCharges       decimal.Decimal `json:"test_charges" db:"test_charges"`
	OtherCharges      decimal.Decimal `json:"other_charges" db:"other_charges"`
	Discount          decimal.Decimal `json:"discount" db:"discount"`
	Tax               decimal.Decimal `json:"tax" db:"tax"`
	TotalAmount       decimal.Decimal `json:"total_amount" db:"total_amount"`
	PaidAmount        decimal.Decimal `json:"paid_amount" db:"paid_amount"`
	BalanceAmount     decimal.Decimal `json:"balance_amount" db:"balance_amount"`
	Status            InvoiceStatus   `json:"status" db:"status"`
	PaymentMethod     *PaymentMethod  `json:"payment_method,omitempty" db:"payment_method"`
	Notes             string          `json:"notes" db:"notes"`
	PaidAt            *time.Time      `json:"paid_at,omitempty" db:"paid_at"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`
}

// Recalculate re-derives the money invariant and the payment-driven status:
//
//	total   = (consultation + medication + tests + other - discount) + tax
//	balance = total - paid
//
// The terminal CANCELLED and REFUNDED states are operator transitions and
// are never derived here.
func (i *Invoice) Recalculate() {
	subtotal := i.ConsultationFee.
		Add(i.MedicationCharges).
		Add(i.TestCharges).
		Add(i.OtherCharges)

	i.TotalAmount = subtotal.Sub(i.Discount).Add(i.Tax)
	i.BalanceAmount = i.TotalAmount.Sub(i.PaidAmount)

	if i.Status == InvoiceStatusCancelled || i.Status == InvoiceStatusRefunded {
		return
	}

	switch {
	case i.BalanceAmount.IsZero():
		i.Status = InvoiceStatusPaid
	case i.PaidAmount.Sign() > 0:
		i.Status = InvoiceStatusPartiallyPaid
	default:
		i.Status = InvoiceStatusPending
	}
}

// InvoiceResponse is an Invoice enriched with peer-owned display fields.
type InvoiceResponse struct {
	Invoice
	PatientName     string `json:"patient_name,omitempty"`
	AppointmentDate string `json:"appointment_date,omitempty"`
}

type CreateInvoiceRequest struct {
	PatientID         uuid.UUID       `json:"patient_id" binding:"required"`
	AppointmentID     uuid.UUID       `json:"appointment_id" binding:"required"`
	ConsultationFee   decimal.Decimal `json:"consultation_fee" binding:"required"`
	MedicationCharges decimal.Decimal `json:"medication_charges"`
	TestCharges       decimal.Decimal `json:"test_charges"`
	OtherCharges      decimal.Decimal `json:"other_charges"`
	Discount          decimal.Decimal `json:"discount"`
	Tax               decimal.Decimal `json:"tax"`
	Notes             string          `json:"notes"`
}

type PaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod PaymentMethod   `json:"payment_method" binding:"required,oneof=CASH CREDIT_CARD DEBIT_CARD UPI NET_BANKING INSURANCE"`
	Notes         string          `json:"notes"`
}
