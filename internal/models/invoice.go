package models

import (
	"errors"
	"time"
)

// Location is a loading or unloading place attached to an invoice.
type Location struct {
	City    string `json:"city" firestore:"city"`
	Address string `json:"address" firestore:"address"`
}

// Invoice is a single issued invoice together with its trip details.
//
// CalculatedDistance of 0 means "unknown", not a zero-length trip:
// the distance estimator returns 0 on failure and every consumer of
// distance-derived figures must treat 0 as absence.
type Invoice struct {
	ID          string  `json:"id" firestore:"id"`
	CompanyName string  `json:"companyName" firestore:"companyName"`
	NIP         string  `json:"nip" firestore:"nip"`
	Amount      float64 `json:"amount" firestore:"amount"`

	// Deadline is the payment due date. PaymentTerm is the term in days;
	// when PaymentTermStart is set the invoice uses a start-end day range
	// instead of a single term, which changes overdue detection.
	Deadline         time.Time  `json:"deadline" firestore:"deadline"`
	PaymentTerm      int        `json:"paymentTerm" firestore:"paymentTerm"`
	PaymentTermStart *int       `json:"paymentTermStart,omitempty" firestore:"paymentTermStart,omitempty"`
	IssueDate        *time.Time `json:"issueDate,omitempty" firestore:"issueDate,omitempty"`

	Description string    `json:"description,omitempty" firestore:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`

	// IsPaid flips exactly once; PaidAt and PaidOnTime are fixed at that
	// moment and never recomputed, even if dates are edited afterwards.
	IsPaid     bool       `json:"isPaid" firestore:"isPaid"`
	PaidAt     *time.Time `json:"paidAt,omitempty" firestore:"paidAt,omitempty"`
	PaidOnTime *bool      `json:"paidOnTime,omitempty" firestore:"paidOnTime,omitempty"`

	InvoiceImages []string `json:"invoiceImages,omitempty" firestore:"invoiceImages,omitempty"`
	CargoImages   []string `json:"cargoImages,omitempty" firestore:"cargoImages,omitempty"`
	ContactPhone  string   `json:"contactPhone,omitempty" firestore:"contactPhone,omitempty"`

	LoadingLocation    *Location `json:"loadingLocation,omitempty" firestore:"loadingLocation,omitempty"`
	UnloadingLocation  *Location `json:"unloadingLocation,omitempty" firestore:"unloadingLocation,omitempty"`
	CalculatedDistance int       `json:"calculatedDistance,omitempty" firestore:"calculatedDistance,omitempty"`

	DriverID string `json:"driverId,omitempty" firestore:"driverId,omitempty"`
}

// EntityID implements Entity.
func (i Invoice) EntityID() string { return i.ID }

// Validate implements Entity.
func (i Invoice) Validate() error {
	if i.ID == "" {
		return errors.New("invoice: missing id")
	}
	if i.CompanyName == "" {
		return errors.New("invoice: missing company name")
	}
	if i.NIP == "" {
		return errors.New("invoice: missing nip")
	}
	if i.Deadline.IsZero() {
		return errors.New("invoice: missing deadline")
	}
	return nil
}

// Company aggregates the payment reputation of a client, keyed by NIP.
// Invoices is a denormalized snapshot kept in step with the invoice
// collection by the service layer, not by the sync core.
type Company struct {
	NIP      string    `json:"nip" firestore:"nip"`
	Name     string    `json:"name" firestore:"name"`
	Score    int       `json:"score" firestore:"score"`
	Invoices []Invoice `json:"invoices" firestore:"invoices"`
}

// PaymentHistory is one scored payment event for a company.
type PaymentHistory struct {
	InvoiceID    string    `json:"invoiceId" firestore:"invoiceId"`
	Amount       float64   `json:"amount" firestore:"amount"`
	Deadline     time.Time `json:"deadline" firestore:"deadline"`
	PaidAt       time.Time `json:"paidAt" firestore:"paidAt"`
	OnTime       bool      `json:"onTime" firestore:"onTime"`
	PointsEarned int       `json:"pointsEarned" firestore:"pointsEarned"`
}
