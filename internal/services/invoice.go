package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/OMEGA178/faktury/internal/common"
	"github.com/OMEGA178/faktury/internal/logging"
	"github.com/OMEGA178/faktury/internal/metrics"
	"github.com/OMEGA178/faktury/internal/models"
	"github.com/OMEGA178/faktury/internal/store"
)

// InvoiceService owns the invoice collection and keeps the company
// reputation records in step with it.
type InvoiceService struct {
	kv    *store.KV
	log   logging.Logger
	now   func() time.Time
	newID func() string
}

// NewInvoiceService returns a service over kv.
func NewInvoiceService(kv *store.KV, log logging.Logger) *InvoiceService {
	return &InvoiceService{kv: kv, log: log, now: time.Now, newID: uuid.NewString}
}

// AddInvoiceParams are the inputs for issuing a new invoice.
type AddInvoiceParams struct {
	CompanyName        string
	NIP                string
	Amount             float64
	Deadline           time.Time
	PaymentTerm        int
	PaymentTermStart   *int
	IssueDate          *time.Time
	Description        string
	InvoiceImages      []string
	CargoImages        []string
	ContactPhone       string
	LoadingLocation    *models.Location
	UnloadingLocation  *models.Location
	CalculatedDistance int
	DriverID           string
}

// Add issues a new unpaid invoice. A first invoice for an unknown NIP
// creates the company record with a score of 0.
func (s *InvoiceService) Add(ctx context.Context, p AddInvoiceParams) (models.Invoice, error) {
	inv := models.Invoice{
		ID:                 "inv-" + s.newID(),
		CompanyName:        p.CompanyName,
		NIP:                p.NIP,
		Amount:             p.Amount,
		Deadline:           p.Deadline,
		PaymentTerm:        p.PaymentTerm,
		PaymentTermStart:   p.PaymentTermStart,
		IssueDate:          p.IssueDate,
		Description:        p.Description,
		CreatedAt:          s.now(),
		InvoiceImages:      p.InvoiceImages,
		CargoImages:        p.CargoImages,
		ContactPhone:       p.ContactPhone,
		LoadingLocation:    p.LoadingLocation,
		UnloadingLocation:  p.UnloadingLocation,
		CalculatedDistance: p.CalculatedDistance,
		DriverID:           p.DriverID,
	}
	if err := inv.Validate(); err != nil {
		return models.Invoice{}, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	if _, err := store.Update(ctx, s.kv, KeyInvoices, []models.Invoice(nil), func(list []models.Invoice) []models.Invoice {
		return append(list, inv)
	}); err != nil {
		return models.Invoice{}, err
	}

	if _, err := store.Update(ctx, s.kv, KeyCompanies, map[string]models.Company(nil), func(companies map[string]models.Company) map[string]models.Company {
		if companies == nil {
			companies = make(map[string]models.Company)
		}
		c, ok := companies[inv.NIP]
		if !ok {
			c = models.Company{NIP: inv.NIP, Name: inv.CompanyName}
		}
		c.Invoices = append(c.Invoices, inv)
		companies[inv.NIP] = c
		return companies
	}); err != nil {
		return models.Invoice{}, err
	}

	s.log.Info(ctx, "invoice added", "id", inv.ID, "company", inv.CompanyName, "amount", inv.Amount)
	return inv, nil
}

// MarkPaid settles an invoice. PaidAt and PaidOnTime are fixed here,
// once, and the company's score moves by the payment's points. Paying
// an already-paid invoice is refused so the score cannot drift.
func (s *InvoiceService) MarkPaid(ctx context.Context, id string) (models.Invoice, error) {
	var paid models.Invoice
	var found, already bool

	if _, err := store.Update(ctx, s.kv, KeyInvoices, []models.Invoice(nil), func(list []models.Invoice) []models.Invoice {
		for i := range list {
			if list[i].ID != id {
				continue
			}
			found = true
			if list[i].IsPaid {
				already = true
				return list
			}
			paidAt := s.now()
			onTime := metrics.PaidOnTime(paidAt, list[i].Deadline)
			list[i].IsPaid = true
			list[i].PaidAt = &paidAt
			list[i].PaidOnTime = &onTime
			paid = list[i]
			return list
		}
		return list
	}); err != nil {
		return models.Invoice{}, err
	}

	if !found {
		return models.Invoice{}, common.ErrorNotFound
	}
	if already {
		return models.Invoice{}, common.ErrAlreadyPaid
	}

	points := metrics.Score(*paid.PaidOnTime)
	if _, err := store.Update(ctx, s.kv, KeyCompanies, map[string]models.Company(nil), func(companies map[string]models.Company) map[string]models.Company {
		c, ok := companies[paid.NIP]
		if !ok {
			return companies
		}
		c.Score += points
		for i := range c.Invoices {
			if c.Invoices[i].ID == paid.ID {
				c.Invoices[i] = paid
			}
		}
		companies[paid.NIP] = c
		return companies
	}); err != nil {
		return models.Invoice{}, err
	}

	s.log.Info(ctx, "invoice paid", "id", paid.ID, "onTime", *paid.PaidOnTime, "points", points)
	return paid, nil
}

// Edit replaces an invoice's editable fields. The payment state is
// carried over from the stored record; editing dates after payment
// never re-triggers scoring. When the NIP changed the company
// snapshot moves with it, and a company left without invoices is
// dropped.
func (s *InvoiceService) Edit(ctx context.Context, updated models.Invoice) (models.Invoice, error) {
	if err := updated.Validate(); err != nil {
		return models.Invoice{}, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	var oldNIP string
	found := false
	if _, err := store.Update(ctx, s.kv, KeyInvoices, []models.Invoice(nil), func(list []models.Invoice) []models.Invoice {
		for i := range list {
			if list[i].ID != updated.ID {
				continue
			}
			found = true
			oldNIP = list[i].NIP
			updated.CreatedAt = list[i].CreatedAt
			updated.IsPaid = list[i].IsPaid
			updated.PaidAt = list[i].PaidAt
			updated.PaidOnTime = list[i].PaidOnTime
			list[i] = updated
			return list
		}
		return list
	}); err != nil {
		return models.Invoice{}, err
	}

	if !found {
		return models.Invoice{}, common.ErrorNotFound
	}

	if _, err := store.Update(ctx, s.kv, KeyCompanies, map[string]models.Company(nil), func(companies map[string]models.Company) map[string]models.Company {
		if companies == nil {
			companies = make(map[string]models.Company)
		}
		if oldNIP != updated.NIP {
			if c, ok := companies[oldNIP]; ok {
				c.Invoices = removeInvoice(c.Invoices, updated.ID)
				if len(c.Invoices) == 0 {
					delete(companies, oldNIP)
				} else {
					companies[oldNIP] = c
				}
			}
		}

		c, ok := companies[updated.NIP]
		if !ok {
			c = models.Company{NIP: updated.NIP}
		}
		replaced := false
		for i := range c.Invoices {
			if c.Invoices[i].ID == updated.ID {
				c.Invoices[i] = updated
				replaced = true
			}
		}
		if !replaced {
			c.Invoices = append(c.Invoices, updated)
		}
		c.Name = updated.CompanyName
		companies[updated.NIP] = c
		return companies
	}); err != nil {
		return models.Invoice{}, err
	}

	s.log.Info(ctx, "invoice edited", "id", updated.ID, "company", updated.CompanyName)
	return updated, nil
}

// AttachImage links an uploaded image's storage key to an invoice, as
// an invoice photo or, when cargo is set, a cargo photo. The upload
// itself happens elsewhere; only the key lives in the record.
func (s *InvoiceService) AttachImage(ctx context.Context, id, key string, cargo bool) error {
	found := false
	if _, err := store.Update(ctx, s.kv, KeyInvoices, []models.Invoice(nil), func(list []models.Invoice) []models.Invoice {
		for i := range list {
			if list[i].ID != id {
				continue
			}
			found = true
			if cargo {
				list[i].CargoImages = append(list[i].CargoImages, key)
			} else {
				list[i].InvoiceImages = append(list[i].InvoiceImages, key)
			}
			return list
		}
		return list
	}); err != nil {
		return err
	}
	if !found {
		return common.ErrorNotFound
	}

	s.log.Info(ctx, "image attached", "id", id, "key", key, "cargo", cargo)
	return nil
}

// Invoices returns the current invoice snapshot.
func (s *InvoiceService) Invoices(ctx context.Context) ([]models.Invoice, error) {
	return store.Get(ctx, s.kv, KeyInvoices, []models.Invoice(nil))
}

func removeInvoice(list []models.Invoice, id string) []models.Invoice {
	out := list[:0]
	for _, inv := range list {
		if inv.ID != id {
			out = append(out, inv)
		}
	}
	return out
}
