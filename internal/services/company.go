package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/OMEGA178/faktury/internal/common"
	"github.com/OMEGA178/faktury/internal/metrics"
	"github.com/OMEGA178/faktury/internal/models"
	"github.com/OMEGA178/faktury/internal/store"
)

// CompanyService reads the company reputation records maintained by
// the invoice service.
type CompanyService struct {
	kv *store.KV
}

// NewCompanyService returns a service over kv.
func NewCompanyService(kv *store.KV) *CompanyService {
	return &CompanyService{kv: kv}
}

// Companies returns the reputation records keyed by NIP.
func (s *CompanyService) Companies(ctx context.Context) (map[string]models.Company, error) {
	return store.Get(ctx, s.kv, KeyCompanies, map[string]models.Company(nil))
}

// Get returns one company by NIP.
func (s *CompanyService) Get(ctx context.Context, nip string) (models.Company, error) {
	companies, err := s.Companies(ctx)
	if err != nil {
		return models.Company{}, err
	}
	c, ok := companies[nip]
	if !ok {
		return models.Company{}, fmt.Errorf("company %q: %w", nip, common.ErrorNotFound)
	}
	return c, nil
}

// History derives the scored payment events from a company's paid
// invoices, newest first.
func (s *CompanyService) History(c models.Company) []models.PaymentHistory {
	var out []models.PaymentHistory
	for _, inv := range c.Invoices {
		if !inv.IsPaid || inv.PaidAt == nil || inv.PaidOnTime == nil {
			continue
		}
		out = append(out, models.PaymentHistory{
			InvoiceID:    inv.ID,
			Amount:       inv.Amount,
			Deadline:     inv.Deadline,
			PaidAt:       *inv.PaidAt,
			OnTime:       *inv.PaidOnTime,
			PointsEarned: metrics.Score(*inv.PaidOnTime),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaidAt.After(out[j].PaidAt) })
	return out
}
