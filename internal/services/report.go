package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/OMEGA178/faktury/internal/logging"
	"github.com/OMEGA178/faktury/internal/metrics"
	"github.com/OMEGA178/faktury/internal/models"
	"github.com/OMEGA178/faktury/internal/store"
)

// ReportService generates and stores period reports.
type ReportService struct {
	kv    *store.KV
	log   logging.Logger
	now   func() time.Time
	newID func() string
}

// NewReportService returns a service over kv.
func NewReportService(kv *store.KV, log logging.Logger) *ReportService {
	return &ReportService{kv: kv, log: log, now: time.Now, newID: uuid.NewString}
}

// Generate builds a report for the period containing now and stores
// it.
func (s *ReportService) Generate(ctx context.Context, typ models.ReportType) (models.Report, error) {
	invoices, entries, err := s.snapshot(ctx)
	if err != nil {
		return models.Report{}, err
	}

	r := metrics.BuildReport(typ, invoices, entries, s.now())
	if err := s.append(ctx, r); err != nil {
		return models.Report{}, err
	}

	s.log.Info(ctx, "report generated", "type", string(typ), "revenue", r.TotalRevenue)
	return r, nil
}

// AutoMonthly generates the previous month's report once per month,
// and only when that month saw any activity. It returns nil when
// nothing was generated.
func (s *ReportService) AutoMonthly(ctx context.Context) (*models.Report, error) {
	now := s.now()
	prevRef := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
	monthKey := prevRef.Format("2006-01")

	lastGenerated, err := store.Get(ctx, s.kv, KeyLastAutoReport, "")
	if err != nil {
		return nil, err
	}
	if lastGenerated == monthKey {
		return nil, nil
	}

	invoices, entries, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	r := metrics.BuildReport(models.ReportMonthly, invoices, entries, prevRef)
	if r.InvoicesCount == 0 && r.FuelEntriesCount == 0 {
		return nil, nil
	}
	r.ID = "auto-report-" + s.newID()
	r.GeneratedAt = now

	if err := s.append(ctx, r); err != nil {
		return nil, err
	}
	if _, err := store.Update(ctx, s.kv, KeyLastAutoReport, "", func(string) string {
		return monthKey
	}); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "monthly report auto-generated", "month", monthKey, "revenue", r.TotalRevenue)
	return &r, nil
}

// Reports returns all stored reports.
func (s *ReportService) Reports(ctx context.Context) ([]models.Report, error) {
	return store.Get(ctx, s.kv, KeyReports, []models.Report(nil))
}

func (s *ReportService) snapshot(ctx context.Context) ([]models.Invoice, []models.FuelEntry, error) {
	invoices, err := store.Get(ctx, s.kv, KeyInvoices, []models.Invoice(nil))
	if err != nil {
		return nil, nil, err
	}
	entries, err := store.Get(ctx, s.kv, KeyFuelEntries, []models.FuelEntry(nil))
	if err != nil {
		return nil, nil, err
	}
	return invoices, entries, nil
}

func (s *ReportService) append(ctx context.Context, r models.Report) error {
	_, err := store.Update(ctx, s.kv, KeyReports, []models.Report(nil), func(list []models.Report) []models.Report {
		return append(list, r)
	})
	return err
}
