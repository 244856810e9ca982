// Package cli wires the application together behind a cobra command
// tree: local store, sync orchestrators, services and the derived
// metrics views.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/OMEGA178/faktury/internal/config"
	"github.com/OMEGA178/faktury/internal/distance"
	"github.com/OMEGA178/faktury/internal/filex"
	"github.com/OMEGA178/faktury/internal/imagestore"
	"github.com/OMEGA178/faktury/internal/logging"
	"github.com/OMEGA178/faktury/internal/models"
	"github.com/OMEGA178/faktury/internal/remote"
	"github.com/OMEGA178/faktury/internal/services"
	"github.com/OMEGA178/faktury/internal/store"
	"github.com/OMEGA178/faktury/internal/syncer"

	_ "modernc.org/sqlite"
)

// App holds the wired application.
type App struct {
	Cfg *config.Config
	Log logging.Logger

	db     *sql.DB
	KV     *store.KV
	Mirror remote.Mirror

	Invoices  *services.InvoiceService
	Fuel      *services.FuelService
	Vehicles  *services.VehicleService
	Drivers   *services.DriverService
	Companies *services.CompanyService
	Reports   *services.ReportService

	Estimator distance.Estimator
	Images    *imagestore.Store

	invoiceSync *syncer.Orchestrator[models.Invoice]
	fuelSync    *syncer.Orchestrator[models.FuelEntry]
	vehicleSync *syncer.Orchestrator[models.Vehicle]
	driverSync  *syncer.Orchestrator[models.Driver]
	watcher     *syncer.Watcher
}

// NewApp builds the application from cfg.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := newLogger(cfg)

	if _, err := filex.EnsureParentDir(cfg.DatabasePath); err != nil {
		return nil, fmt.Errorf("preparing data directory: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	kv, err := store.Open(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing store: %w", err)
	}

	var mirror remote.Mirror = remote.Disabled{}
	if cfg.FirebaseProjectID != "" {
		m, err := remote.NewFirestoreMirror(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsFile, clientOrigin(cfg), log)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("connecting to firestore: %w", err)
		}
		mirror = m
	}

	var estimator distance.Estimator = distance.Disabled{}
	if cfg.DistanceEndpoint != "" {
		estimator = distance.NewHTTPEstimator(cfg.DistanceEndpoint, log)
	}

	app := &App{
		Cfg:    cfg,
		Log:    log,
		db:     db,
		KV:     kv,
		Mirror: mirror,

		Invoices:  services.NewInvoiceService(kv, log),
		Fuel:      services.NewFuelService(kv, log),
		Vehicles:  services.NewVehicleService(kv, log),
		Drivers:   services.NewDriverService(kv, log),
		Companies: services.NewCompanyService(kv),
		Reports:   services.NewReportService(kv, log),

		Estimator: estimator,
		Images: imagestore.New(imagestore.Config{
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		}, log),
	}
	return app, nil
}

// StartSync starts one orchestrator per synced collection plus the
// connectivity watcher. The watcher goroutine stops with ctx.
func (a *App) StartSync(ctx context.Context) error {
	a.invoiceSync = syncer.New[models.Invoice](a.orchestratorConfig(services.KeyInvoices), a.KV, a.Mirror, a.Log)
	a.fuelSync = syncer.New[models.FuelEntry](a.orchestratorConfig(services.KeyFuelEntries), a.KV, a.Mirror, a.Log)
	a.vehicleSync = syncer.New[models.Vehicle](a.orchestratorConfig(services.KeyVehicles), a.KV, a.Mirror, a.Log)
	a.driverSync = syncer.New[models.Driver](a.orchestratorConfig(services.KeyDrivers), a.KV, a.Mirror, a.Log)

	if err := a.invoiceSync.Start(ctx); err != nil {
		return err
	}
	if err := a.fuelSync.Start(ctx); err != nil {
		return err
	}
	if err := a.vehicleSync.Start(ctx); err != nil {
		return err
	}
	if err := a.driverSync.Start(ctx); err != nil {
		return err
	}

	a.watcher = syncer.NewWatcher(a.Mirror, a.Log,
		a.invoiceSync, a.fuelSync, a.vehicleSync, a.driverSync)
	go a.watcher.Run(ctx, a.Cfg.OnlineCheckInterval)

	return nil
}

// PushLocal writes the current local snapshot of one collection to
// the remote before a short-lived command exits. Without it a
// mutation would sit in the local store until the sync daemon runs.
// A no-op when no remote is configured.
func (a *App) PushLocal(ctx context.Context, collection string) {
	if !a.Mirror.Enabled() {
		return
	}
	cfg := a.orchestratorConfig(collection)
	switch collection {
	case services.KeyInvoices:
		syncer.PushOnce[models.Invoice](ctx, cfg, a.KV, a.Mirror, a.Log)
	case services.KeyFuelEntries:
		syncer.PushOnce[models.FuelEntry](ctx, cfg, a.KV, a.Mirror, a.Log)
	case services.KeyVehicles:
		syncer.PushOnce[models.Vehicle](ctx, cfg, a.KV, a.Mirror, a.Log)
	case services.KeyDrivers:
		syncer.PushOnce[models.Driver](ctx, cfg, a.KV, a.Mirror, a.Log)
	}
}

// SyncStatuses returns the per-collection status lines.
func (a *App) SyncStatuses() map[string]syncer.Status {
	out := make(map[string]syncer.Status, 4)
	if a.invoiceSync != nil {
		out[services.KeyInvoices], _ = a.invoiceSync.Status()
	}
	if a.fuelSync != nil {
		out[services.KeyFuelEntries], _ = a.fuelSync.Status()
	}
	if a.vehicleSync != nil {
		out[services.KeyVehicles], _ = a.vehicleSync.Status()
	}
	if a.driverSync != nil {
		out[services.KeyDrivers], _ = a.driverSync.Status()
	}
	return out
}

// Close stops the orchestrators and releases the database.
func (a *App) Close() {
	if a.invoiceSync != nil {
		a.invoiceSync.Close()
	}
	if a.fuelSync != nil {
		a.fuelSync.Close()
	}
	if a.vehicleSync != nil {
		a.vehicleSync.Close()
	}
	if a.driverSync != nil {
		a.driverSync.Close()
	}
	if c, ok := a.Mirror.(io.Closer); ok {
		_ = c.Close()
	}
	_ = a.db.Close()
}

// clientOrigin identifies this machine in the sync metadata written
// to the remote.
func clientOrigin(cfg *config.Config) string {
	if cfg.Origin != "" {
		return cfg.Origin
	}
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "faktury-cli"
	}
	return host
}

func (a *App) orchestratorConfig(collection string) syncer.Config {
	return syncer.Config{
		Collection:   collection,
		Debounce:     a.Cfg.SyncDebounce,
		WriteTimeout: a.Cfg.SyncWriteTimeout,
	}
}

func newLogger(cfg *config.Config) logging.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var w io.Writer = os.Stderr
	if cfg.LogPretty {
		w = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	zl := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return logging.NewZerologLogger(zl)
}
