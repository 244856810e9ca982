// Package services implements the application operations on top of
// the local store: issuing and paying invoices, recording
// refuellings, fleet management and report generation. Every write
// goes through the store so the sync layer picks it up; nothing here
// talks to the remote directly.
package services

// Store keys of the collections. The first four double as the remote
// collection names; companies and reports stay local-only.
const (
	KeyInvoices    = "invoices"
	KeyFuelEntries = "fuelEntries"
	KeyVehicles    = "vehicles"
	KeyDrivers     = "drivers"

	KeyCompanies      = "companies"
	KeyReports        = "generatedReports"
	KeyLastAutoReport = "lastMonthlyReportGenerated"
)

// SyncedCollections lists the collections mirrored to the remote, in
// the order their orchestrators are started.
func SyncedCollections() []string {
	return []string{KeyInvoices, KeyFuelEntries, KeyVehicles, KeyDrivers}
}
