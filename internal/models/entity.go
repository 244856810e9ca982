// Package models defines the data entities tracked by the application:
// invoices, companies, drivers, vehicles, fuel entries and report
// snapshots. All syncable entities carry a globally unique string id
// assigned at creation and never reused.
package models

// Entity is implemented by every record that participates in
// local/remote synchronization. The merge layer relies on EntityID
// being unique within a collection, and Validate guards against
// half-formed documents arriving from the remote side.
type Entity interface {
	// EntityID returns the globally unique identifier of the record.
	EntityID() string

	// Validate reports whether the record carries every required field.
	Validate() error
}
