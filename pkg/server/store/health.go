package store

// HealthStore provides health check operations
type HealthStore interface {
	// CheckConnectivity verifies database connectivity
	CheckConnectivity() error

	// Counts returns row counts shown on the diagnostic console
	Counts() (accounts int64, contents int64, sessions int64, err error)
}
