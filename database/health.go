// File: /database/health.go
package database

import "context"

// Pinger reports whether the database answers. *Database implements it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthReporter receives the outcome of each health ping.
type HealthReporter interface {
	SetDatabaseUp(up bool)
}

var _ Pinger = (*Database)(nil)
