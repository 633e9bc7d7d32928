// File: /jobs/database_health_job.go
package jobs

import (
	"context"
	"sync"
	"time"
	"tricycle-api/database"

	"github.com/rs/zerolog"
)

// DatabaseHealthJob pings the database on a fixed interval and reports
// whether it answered.
type DatabaseHealthJob struct {
	db       database.Pinger
	reporter database.HealthReporter
	log      zerolog.Logger
	timeout  time.Duration
	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
}

// NewDatabaseHealthJob creates a new database health job
func NewDatabaseHealthJob(db database.Pinger, reporter database.HealthReporter, log zerolog.Logger, interval, timeout time.Duration) *DatabaseHealthJob {
	return &DatabaseHealthJob{
		db:       db,
		reporter: reporter,
		log:      log.With().Str("job", "database_health").Logger(),
		timeout:  timeout,
		ticker:   time.NewTicker(interval),
		done:     make(chan struct{}),
	}
}

// Start begins the health checks
func (j *DatabaseHealthJob) Start() {
	j.log.Info().Msg("database health job started")

	go func() {
		// Run immediately on start
		j.Check(context.Background())

		for {
			select {
			case <-j.ticker.C:
				j.Check(context.Background())
			case <-j.done:
				j.log.Info().Msg("database health job stopped")
				return
			}
		}
	}()
}

// Stop stops the health checks. It never blocks and is safe to call more
// than once, or without Start.
func (j *DatabaseHealthJob) Stop() {
	j.stopOnce.Do(func() {
		j.ticker.Stop()
		close(j.done)
	})
}

// Check pings once and reports the result.
func (j *DatabaseHealthJob) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	err := j.db.Ping(ctx)
	j.reporter.SetDatabaseUp(err == nil)
	if err != nil {
		j.log.Error().Err(err).Msg("database ping failed")
		return err
	}

	j.log.Debug().Msg("database ping succeeded")
	return nil
}
