package jobs

import (
	"context"
	"log/slog"

	"deliverybroker/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// CacheRebuildJob periodically reloads the in-route cache from the database.
// The cache self-heals: an entry lost to a Redis restart or a failed eviction
// is corrected on the next rebuild.
type CacheRebuildJob struct {
	handler commands.RebuildCacheCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewCacheRebuildJob creates a new job for rebuilding the in-route cache.
func NewCacheRebuildJob(handler commands.RebuildCacheCommandHandler, logger *slog.Logger) *CacheRebuildJob {
	return &CacheRebuildJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "cache_rebuild_job"),
	}
}

// Start begins the cache rebuild job to run every minute.
func (j *CacheRebuildJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewRebuildCacheCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Cache rebuild failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Cache rebuild job started (running every minute)")
	return nil
}

// Stop stops the cache rebuild job.
func (j *CacheRebuildJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Cache rebuild job stopped")
}
