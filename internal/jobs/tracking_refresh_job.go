package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"dispatch/internal/broadcast"
)

// refreshSchedule re-broadcasts every ten seconds. Frequent enough to keep
// ETAs current, rare enough not to hammer the read model.
const refreshSchedule = "*/10 * * * * *"

// TrackingRefreshJob periodically republishes the tracking snapshot of every
// subscribed order. Status transitions publish on their own; this job covers
// the quiet stretches in between so open streams never go stale.
type TrackingRefreshJob struct {
	broadcaster *broadcast.Broadcaster
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewTrackingRefreshJob creates the refresh job on top of the broadcaster.
func NewTrackingRefreshJob(broadcaster *broadcast.Broadcaster, logger *slog.Logger) *TrackingRefreshJob {
	return &TrackingRefreshJob{
		broadcaster: broadcaster,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "tracking_refresh_job"),
	}
}

// Start begins the periodic refresh.
func (j *TrackingRefreshJob) Start() error {
	_, err := j.cron.AddFunc(refreshSchedule, func() {
		ctx := context.Background()
		for _, orderID := range j.broadcaster.SubscribedOrders() {
			j.broadcaster.Publish(ctx, orderID)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Tracking refresh job started (running every ten seconds)")
	return nil
}

// Stop stops the refresh job.
func (j *TrackingRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Tracking refresh job stopped")
}
