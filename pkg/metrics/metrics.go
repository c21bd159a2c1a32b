package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Notification delivery is advisory: failures never reach callers, so
// these counters are the only place besides logs where they show up.
var (
	NotificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mingle_notification_enqueue_failures_total",
		Help: "Notification records that could not be persisted.",
	})

	StoriesSwept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mingle_stories_swept_total",
		Help: "Expired stories hard-deleted by the background sweep.",
	})

	SweepRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mingle_story_sweep_runs_total",
		Help: "Executions of the story expiry sweep.",
	})
)
