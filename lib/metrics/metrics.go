package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	IDsAllocated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glcontext_ids_allocated_total",
		Help: "Total number of context IDs handed out",
	})
	ProfileProbes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glcontext_profile_probes_total",
		Help: "Total number of profile detections, by the tier that decided and the detected profile",
	}, []string{"tier", "result"})
	ContextsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glcontext_contexts_created_total",
		Help: "Total number of contexts created, by granted profile",
	}, []string{"profile"})
	ContextsDestroyed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glcontext_contexts_destroyed_total",
		Help: "Total number of contexts destroyed",
	})
)

// Handler should usually be mounted at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
