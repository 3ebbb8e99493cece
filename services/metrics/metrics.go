package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	Registrations = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "mstc_registrations_total", Help: "Total event registrations"},
	)
	CheckpointSubmissions = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "mstc_checkpoint_submissions_total", Help: "Total checkpoint submissions"},
	)
	DomainAssignments = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "mstc_domain_assignments_total", Help: "Total mentorship domain assignments"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "mstc_http_requests_total", Help: "Total HTTP requests by method and status"},
		[]string{"method", "status"},
	)
)

func Register() {
	prometheus.MustRegister(Registrations, CheckpointSubmissions, DomainAssignments, HTTPRequests)
}
