package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AppointmentsScheduledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "autoservice_appointments_scheduled_total",
		Help: "Total number of appointments successfully created.",
	})

	SchedulingRejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "autoservice_scheduling_rejections_total",
		Help: "Appointment proposals rejected, by failure kind.",
	},
		[]string{"kind"},
	)

	ServiceRecordsOpenedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "autoservice_service_records_opened_total",
		Help: "Total number of service records opened for an appointment.",
	})

	ServiceRecordsCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "autoservice_service_records_completed_total",
		Help: "Total number of service records marked completed.",
	})

	StoreErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "autoservice_store_errors_total",
		Help: "Storage failures by store operation.",
	},
		[]string{"operation"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "autoservice_http_requests_total",
		Help: "HTTP requests by route and status code.",
	},
		[]string{"method", "route", "status"},
	)

	AuditEventsDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "autoservice_audit_events_dropped_total",
		Help: "Audit events dropped because the queue was full.",
	})
)
