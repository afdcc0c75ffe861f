package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	BoardsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "trello_boards_created_total",
			Help: "Total boards created",
		},
	)
	BoardCreateRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trello_board_create_rejected_total",
			Help: "Board creations refused, by reason",
		},
		[]string{"reason"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trello_http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trello_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

func init() {
	prometheus.MustRegister(BoardsCreated)
	prometheus.MustRegister(BoardCreateRejected)
	prometheus.MustRegister(HTTPRequests)
	prometheus.MustRegister(HTTPDuration)
}
