package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	PagesFetchedTotal   prometheus.Counter
	ItemsInsertedTotal  prometheus.Counter
	FetchDuration       *prometheus.HistogramVec
	CrawlStopsTotal     *prometheus.CounterVec
)

func Init() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests served by the ops endpoint.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests served by the ops endpoint.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	PagesFetchedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pages_fetched_total",
			Help: "Total number of listing pages fetched successfully.",
		},
	)

	ItemsInsertedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "items_inserted_total",
			Help: "Total number of item names newly added to the catalog.",
		},
	)

	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fetch_duration_seconds",
			Help:    "Duration of listing page fetches.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"status"}, // status: success, failure
	)

	CrawlStopsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crawl_stops_total",
			Help: "Crawl runs ended, by stop cause.",
		},
		[]string{"cause"},
	)
}
