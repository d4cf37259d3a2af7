package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Worker metrics
	WorkerExecutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "degenindex_worker_executions_total",
			Help: "Total number of worker executions",
		},
		[]string{"worker", "status"}, // status: success|error
	)

	WorkerDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "degenindex_worker_duration_seconds",
			Help:    "Worker execution duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"worker"},
	)

	WorkerLastRun = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "degenindex_worker_last_run_timestamp",
			Help: "Unix timestamp of last worker execution",
		},
		[]string{"worker"},
	)

	// Classification metrics
	CommentsClassified = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "degenindex_comments_classified_total",
			Help: "Total number of comments classified",
		},
		[]string{"classifier", "direction", "mood"},
	)

	ClassificationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "degenindex_classification_duration_seconds",
			Help:    "Single comment classification duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5, 15, 30},
		},
		[]string{"classifier"},
	)

	BatchesSummarized = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "degenindex_batches_summarized_total",
			Help: "Total number of comment batches aggregated",
		},
		[]string{"subreddit"},
	)

	BatchSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "degenindex_batch_size_comments",
			Help:    "Number of comments per aggregated batch",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
		[]string{"subreddit"},
	)

	DegenIndexValue = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "degenindex_index_value",
			Help: "Latest composite degen index reading (0-100)",
		},
	)

	// Platform API metrics
	RedditAPICalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "degenindex_reddit_api_calls_total",
			Help: "Total number of Reddit API calls",
		},
		[]string{"endpoint", "status"}, // status: success|error|rate_limited|not_found
	)

	RedditAPILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "degenindex_reddit_api_latency_seconds",
			Help:    "Reddit API latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"endpoint"},
	)

	// Database metrics
	DBQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "degenindex_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"database", "operation", "status"}, // database: postgres|clickhouse|redis
	)

	DBQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "degenindex_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"database", "operation"},
	)

	// Event pipeline metrics
	KafkaMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "degenindex_kafka_messages_total",
			Help: "Total Kafka messages produced/consumed",
		},
		[]string{"topic", "direction", "status"}, // direction: produce|consume
	)

	// Live stream metrics
	StreamClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "degenindex_stream_clients",
			Help: "Current number of connected stream subscribers",
		},
	)

	StreamDisconnects = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "degenindex_stream_disconnects_total",
			Help: "Total stream subscriber disconnects",
		},
		[]string{"reason"}, // reason: closed|slow|error
	)
)

// Init registers all metrics with Prometheus
func Init() {
	// Worker metrics
	prometheus.MustRegister(WorkerExecutions)
	prometheus.MustRegister(WorkerDuration)
	prometheus.MustRegister(WorkerLastRun)

	// Classification metrics
	prometheus.MustRegister(CommentsClassified)
	prometheus.MustRegister(ClassificationDuration)
	prometheus.MustRegister(BatchesSummarized)
	prometheus.MustRegister(BatchSize)
	prometheus.MustRegister(DegenIndexValue)

	// Platform API metrics
	prometheus.MustRegister(RedditAPICalls)
	prometheus.MustRegister(RedditAPILatency)

	// Database metrics
	prometheus.MustRegister(DBQueries)
	prometheus.MustRegister(DBQueryDuration)

	// Event pipeline metrics
	prometheus.MustRegister(KafkaMessages)

	// Live stream metrics
	prometheus.MustRegister(StreamClients)
	prometheus.MustRegister(StreamDisconnects)
}

// Handler returns Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordWorkerExecution records a worker execution
func RecordWorkerExecution(worker string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	WorkerExecutions.WithLabelValues(worker, status).Inc()
	WorkerDuration.WithLabelValues(worker).Observe(duration.Seconds())
	WorkerLastRun.WithLabelValues(worker).SetToCurrentTime()
}

// RecordClassification records a single classified comment
func RecordClassification(classifier, direction, mood string, duration time.Duration) {
	CommentsClassified.WithLabelValues(classifier, direction, mood).Inc()
	ClassificationDuration.WithLabelValues(classifier).Observe(duration.Seconds())
}

// RecordBatchSummary records one aggregated batch
func RecordBatchSummary(subreddit string, size int) {
	BatchesSummarized.WithLabelValues(subreddit).Inc()
	BatchSize.WithLabelValues(subreddit).Observe(float64(size))
}

// SetDegenIndex publishes the latest index reading
func SetDegenIndex(value int) {
	DegenIndexValue.Set(float64(value))
}

// RecordRedditRequest records a Reddit API call
func RecordRedditRequest(endpoint string, statusCode int, latency time.Duration) {
	var status string
	switch {
	case statusCode == http.StatusOK:
		status = "success"
	case statusCode == http.StatusTooManyRequests:
		status = "rate_limited"
	case statusCode == http.StatusNotFound:
		status = "not_found"
	case statusCode == 0:
		status = "error"
	default:
		status = strconv.Itoa(statusCode)
	}

	RedditAPICalls.WithLabelValues(endpoint, status).Inc()
	RedditAPILatency.WithLabelValues(endpoint).Observe(latency.Seconds())
}

// RecordDBQuery records a database query
func RecordDBQuery(database, operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	DBQueries.WithLabelValues(database, operation, status).Inc()
	DBQueryDuration.WithLabelValues(database, operation).Observe(duration.Seconds())
}

// RecordKafkaMessage records one produced or consumed message
func RecordKafkaMessage(topic, direction string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	KafkaMessages.WithLabelValues(topic, direction, status).Inc()
}
