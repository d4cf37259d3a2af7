package metrics

import (
	"context"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"

	"degenindex/pkg/logger"
)

// CustomCollector scrapes corpus-level gauges from the databases on demand
type CustomCollector struct {
	log        *logger.Logger
	postgres   *sqlx.DB
	clickhouse driver.Conn

	totalClassified *prometheus.Desc
	totalSummaries  *prometheus.Desc
	moodBreakdown   *prometheus.Desc
	latestIndex     *prometheus.Desc
}

// NewCustomCollector creates a new database-backed metrics collector
func NewCustomCollector(log *logger.Logger, postgres *sqlx.DB, clickhouse driver.Conn) *CustomCollector {
	return &CustomCollector{
		log:        log,
		postgres:   postgres,
		clickhouse: clickhouse,

		totalClassified: prometheus.NewDesc(
			"degenindex_total_classified_comments",
			"Total number of classified comments in the archive",
			nil, nil,
		),
		totalSummaries: prometheus.NewDesc(
			"degenindex_total_batch_summaries",
			"Total number of persisted batch summaries",
			nil, nil,
		),
		moodBreakdown: prometheus.NewDesc(
			"degenindex_mood_comments_24h",
			"Comments per mood over the last 24h",
			[]string{"mood"}, nil,
		),
		latestIndex: prometheus.NewDesc(
			"degenindex_index_latest",
			"Latest persisted degen index value",
			[]string{"rating"}, nil,
		),
	}
}

// Describe implements prometheus.Collector
func (c *CustomCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalClassified
	ch <- c.totalSummaries
	ch <- c.moodBreakdown
	ch <- c.latestIndex
}

// Collect implements prometheus.Collector
func (c *CustomCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c.collectArchiveTotals(ctx, ch)
	c.collectMoodBreakdown(ctx, ch)
	c.collectSummaryTotals(ctx, ch)
	c.collectLatestIndex(ctx, ch)
}

func (c *CustomCollector) collectArchiveTotals(ctx context.Context, ch chan<- prometheus.Metric) {
	var count uint64
	row := c.clickhouse.QueryRow(ctx, "SELECT count() FROM classified_comments")
	if err := row.Scan(&count); err != nil {
		c.log.Errorw("Failed to collect archive total metric", "error", err)
		return
	}

	ch <- prometheus.MustNewConstMetric(
		c.totalClassified,
		prometheus.GaugeValue,
		float64(count),
	)
}

func (c *CustomCollector) collectMoodBreakdown(ctx context.Context, ch chan<- prometheus.Metric) {
	rows, err := c.clickhouse.Query(ctx, `
		SELECT primary_mood, count() AS cnt
		FROM classified_comments
		WHERE classified_at > now() - INTERVAL 24 HOUR
		GROUP BY primary_mood
	`)
	if err != nil {
		c.log.Errorw("Failed to collect mood breakdown", "error", err)
		return
	}
	defer rows.Close()

	for rows.Next() {
		var mood string
		var cnt uint64
		if err := rows.Scan(&mood, &cnt); err != nil {
			c.log.Errorw("Failed to scan mood breakdown row", "error", err)
			return
		}
		ch <- prometheus.MustNewConstMetric(
			c.moodBreakdown,
			prometheus.GaugeValue,
			float64(cnt),
			mood,
		)
	}
}

func (c *CustomCollector) collectSummaryTotals(ctx context.Context, ch chan<- prometheus.Metric) {
	var count int
	err := c.postgres.GetContext(ctx, &count, "SELECT COUNT(*) FROM batch_summaries")
	if err != nil {
		c.log.Errorw("Failed to collect summary total metric", "error", err)
		return
	}

	ch <- prometheus.MustNewConstMetric(
		c.totalSummaries,
		prometheus.GaugeValue,
		float64(count),
	)
}

func (c *CustomCollector) collectLatestIndex(ctx context.Context, ch chan<- prometheus.Metric) {
	type reading struct {
		Value  int    `db:"value"`
		Rating string `db:"rating"`
	}

	var r reading
	err := c.postgres.GetContext(ctx, &r, `
		SELECT value, rating
		FROM degen_index
		ORDER BY timestamp DESC
		LIMIT 1
	`)
	if err != nil {
		// No readings yet is normal on a fresh install
		return
	}

	ch <- prometheus.MustNewConstMetric(
		c.latestIndex,
		prometheus.GaugeValue,
		float64(r.Value),
		r.Rating,
	)
}

// RegisterCustomCollector registers the custom collector
func RegisterCustomCollector(collector *CustomCollector) {
	prometheus.MustRegister(collector)
}
