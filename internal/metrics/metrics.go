package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"weddash/internal/store"
)

// Access outcomes.
const (
	OutcomeGranted      = "granted"
	OutcomeDenied       = "denied"
	OutcomeNotFound     = "not_found"
	OutcomeOwnerPreview = "owner_preview"
	OutcomeSession      = "session"
)

// Dashboard load results.
const (
	LoadOK    = "loaded"
	LoadError = "error"
)

var (
	accessTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "weddash_dashboard_access_total",
		Help: "Shared dashboard access decisions by outcome",
	}, []string{"outcome"})

	loadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "weddash_dashboard_loads_total",
		Help: "Shared dashboard data loads by result",
	}, []string{"result"})

	loadDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "weddash_dashboard_load_seconds",
		Help:    "Time to fetch and aggregate a shared dashboard",
		Buckets: prometheus.DefBuckets,
	})

	malformedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "weddash_malformed_budget_fields_total",
		Help: "Stored budget amounts that could not be read as numbers and were counted as zero",
	}, []string{"field"})

	publishedDesc = prometheus.NewDesc(
		"weddash_published_dashboards",
		"Number of dashboards currently published in the public share index",
		nil,
		nil,
	)
)

// PublishedCollector is a custom Prometheus collector that counts published
// dashboards in the store on each scrape.
type PublishedCollector struct {
	docs store.Documents
	log  *zap.Logger
}

// Describe sends the metric descriptor to the channel.
func (c *PublishedCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- publishedDesc
}

// Collect counts the public share index and emits its size as a gauge.
func (c *PublishedCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	n, err := countPublished(ctx, c.docs)
	if err != nil {
		c.log.Error("failed to collect published dashboard metrics", zap.Error(err))
		return
	}
	ch <- prometheus.MustNewConstMetric(publishedDesc, prometheus.GaugeValue, float64(n))
}

// childCounter is implemented by stores that can count without loading documents.
type childCounter interface {
	CountChildren(ctx context.Context, path string) (int, error)
}

func countPublished(ctx context.Context, docs store.Documents) (int, error) {
	if cc, ok := docs.(childCounter); ok {
		return cc.CountChildren(ctx, store.PublicDashboardsRoot)
	}
	children, err := docs.List(ctx, store.PublicDashboardsRoot)
	return len(children), err
}

var initOnce sync.Once

// Init registers all collectors with the default registry.
// Must be called once at startup.
func Init(docs store.Documents, log *zap.Logger) {
	initOnce.Do(func() {
		prometheus.MustRegister(
			accessTotal,
			loadsTotal,
			loadDuration,
			malformedTotal,
			&PublishedCollector{docs: docs, log: log},
		)
	})
}

// RecordAccess counts one access decision.
func RecordAccess(outcome string) {
	accessTotal.WithLabelValues(outcome).Inc()
}

// RecordLoad counts one dashboard load and its duration.
func RecordLoad(result string, elapsed time.Duration) {
	loadsTotal.WithLabelValues(result).Inc()
	loadDuration.Observe(elapsed.Seconds())
}

// RecordMalformedField counts a budget amount that fell back to zero.
func RecordMalformedField(field string) {
	malformedTotal.WithLabelValues(field).Inc()
}
