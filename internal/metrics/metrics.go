package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bakery_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	Recommendations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bakery_recommendations_total",
			Help: "Recommendation requests by scene and outcome status",
		},
		[]string{"scene", "status"},
	)

	ComboSubsetsEvaluated = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bakery_combo_subsets_evaluated",
			Help:    "Number of candidate subsets enumerated per combo search",
			Buckets: []float64{1, 10, 50, 100, 200, 300},
		},
	)

	PipelineNodeErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bakery_pipeline_node_errors_total",
			Help: "Pipeline node execution failures",
		},
		[]string{"scene", "node"},
	)

	CatalogItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bakery_catalog_items",
			Help: "Number of menu items loaded into the catalog",
		},
	)
)

// ObserveHTTP 记录一次 HTTP 请求耗时
func ObserveHTTP(method, route string, status int, d time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// RecordRecommendation 记录一次推荐结果
func RecordRecommendation(scene, status string) {
	Recommendations.WithLabelValues(scene, status).Inc()
}

// RecordComboSearch 记录组合搜索的枚举规模
func RecordComboSearch(evaluated int) {
	ComboSubsetsEvaluated.Observe(float64(evaluated))
}

// RecordNodeError 记录节点失败
func RecordNodeError(scene, node string) {
	PipelineNodeErrors.WithLabelValues(scene, node).Inc()
}
