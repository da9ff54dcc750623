package monitor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics 打赏业务指标
type BusinessMetrics struct {
	GratuitySentTotal      prometheus.Counter
	GratuityAmountTotal    prometheus.Counter
	SendFailuresTotal      *prometheus.CounterVec
	ExecutionDuration      prometheus.Histogram
	QueryFailuresTotal     *prometheus.CounterVec
	StatsRefreshTotal      prometheus.Counter
	VaultGratuityCountLast prometheus.Gauge
}

// Business 未调用 Init 时为 nil，下面的 Record* 会直接跳过
var Business *BusinessMetrics

// InitBusinessMetrics 初始化业务指标
func InitBusinessMetrics() {
	Business = &BusinessMetrics{
		GratuitySentTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gratuity_sent_total",
			Help: "Number of gratuities executed successfully",
		}),
		GratuityAmountTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gratuity_amount_sui_total",
			Help: "Total SUI sent as gratuities",
		}),
		SendFailuresTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gratuity_send_failures_total",
			Help: "Failed gratuity sends by reason",
		}, []string{"reason"}),
		ExecutionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gratuity_execution_duration_seconds",
			Help:    "Duration of sponsored execution calls",
			Buckets: prometheus.DefBuckets,
		}),
		QueryFailuresTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gratuity_query_failures_total",
			Help: "Failed ledger queries by query name",
		}, []string{"query"}),
		StatsRefreshTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gratuity_stats_refresh_total",
			Help: "Vault stats reads that went to the ledger",
		}),
		VaultGratuityCountLast: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "gratuity_vault_count",
			Help: "Last observed gratuity_count of the vault",
		}),
	}
}

func RecordSent(amountSui float64, took time.Duration) {
	if Business == nil {
		return
	}
	Business.GratuitySentTotal.Inc()
	Business.GratuityAmountTotal.Add(amountSui)
	Business.ExecutionDuration.Observe(took.Seconds())
}

func RecordSendFailure(reason string) {
	if Business == nil {
		return
	}
	Business.SendFailuresTotal.WithLabelValues(reason).Inc()
}

func RecordQueryFailure(query string) {
	if Business == nil {
		return
	}
	Business.QueryFailuresTotal.WithLabelValues(query).Inc()
}

func RecordStatsRefresh(count uint64) {
	if Business == nil {
		return
	}
	Business.StatsRefreshTotal.Inc()
	Business.VaultGratuityCountLast.Set(float64(count))
}
