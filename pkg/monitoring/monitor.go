package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// 金币经济业务指标
	CoinsCredited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coins_credited_total",
			Help: "Total coins credited to users, by transaction kind",
		},
		[]string{"kind"},
	)

	CoinsDebited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coins_debited_total",
			Help: "Total coins debited from users, by transaction kind",
		},
		[]string{"kind"},
	)

	RedemptionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redemptions_total",
			Help: "Redemption orders entering each status",
		},
		[]string{"status"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(CoinsCredited)
	prometheus.MustRegister(CoinsDebited)
	prometheus.MustRegister(RedemptionCounter)
}

// RecordCoinFlow 记录一笔金币流水，入账出账分开计数
func RecordCoinFlow(kind string, amount int) {
	if amount >= 0 {
		CoinsCredited.WithLabelValues(kind).Add(float64(amount))
	} else {
		CoinsDebited.WithLabelValues(kind).Add(float64(-amount))
	}
}

func RecordRedemption(status string) {
	RedemptionCounter.WithLabelValues(status).Inc()
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
