package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sudo-hablu/chatter/internal/domain"
)

var (
	MessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chatter_messages_sent_total",
			Help: "Total number of messages sent by the local user",
		},
	)

	RepliesDelivered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chatter_replies_delivered_total",
			Help: "Total number of simulated counterparty replies",
		},
	)

	OTPChallenges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatter_otp_challenges_total",
			Help: "Verification challenge outcomes",
		},
		[]string{"result"},
	)

	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatter_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chatter_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// OTP challenge results.
const (
	OTPStarted  = "started"
	OTPResent   = "resent"
	OTPVerified = "verified"
	OTPRejected = "rejected"
)

// RegisterGauges exposes live counts read on every scrape. Call once.
func RegisterGauges(sessions, connections func() int) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "chatter_conversation_sessions_active",
		Help: "Open conversation sessions",
	}, func() float64 { return float64(sessions()) })

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "chatter_websocket_connections_active",
		Help: "Connected conversation stream clients",
	}, func() float64 { return float64(connections()) })
}

// ObserveEvent counts appended messages by who wrote them.
func ObserveEvent(e domain.Event) {
	if e.Type != domain.EventMessageAppended || e.Message == nil {
		return
	}
	if e.Message.IsSelf() {
		MessagesSent.Inc()
	} else {
		RepliesDelivered.Inc()
	}
}

// GinMiddleware records request counts and latency by route.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HttpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		HttpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
