package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for script-backend and chat flows.
type BookingMetrics struct {
	scriptCalls   *prometheus.CounterVec
	scriptLatency *prometheus.HistogramVec
	chatReplies   *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		scriptCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "prenota",
			Subsystem: "script",
			Name:      "calls_total",
			Help:      "Total calls to the Apps Script booking backend",
		}, []string{"action", "outcome"}),
		scriptLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "prenota",
			Subsystem: "script",
			Name:      "call_latency_seconds",
			Help:      "Latency of Apps Script backend calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"action"}),
		chatReplies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "prenota",
			Subsystem: "chat",
			Name:      "replies_total",
			Help:      "Total chat replies by source",
		}, []string{"source"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.scriptCalls, m.scriptLatency, m.chatReplies)
	return m
}

func (m *BookingMetrics) ObserveScriptCall(action, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.scriptCalls.WithLabelValues(action, outcome).Inc()
	m.scriptLatency.WithLabelValues(action).Observe(seconds)
}

func (m *BookingMetrics) ObserveChatReply(source string) {
	if m == nil {
		return
	}
	m.chatReplies.WithLabelValues(source).Inc()
}
