package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission results
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
	ResultFailed   = "failed"
)

// Remote write outcomes
const (
	OutcomeCreated = "created"
	OutcomeSkipped = "skipped"
	OutcomeError   = "error"
	OutcomeTimeout = "timeout"
)

// Outbound calls
const (
	CallToken  = "token"
	CallRecord = "record"
)

var (
	submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "visitor_submissions_total",
		Help: "Visitor submissions handled, by result.",
	}, []string{"result"})

	feishuWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "visitor_feishu_writes_total",
		Help: "Bitable record writes, by outcome.",
	}, []string{"outcome"})

	feishuCallSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "visitor_feishu_call_seconds",
		Help:    "Latency of outbound Feishu calls.",
		Buckets: prometheus.DefBuckets,
	}, []string{"call"})
)

func RecordSubmission(result string) {
	submissions.WithLabelValues(result).Inc()
}

func RecordFeishuWrite(outcome string) {
	feishuWrites.WithLabelValues(outcome).Inc()
}

// ObserveFeishuCall records the time elapsed since start for an outbound call.
func ObserveFeishuCall(call string, start time.Time) {
	feishuCallSeconds.WithLabelValues(call).Observe(time.Since(start).Seconds())
}
