package utils

import (
	"strconv"
	"time"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator that counts processed messages and measures how
// long the processing took. Results are partitioned by the message path and
// the result code.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ quorum.Decorator = (*Metrics)(nil)

// NewMetrics creates a Metrics decorator and registers its collectors with
// given registerer. Use prometheus.NewRegistry() to avoid collisions in tests.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quorum",
			Name:      "requests_total",
			Help:      "Number of processed messages.",
		}, []string{"mode", "path", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "quorum",
			Name:      "request_duration_seconds",
			Help:      "Time spent processing a message.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"mode", "path"}),
	}
	for _, c := range []prometheus.Collector{m.requests, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(errors.ErrHuman, err.Error())
		}
	}
	return m, nil
}

func (m *Metrics) Check(ctx quorum.Context, store quorum.KVStore, tx quorum.Tx, next quorum.Checker) (*quorum.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	m.observe("check", quorum.GetPath(tx), start, err)
	return res, err
}

func (m *Metrics) Deliver(ctx quorum.Context, store quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (*quorum.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	m.observe("deliver", quorum.GetPath(tx), start, err)
	return res, err
}

func (m *Metrics) observe(mode, path string, start time.Time, err error) {
	code := strconv.FormatUint(uint64(errors.Code(err)), 10)
	m.requests.WithLabelValues(mode, path, code).Inc()
	m.duration.WithLabelValues(mode, path).Observe(time.Since(start).Seconds())
}
