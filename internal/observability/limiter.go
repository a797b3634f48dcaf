package observability

import (
	"context"
	"time"

	"dogtalk/internal/ratelimit"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Outcome attribute values for ratelimit.checks
const (
	OutcomeAllowed = "allowed"
	OutcomeDenied  = "denied"
)

// InstrumentedLimiter wraps a ratelimit.Limiter with OpenTelemetry metrics:
// a check counter split by outcome and exceeded window, a histogram of the
// retry hints handed to denied clients, and a gauge of live buckets.
type InstrumentedLimiter struct {
	inner      ratelimit.Limiter
	checks     metric.Int64Counter
	retryAfter metric.Int64Histogram
}

// InstrumentOption configures an InstrumentedLimiter.
type InstrumentOption func(*instrumentOptions)

type instrumentOptions struct {
	meterProvider metric.MeterProvider
}

// WithMeterProvider records into mp instead of the global meter provider.
func WithMeterProvider(mp metric.MeterProvider) InstrumentOption {
	return func(o *instrumentOptions) {
		o.meterProvider = mp
	}
}

// NewInstrumentedLimiter creates a limiter wrapper. When store is non-nil its
// bucket count is reported as an observable gauge.
func NewInstrumentedLimiter(inner ratelimit.Limiter, store *ratelimit.BucketStore, opts ...InstrumentOption) (*InstrumentedLimiter, error) {
	o := instrumentOptions{meterProvider: otel.GetMeterProvider()}
	for _, opt := range opts {
		opt(&o)
	}
	meter := o.meterProvider.Meter("dogtalk/ratelimit")

	checks, err := meter.Int64Counter(
		"ratelimit.checks",
		metric.WithDescription("Number of rate limit admission checks"),
		metric.WithUnit("{check}"),
	)
	if err != nil {
		return nil, err
	}

	retryAfter, err := meter.Int64Histogram(
		"ratelimit.retry_after",
		metric.WithDescription("Retry hint returned to throttled clients"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(1, 5, 15, 30, 60, 300, 3600, 21600, 86400),
	)
	if err != nil {
		return nil, err
	}

	if store != nil {
		_, err = meter.Int64ObservableGauge(
			"ratelimit.buckets",
			metric.WithDescription("Number of client buckets currently held in memory"),
			metric.WithUnit("{bucket}"),
			metric.WithInt64Callback(func(_ context.Context, obs metric.Int64Observer) error {
				obs.Observe(int64(store.Len()))
				return nil
			}),
		)
		if err != nil {
			return nil, err
		}
	}

	return &InstrumentedLimiter{
		inner:      inner,
		checks:     checks,
		retryAfter: retryAfter,
	}, nil
}

// Check implements ratelimit.Limiter.
func (l *InstrumentedLimiter) Check(key string, now time.Time) ratelimit.Result {
	res := l.inner.Check(key, now)

	ctx := context.Background()
	outcome := OutcomeAllowed
	if !res.Allowed {
		outcome = OutcomeDenied
		l.retryAfter.Record(ctx, int64(res.RetryAfterSeconds),
			metric.WithAttributes(attribute.String("window", string(res.Exceeded))))
	}

	l.checks.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
		attribute.String("window", windowLabel(res.Exceeded)),
	))

	return res
}

func windowLabel(w ratelimit.Window) string {
	if w == ratelimit.WindowNone {
		return "none"
	}
	return string(w)
}

var _ ratelimit.Limiter = (*InstrumentedLimiter)(nil)
