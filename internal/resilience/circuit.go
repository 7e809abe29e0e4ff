// Package resilience guards outbound calls from the receipt API, currently
// the email reputation vendor and the SMTP relay, with a failure-ratio
// circuit breaker and retry backoff.
package resilience

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// ErrOpenCircuit is returned when the breaker refuses a request.
var ErrOpenCircuit = errors.New("resilience: circuit breaker open")

var nopLogger = zerolog.Nop()

// State is the breaker state machine position.
type State int

const (
	// Closed admits everything and counts outcomes.
	Closed State = iota
	// Open rejects everything until the cool-off elapses.
	Open
	// HalfOpen admits a single probe to test recovery.
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// Breaker opens once the failure ratio over a minimum sample crosses the
// threshold, cools off, then probes half-open.
type Breaker struct {
	mu     sync.Mutex
	state  State
	fails  int
	oks    int
	target string
	logger *zerolog.Logger

	minSample int
	threshold float64
	coolOff   time.Duration
	openedAt  time.Time
}

// NewBreaker clamps the inputs to sane values: at least one observed request,
// a threshold in (0,1], and a positive cool-off.
func NewBreaker(minSample int, threshold float64, coolOff time.Duration) *Breaker {
	if minSample <= 0 {
		minSample = 1
	}
	if threshold <= 0 {
		threshold = 0.5
	}
	if threshold > 1 {
		threshold = 1
	}
	if coolOff <= 0 {
		coolOff = 30 * time.Second
	}
	return &Breaker{
		state:     Closed,
		minSample: minSample,
		threshold: threshold,
		coolOff:   coolOff,
	}
}

// WithTarget sets the dependency label used on metrics and transition logs.
func (b *Breaker) WithTarget(target string) *Breaker {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.target = strings.TrimSpace(target)
	b.gaugeLocked()
	return b
}

// WithLogger sets the fallback logger for transition events. A logger carried
// on the request context still wins.
func (b *Breaker) WithLogger(logger zerolog.Logger) *Breaker {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logger = &logger
	return b
}

// Allow reports whether a request may proceed. An open breaker whose cool-off
// has elapsed flips to half-open and admits the caller as the probe.
func (b *Breaker) Allow(ctx context.Context) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != Open {
		return true
	}
	if time.Since(b.openedAt) < b.coolOff {
		return false
	}
	b.transitionLocked(ctx, HalfOpen)
	return true
}

// Report feeds an outcome back into the state machine.
func (b *Breaker) Report(ctx context.Context, success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case Open:
		return
	case HalfOpen:
		if success {
			b.transitionLocked(ctx, Closed)
		} else {
			b.transitionLocked(ctx, Open)
		}
		return
	}

	if success {
		b.oks++
	} else {
		b.fails++
	}

	total := b.fails + b.oks
	if total < b.minSample {
		return
	}
	if float64(b.fails)/float64(total) >= b.threshold {
		b.transitionLocked(ctx, Open)
		return
	}
	if total > b.minSample*2 {
		// halve the counters so old outcomes age out
		b.oks = int(math.Ceil(float64(b.oks) * 0.5))
		b.fails = int(math.Ceil(float64(b.fails) * 0.5))
	}
}

// Backoff returns the exponential delay for the given attempt, with optional
// proportional jitter (0.2 means +/-20%).
func Backoff(base time.Duration, attempt int, jitterPct float64) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if base <= 0 {
		base = 100 * time.Millisecond
	}
	d := base * time.Duration(1<<uint(attempt-1))
	if jitterPct <= 0 {
		return d
	}
	delta := (rand.Float64()*2 - 1) * float64(d) * jitterPct
	return d + time.Duration(delta)
}

func (b *Breaker) transitionLocked(ctx context.Context, next State) {
	prev := b.state
	if prev == next {
		b.gaugeLocked()
		return
	}
	b.state = next
	b.fails = 0
	b.oks = 0
	switch next {
	case Open:
		b.openedAt = time.Now()
	case Closed:
		b.openedAt = time.Time{}
	}
	b.gaugeLocked()
	b.logTransition(ctx, prev, next)
}

func (b *Breaker) gaugeLocked() {
	if BreakerState == nil {
		return
	}
	BreakerState.WithLabelValues(b.label()).Set(gaugeValue(b.state))
}

func (b *Breaker) logTransition(ctx context.Context, from, to State) {
	label := b.label()
	if BreakerTransitions != nil {
		BreakerTransitions.WithLabelValues(label, from.String(), to.String()).Inc()
	}
	if to == Open && BreakerOpenedTotal != nil {
		BreakerOpenedTotal.WithLabelValues(label).Inc()
	}
	evt := b.loggerFor(ctx).Info().
		Str("target", label).
		Str("from_state", from.String()).
		Str("to_state", to.String())
	if span := trace.SpanContextFromContext(ctx); span.IsValid() {
		evt = evt.Str("trace_id", span.TraceID().String())
	}
	evt.Msg("breaker_transition")
}

func (b *Breaker) label() string {
	if b.target == "" {
		return "default"
	}
	return b.target
}

func (b *Breaker) loggerFor(ctx context.Context) *zerolog.Logger {
	if ctxLogger := zerolog.Ctx(ctx); ctxLogger != nil {
		logger := ctxLogger.With().Logger()
		return &logger
	}
	if b.logger == nil {
		return &nopLogger
	}
	return b.logger
}

func gaugeValue(state State) float64 {
	switch state {
	case Closed:
		return 0
	case Open:
		return 1
	case HalfOpen:
		return 2
	default:
		return -1
	}
}
