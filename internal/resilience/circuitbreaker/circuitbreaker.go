// Package circuitbreaker guards outbound calls (page downloads, inference
// APIs) with github.com/sony/gobreaker.
package circuitbreaker

import (
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

var (
	stateGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit state per upstream (0 closed, 1 half-open, 2 open)",
		},
		[]string{"circuit"},
	)

	rejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_rejected_total",
			Help: "Calls refused without reaching the upstream",
		},
		[]string{"circuit"},
	)
)

// Kind selects the tuning profile of an upstream.
type Kind int

const (
	// KindFetch is an arbitrary web page download.
	KindFetch Kind = iota
	// KindHuggingFace is a hosted inference model. Cold starts answer 503 for
	// a while, so it tolerates a higher failure ratio and stays open longer.
	KindHuggingFace
	// KindChatAPI is a hosted chat completion API (Claude, OpenAI).
	KindChatAPI
)

// Config holds the configuration for a circuit breaker.
type Config struct {
	// Name labels logs, metrics and the health report.
	Name string

	// MaxRequests is the number of trial calls let through while half-open.
	MaxRequests uint32

	// Interval clears the closed-state counts.
	Interval time.Duration

	// Timeout is how long the circuit stays open.
	Timeout time.Duration

	// FailureThreshold is the failure ratio that trips the circuit (0.6 = 60%).
	FailureThreshold float64

	// MinRequests must be observed before the ratio is considered.
	MinRequests uint32
}

// DefaultConfig returns a general purpose configuration.
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// ConfigFor returns the profile tuned for kind.
func ConfigFor(kind Kind, name string) Config {
	cfg := DefaultConfig(name)
	switch kind {
	case KindFetch:
		cfg.MaxRequests = 5
		cfg.Interval = 60 * time.Second
	case KindHuggingFace:
		cfg.Interval = 60 * time.Second
		cfg.Timeout = 90 * time.Second
		cfg.FailureThreshold = 0.7
	}
	return cfg
}

// CircuitBreaker is a named gobreaker instance that reports its state to
// Prometheus.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
	name    string
}

// New creates a closed circuit breaker.
func New(cfg Config) *CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			stateGauge.WithLabelValues(name).Set(stateValue(to))
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}
	stateGauge.WithLabelValues(cfg.Name).Set(stateValue(gobreaker.StateClosed))

	return &CircuitBreaker{
		breaker: gobreaker.NewCircuitBreaker(settings),
		name:    cfg.Name,
	}
}

// Do runs fn through cb. A nil cb calls fn directly. While the circuit is
// open Do returns gobreaker.ErrOpenState without calling fn.
func Do[T any](cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	if cb == nil {
		return fn()
	}
	out, err := cb.breaker.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		if IsRejected(err) {
			rejectedTotal.WithLabelValues(cb.name).Inc()
		}
		return zero, err
	}
	v, _ := out.(T)
	return v, nil
}

// IsRejected reports whether err means the call never reached the upstream.
func IsRejected(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// State returns the current state of the circuit breaker.
func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}

// Name returns the name of the circuit breaker.
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
