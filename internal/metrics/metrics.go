// Package metrics counts directory operations with Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/mmynk/minibank/internal/models"
)

const namespace = "minibank"

// Operation names used as the "operation" label.
const (
	OpCreateAccount  = "create_account"
	OpAuthenticate   = "authenticate"
	OpDeposit        = "deposit"
	OpWithdraw       = "withdraw"
	OpHistory        = "history"
	OpCurrentAccount = "current_account"
)

// Result label values.
const (
	ResultOK              = "ok"
	ResultInvalidArgument = "invalid_argument"
	ResultNoSession       = "no_session"
	ResultError           = "error"
)

// Recorder holds the collectors on a private registry.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry     *prometheus.Registry
	operations   *prometheus.CounterVec
	authFailures prometheus.Counter
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Directory operations by name and outcome.",
		}, []string{"operation", "result"}),
		authFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_failures_total",
			Help:      "Rejected authentication attempts.",
		}),
	}
	r.registry.MustRegister(r.operations, r.authFailures)
	return r
}

// Registry exposes the registry for gathering.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// OperationCount returns how many calls of op ended with result.
func (r *Recorder) OperationCount(op, result string) float64 {
	if r == nil {
		return 0
	}
	return counterValue(r.operations.WithLabelValues(op, result))
}

// AuthFailureCount returns how many authentication attempts were rejected.
func (r *Recorder) AuthFailureCount() float64 {
	if r == nil {
		return 0
	}
	return counterValue(r.authFailures)
}

func counterValue(c prometheus.Counter) float64 {
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

// Observe counts one call of op with the outcome derived from err.
func (r *Recorder) Observe(op string, err error) {
	if r == nil {
		return
	}
	result := ResultOf(err)
	r.operations.WithLabelValues(op, result).Inc()
	if op == OpAuthenticate && result != ResultOK {
		r.authFailures.Inc()
	}
}

// ResultOf maps an error to its result label.
func ResultOf(err error) string {
	if err == nil {
		return ResultOK
	}
	switch models.KindOf(err) {
	case models.KindInvalidArgument:
		return ResultInvalidArgument
	case models.KindNoSession:
		return ResultNoSession
	default:
		return ResultError
	}
}
