package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Account metrics
	AccountsCreated   prometheus.Counter
	AccountOperations *prometheus.CounterVec
	OperationErrors   *prometheus.CounterVec

	// Transfer metrics
	TransfersCreated     prometheus.Counter
	TransfersCompensated prometheus.Counter
	TransferAmount       prometheus.Histogram
	TransferErrors       *prometheus.CounterVec

	// Batch metrics
	BatchFailures prometheus.Counter
}

// New creates all metrics and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Account metrics
		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "minibank_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minibank_account_operations_total",
				Help: "Total account operations by type",
			},
			[]string{"operation"},
		),
		OperationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minibank_operation_errors_total",
				Help: "Total rejected account operations by type and reason",
			},
			[]string{"operation", "reason"},
		),

		// Transfer metrics
		TransfersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "minibank_transfers_created_total",
			Help: "Total number of transfers completed",
		}),
		TransfersCompensated: factory.NewCounter(prometheus.CounterOpts{
			Name: "minibank_transfers_compensated_total",
			Help: "Total number of transfers rolled back after a failed credit",
		}),
		TransferAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "minibank_transfer_amount",
			Help:    "Transfer amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		TransferErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minibank_transfer_errors_total",
				Help: "Total number of transfer errors by type",
			},
			[]string{"error_type"},
		),

		// Batch metrics
		BatchFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "minibank_batch_failures_total",
			Help: "Total accounts skipped during batch interest/charge passes",
		}),
	}
}

// Operation counts one successful account operation.
func (m *Metrics) Operation(op string) {
	m.AccountOperations.WithLabelValues(op).Inc()
}

// OperationError counts one rejected account operation. The reason label
// must be low-cardinality; callers map their sentinel errors to it.
func (m *Metrics) OperationError(op, reason string) {
	m.OperationErrors.WithLabelValues(op, reason).Inc()
}
