package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the ledger's Prometheus metrics.
type Metrics struct {
	// Transaction metrics
	TransactionsCreated *prometheus.CounterVec
	TransactionsDeleted prometheus.Counter

	// Transfer metrics
	TransfersCreated prometheus.Counter

	// Settlement metrics
	SettlementsPosted  prometheus.Counter
	SettlementsSkipped *prometheus.CounterVec

	// CSV import metrics
	ImportRows *prometheus.CounterVec

	// Cache metrics
	StatsCacheDrops prometheus.Counter
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates and registers all metrics on the given registerer.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TransactionsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "finledger_transactions_created_total",
			Help: "Total number of ledger transactions created",
		}, []string{"type", "source"}),
		TransactionsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "finledger_transactions_deleted_total",
			Help: "Total number of ledger transactions deleted",
		}),
		TransfersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "finledger_transfers_created_total",
			Help: "Total number of inter-account transfers",
		}),
		SettlementsPosted: factory.NewCounter(prometheus.CounterOpts{
			Name: "finledger_settlements_posted_total",
			Help: "Total number of automatic order settlements posted",
		}),
		SettlementsSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "finledger_settlements_skipped_total",
			Help: "Settlement events that produced no posting",
		}, []string{"reason"}),
		ImportRows: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "finledger_import_rows_total",
			Help: "CSV import rows by outcome",
		}, []string{"result"}),
		StatsCacheDrops: factory.NewCounter(prometheus.CounterOpts{
			Name: "finledger_stats_cache_drops_total",
			Help: "Times the cached stats overview was invalidated",
		}),
	}
}

// Transaction source labels.
const (
	SourceManual     = "manual"
	SourceTransfer   = "transfer"
	SourceSettlement = "settlement"
	SourceImport     = "import"
)
