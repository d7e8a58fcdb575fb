package audit

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/victortedesco/inventory-management/internal/domain"
)

var (
	// EntriesRecorded counts committed audit entries
	EntriesRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "inventory",
			Subsystem: "audit",
			Name:      "entries_total",
			Help:      "Total number of audit log entries committed",
		},
		[]string{"action", "entity_type"},
	)

	// CaptureDegraded counts entities whose audit entries were dropped
	CaptureDegraded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "inventory",
			Subsystem: "audit",
			Name:      "capture_degraded_total",
			Help:      "Total number of entities committed without audit entries after a capture error",
		},
		[]string{"entity_type"},
	)

	// Commits counts unit-of-work commits by outcome
	Commits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "inventory",
			Subsystem: "audit",
			Name:      "commits_total",
			Help:      "Total number of unit-of-work commits",
		},
		[]string{"result"},
	)

	once sync.Once
)

// InitMetrics registers the audit metrics with the default registry.
// Safe to call more than once.
func InitMetrics() {
	once.Do(func() {
		prometheus.DefaultRegisterer.Register(EntriesRecorded)
		prometheus.DefaultRegisterer.Register(CaptureDegraded)
		prometheus.DefaultRegisterer.Register(Commits)
	})
}

func RecordEntries(entries []domain.AuditLog) {
	for _, e := range entries {
		EntriesRecorded.WithLabelValues(string(e.ActionType), e.EntityType).Inc()
	}
}
