package simpledb

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/myuser/simpledb/internal/metrics"
	"github.com/myuser/simpledb/internal/storage"
)

// Re-export internal/storage.

// DB is the transactional store interface.
type DB = storage.DB

// MemoryDB is the in-memory DB implementation.
type MemoryDB = storage.MemoryDB

// Entry is a pending write recorded by a transaction: Present or Deleted.
type Entry = storage.Entry

type (
	Present = storage.Present
	Deleted = storage.Deleted
)

// Option configures a store created by New.
type Option = storage.Option

// ErrNoTransactionsInProgress is returned by Commit and Rollback when no
// transaction is open.
var ErrNoTransactionsInProgress = storage.ErrNoTransactionsInProgress

// New returns an empty store.
func New(opts ...Option) *MemoryDB {
	return storage.NewMemoryDB(opts...)
}

// WithLogger logs transaction lifecycle events to l at debug level.
func WithLogger(l *zap.Logger) Option {
	return storage.WithLogger(l)
}

// WithMetrics registers the store's collectors with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return storage.WithMetrics(metrics.NewRegistry(reg))
}
