package storage

import (
	"github.com/google/btree"
	"go.uber.org/zap"

	"github.com/myuser/simpledb/internal/metrics"
)

// MemoryDB implements DB.
// It is not safe for concurrent use; callers sharing one instance must
// serialize every call themselves.
type MemoryDB struct {
	// Committed state, ordered by key.
	tree *btree.BTreeG[item]

	// Open transactions, oldest first. The last frame is the top.
	frames []frame

	logger  *zap.Logger
	metrics *metrics.Registry
}

var _ DB = (*MemoryDB)(nil)

type item struct {
	key   string
	value uint32
}

func itemLess(a, b item) bool {
	return a.key < b.key
}

// Option configures a MemoryDB.
type Option func(*MemoryDB)

// WithLogger sets the logger used for transaction lifecycle events.
func WithLogger(l *zap.Logger) Option {
	return func(db *MemoryDB) {
		if l != nil {
			db.logger = l
		}
	}
}

// WithMetrics records operations into r.
func WithMetrics(r *metrics.Registry) Option {
	return func(db *MemoryDB) {
		db.metrics = r
	}
}

// NewMemoryDB returns an empty store with no open transaction. Without
// options it logs nothing and records no metrics.
func NewMemoryDB(opts ...Option) *MemoryDB {
	db := &MemoryDB{
		tree:   btree.NewG(32, itemLess),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// Set records value for key in the top frame, or in committed state when no
// transaction is open.
func (db *MemoryDB) Set(key string, value uint32) {
	if top := db.top(); top != nil {
		top[key] = Present{Value: value}
	} else {
		db.tree.ReplaceOrInsert(item{key: key, value: value})
		db.observeCommitted()
	}
	db.record("set", metrics.StatusOK)
}

// Unset records a tombstone for key in the top frame, or removes it from
// committed state when no transaction is open.
func (db *MemoryDB) Unset(key string) {
	if top := db.top(); top != nil {
		top[key] = Deleted{}
	} else {
		db.tree.Delete(item{key: key})
		db.observeCommitted()
	}
	db.record("unset", metrics.StatusOK)
}

// Get resolves key from the top frame down. The first frame holding an entry
// for key decides; otherwise committed state does.
func (db *MemoryDB) Get(key string) (uint32, bool) {
	db.record("get", metrics.StatusOK)
	for i := len(db.frames) - 1; i >= 0; i-- {
		e, ok := db.frames[i][key]
		if !ok {
			continue
		}
		switch e := e.(type) {
		case Present:
			return e.Value, true
		case Deleted:
			return 0, false
		}
	}
	it, ok := db.tree.Get(item{key: key})
	if !ok {
		return 0, false
	}
	return it.value, true
}

// BeginTransaction opens a nested transaction.
func (db *MemoryDB) BeginTransaction() {
	db.frames = append(db.frames, make(frame))
	db.logger.Debug("begin transaction", zap.Int("depth", len(db.frames)))
	db.record("begin", metrics.StatusOK)
	db.observeDepth()
}

// Rollback discards the innermost transaction.
func (db *MemoryDB) Rollback() error {
	if len(db.frames) == 0 {
		db.logger.Debug("rollback rejected", zap.Error(ErrNoTransactionsInProgress))
		db.record("rollback", metrics.StatusError)
		return ErrNoTransactionsInProgress
	}

	top := len(db.frames) - 1
	discarded := len(db.frames[top])
	db.frames[top] = nil
	db.frames = db.frames[:top]

	db.logger.Debug("rollback transaction",
		zap.Int("depth", len(db.frames)),
		zap.Int("discarded", discarded))
	db.record("rollback", metrics.StatusOK)
	db.observeDepth()
	return nil
}

// Commit replays every open transaction into committed state, oldest first,
// so a newer frame's entry for a key overwrites an older one. The whole
// stack is then cleared.
func (db *MemoryDB) Commit() error {
	if len(db.frames) == 0 {
		db.logger.Debug("commit rejected", zap.Error(ErrNoTransactionsInProgress))
		db.record("commit", metrics.StatusError)
		return ErrNoTransactionsInProgress
	}

	levels := len(db.frames)
	for _, f := range db.frames {
		for key, e := range f {
			switch e := e.(type) {
			case Present:
				db.tree.ReplaceOrInsert(item{key: key, value: e.Value})
			case Deleted:
				db.tree.Delete(item{key: key})
			}
		}
	}
	db.frames = nil

	db.logger.Debug("commit transactions",
		zap.Int("levels", levels),
		zap.Int("committed_keys", db.tree.Len()))
	db.record("commit", metrics.StatusOK)
	db.observeDepth()
	db.observeCommitted()
	return nil
}

// Depth returns the number of open transactions.
func (db *MemoryDB) Depth() int {
	return len(db.frames)
}

// Len returns the number of committed keys.
func (db *MemoryDB) Len() int {
	return db.tree.Len()
}

// Ascend calls fn for each committed key in ascending order until fn
// returns false. Pending transaction writes are not visited.
func (db *MemoryDB) Ascend(fn func(key string, value uint32) bool) {
	db.tree.Ascend(func(it item) bool {
		return fn(it.key, it.value)
	})
}

func (db *MemoryDB) top() frame {
	if len(db.frames) == 0 {
		return nil
	}
	return db.frames[len(db.frames)-1]
}

func (db *MemoryDB) record(op, status string) {
	if db.metrics != nil {
		db.metrics.RecordOperation(op, status)
	}
}

func (db *MemoryDB) observeDepth() {
	if db.metrics != nil {
		db.metrics.SetDepth(len(db.frames))
	}
}

func (db *MemoryDB) observeCommitted() {
	if db.metrics != nil {
		db.metrics.SetCommittedKeys(db.tree.Len())
	}
}
