package sql

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/myuser/simpledb/internal/storage"
)

// Row representing a result row: key, value.
type Row []string

// Ascender is implemented by stores that can list committed state in key
// order.
type Ascender interface {
	Ascend(fn func(key string, value uint32) bool)
}

// Execute executes a logical plan against the store.
// Statements that write or change transaction state return no rows.
func Execute(plan PlanNode, db storage.DB) ([]Row, error) {
	switch n := plan.(type) {
	case *BeginNode:
		db.BeginTransaction()
		return nil, nil
	case *CommitNode:
		if err := db.Commit(); err != nil {
			return nil, errors.Wrap(err, "commit")
		}
		return nil, nil
	case *RollbackNode:
		if err := db.Rollback(); err != nil {
			return nil, errors.Wrap(err, "rollback")
		}
		return nil, nil
	case *SetNode:
		for _, kv := range n.Pairs {
			db.Set(kv.Key, kv.Value)
		}
		return nil, nil
	case *UnsetNode:
		db.Unset(n.Key)
		return nil, nil
	case *PointGetNode:
		return executePointGet(n, db)
	case *ScanNode:
		return executeScan(db)
	default:
		return nil, errors.Errorf("unsupported plan node: %T", plan)
	}
}

// ExecuteString parses and executes one statement.
func ExecuteString(sql string, db storage.DB) ([]Row, error) {
	plan, err := ParseToPlan(sql)
	if err != nil {
		return nil, err
	}
	return Execute(plan, db)
}

func executePointGet(n *PointGetNode, db storage.DB) ([]Row, error) {
	val, ok := db.Get(n.Key)
	if !ok {
		return []Row{}, nil
	}
	return []Row{{n.Key, strconv.FormatUint(uint64(val), 10)}}, nil
}

func executeScan(db storage.DB) ([]Row, error) {
	a, ok := db.(Ascender)
	if !ok {
		return nil, errors.Errorf("%T does not support scans", db)
	}
	rows := []Row{}
	a.Ascend(func(key string, value uint32) bool {
		rows = append(rows, Row{key, strconv.FormatUint(uint64(value), 10)})
		return true
	})
	return rows, nil
}
