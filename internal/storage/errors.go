package storage

import "errors"

// ErrNoTransactionsInProgress is returned by Commit and Rollback when no
// transaction is open.
var ErrNoTransactionsInProgress = errors.New("no transactions in progress")
