// Package simpledb is an in-memory key-value store with nested transactions.
//
// Writes made inside a transaction are layered over the committed state and
// stay invisible to it until Commit, which folds every open transaction into
// committed state at once. Rollback discards only the innermost transaction.
//
//	db := simpledb.New()
//	db.Set("foo", 10)
//	db.BeginTransaction()
//	db.Unset("foo")
//	_, ok := db.Get("foo") // ok == false
//	_ = db.Rollback()
//	v, _ := db.Get("foo")  // v == 10
//
// A store is not safe for concurrent use.
package simpledb
