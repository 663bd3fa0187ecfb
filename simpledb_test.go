package simpledb_test

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/myuser/simpledb"
)

func TestSetValuesAreGettable(t *testing.T) {
	db := simpledb.New()
	db.Set("foo", 10)
	if v, ok := db.Get("foo"); !ok || v != 10 {
		t.Fatalf("Get: want 10, got (%d, %v)", v, ok)
	}
}

func TestUnsetValuesReturnNothing(t *testing.T) {
	db := simpledb.New()
	if _, ok := db.Get("foo"); ok {
		t.Fatal("Get on empty store returned a value")
	}
}

func TestValuesCanBeUnset(t *testing.T) {
	db := simpledb.New()
	db.Set("foo", 10)
	db.Unset("foo")
	if _, ok := db.Get("foo"); ok {
		t.Fatal("Get after Unset returned a value")
	}
}

func TestInterface(t *testing.T) {
	var db simpledb.DB = simpledb.New(simpledb.WithMetrics(prometheus.NewRegistry()))
	db.BeginTransaction()
	db.Set("foo", 1)
	if err := db.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if err := db.Commit(); !errors.Is(err, simpledb.ErrNoTransactionsInProgress) {
		t.Fatalf("second Commit: want ErrNoTransactionsInProgress, got %v", err)
	}
}
