package storage

import "fmt"

// Entry is what a transaction frame records for a key.
// It is either Present or Deleted. A key missing from the frame means the
// frame makes no claim and lookups fall through to the frame below.
type Entry interface {
	isEntry()
	String() string
}

// Present sets the key to Value.
type Present struct {
	Value uint32
}

// Deleted is a tombstone: the key was unset at this level.
type Deleted struct{}

func (Present) isEntry() {}
func (Deleted) isEntry() {}

func (p Present) String() string { return fmt.Sprintf("Present(%d)", p.Value) }
func (Deleted) String() string   { return "Deleted" }

// frame holds the pending writes of one transaction level.
type frame map[string]Entry
