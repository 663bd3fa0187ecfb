package storage

// DB defines the interface for the transactional key-value store.
// Reads and writes go to the innermost open transaction, or straight to the
// committed state when none is open.
type DB interface {
	// Set writes value for key.
	Set(key string, value uint32)

	// Get returns the value visible for key and whether one exists.
	Get(key string) (uint32, bool)

	// Unset removes key.
	Unset(key string)

	// Transaction lifecycle
	BeginTransaction()
	Rollback() error // Discard the innermost transaction
	Commit() error   // Flatten every open transaction into committed state
}
