package session

// Store persists the single session record.
// This interface is defined in the domain to avoid circular imports.
// Implementation: file-backed store in adapter/outbound/state.
type Store interface {
	// Load returns the persisted session, or nil when none exists or the
	// stored record is unreadable. It never fails on absence or corruption.
	Load() *Session

	// Save persists the session, replacing any previous record.
	Save(s *Session) error

	// Clear removes the persisted record. Clearing an empty store is a no-op.
	Clear() error
}
