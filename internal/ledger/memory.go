package ledger

// MemoryLedger is an in-memory Ledger for tests.
type MemoryLedger struct {
	names []string
}

// NewMemoryLedger creates an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{}
}

// IsComplete implements Ledger.
func (l *MemoryLedger) IsComplete(name string) (bool, error) {
	for _, n := range l.names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// MarkComplete implements Ledger.
func (l *MemoryLedger) MarkComplete(name string) error {
	l.names = append(l.names, name)
	return nil
}

// Completed implements Ledger.
func (l *MemoryLedger) Completed() ([]string, error) {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out, nil
}
