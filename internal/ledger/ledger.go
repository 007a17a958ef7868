// Package ledger records completed provisioning stages so that interrupted
// runs can be resumed without repeating non-idempotent system changes.
//
// The ledger is append-only: a stage name is written once its action has
// completed successfully, and is never removed by the tool itself. Resetting
// a ledger is a deliberate operator action (deleting the backing file).
package ledger

// Ledger tracks which provisioning stages have completed.
type Ledger interface {
	// IsComplete reports whether a stage with the given name has been
	// recorded as complete. A backing store that does not exist yet is
	// equivalent to an empty ledger, not an error.
	IsComplete(name string) (bool, error)

	// MarkComplete records the stage as complete. Appending the same name
	// twice is harmless; lookup is existence-based.
	MarkComplete(name string) error

	// Completed returns the recorded stage names in append order,
	// duplicates included.
	Completed() ([]string, error)
}
