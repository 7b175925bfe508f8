//go:build windows

package ledger

// processAlive cannot be probed cheaply on Windows; report alive and
// let the age-based staleness check reclaim abandoned locks.
func processAlive(int) bool {
	return true
}
