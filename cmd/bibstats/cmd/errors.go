package cmd

import "strings"

// isDBLockError returns true if the error chain contains a bbolt lock
// timeout. bbolt reports the string "timeout" when it cannot acquire the
// file lock within the configured deadline.
func isDBLockError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "timeout")
}

// dbLockHint returns actionable guidance for a locked cache database.
// The usual holder is a bibstats watch running in another terminal.
func dbLockHint() string {
	return "cache database is locked by another process\n" +
		"  → a 'bibstats watch' may be running in another terminal\n" +
		"  → stop it, or rerun with --no-cache"
}
