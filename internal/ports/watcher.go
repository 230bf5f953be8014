package ports

// Watcher monitors a directory tree for file changes. The adapter
// (fsnotify) filters irrelevant files before invoking onChange. Only one
// Watch call should be active at a time.
type Watcher interface {
	// Watch starts monitoring root recursively. onChange receives the
	// absolute path of each changed file and may be invoked from any
	// goroutine.
	Watch(root string, onChange func(path string)) error

	// Stop ends monitoring and releases all resources. After Stop
	// returns, no further onChange calls fire. Safe to call twice.
	Stop() error
}
