package driven

// Locker serializes mutations of a shared resource across processes.
// Lock scope is the resource path, so two prompts never contend with
// each other.
type Locker interface {
	// WithLock runs fn while holding an exclusive lock on the resource
	// at path. The lock is released on every exit path, including a
	// panic inside fn. Returns fn's error, or a lock acquisition error
	// if the lock could not be obtained in time.
	WithLock(path string, fn func() error) error
}
