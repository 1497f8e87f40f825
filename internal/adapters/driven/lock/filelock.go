// Package lock provides exclusive cross-process locking around the
// per-prompt version files. A lock is an O_CREATE|O_EXCL lock file next
// to the locked path, reinforced with flock where the platform has it,
// with retry, timeout, and stale-lock takeover for locks left behind by
// dead processes.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jimkring/mirascope/internal/core/ports/driven"
	"github.com/jimkring/mirascope/internal/logger"
)

const lockSuffix = ".lock"

// errLockHeld signals that another holder currently owns the lock and
// the acquisition loop should retry.
var errLockHeld = errors.New("lock held")

// Ensure FileLocker implements the interface.
var _ driven.Locker = (*FileLocker)(nil)

// FileLocker implements exclusive locking with lock files.
type FileLocker struct {
	// timeout bounds how long one acquisition may retry.
	timeout time.Duration

	// retryDelay is the pause between acquisition attempts.
	retryDelay time.Duration

	// staleAfter is the age past which an existing lock file is probed
	// for a dead owner.
	staleAfter time.Duration
}

// NewFileLocker creates a locker with defaults suited to short local
// file operations.
func NewFileLocker() *FileLocker {
	return &FileLocker{
		timeout:    10 * time.Second,
		retryDelay: 50 * time.Millisecond,
		staleAfter: 5 * time.Minute,
	}
}

// WithLock runs fn while holding an exclusive lock on the resource at
// path. The lock file is path + ".lock" and is removed on release.
func (l *FileLocker) WithLock(path string, fn func() error) error {
	held, err := l.acquire(path + lockSuffix)
	if err != nil {
		return err
	}
	defer held.release()
	return fn()
}

// heldLock is one acquired lock.
type heldLock struct {
	path string
	file *os.File
}

func (l *FileLocker) acquire(lockPath string) (*heldLock, error) {
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	deadline := time.Now().Add(l.timeout)
	for {
		file, err := l.try(lockPath)
		if err == nil {
			return &heldLock{path: lockPath, file: file}, nil
		}
		if !errors.Is(err, errLockHeld) {
			return nil, err
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("timeout acquiring lock %s after %v", lockPath, l.timeout)
		}
		time.Sleep(l.retryDelay)
	}
}

// try makes one non-blocking acquisition attempt.
func (l *FileLocker) try(lockPath string) (*os.File, error) {
	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		if os.IsExist(err) {
			if l.isStale(lockPath) {
				// Remove and let the retry loop recreate it.
				os.Remove(lockPath)
			}
			return nil, errLockHeld
		}
		return nil, fmt.Errorf("create lock file %s: %w", lockPath, err)
	}

	// The exclusive create already guarantees single ownership; flock
	// guards the window where a stale lock is removed while its owner
	// is still alive.
	if err := flockExclusive(file); err != nil {
		file.Close()
		os.Remove(lockPath)
		if errors.Is(err, errLockHeld) {
			return nil, errLockHeld
		}
		return nil, fmt.Errorf("lock %s: %w", lockPath, err)
	}

	info := fmt.Sprintf("pid:%d\ntime:%s\n", os.Getpid(), time.Now().Format(time.RFC3339))
	if _, err := file.WriteString(info); err != nil {
		flockRelease(file)
		file.Close()
		os.Remove(lockPath)
		return nil, fmt.Errorf("write lock file %s: %w", lockPath, err)
	}
	return file, nil
}

// isStale reports whether an existing lock file belongs to a process
// that no longer runs. Young lock files are never probed.
func (l *FileLocker) isStale(lockPath string) bool {
	info, err := os.Stat(lockPath)
	if err != nil {
		// Gone or unreadable, removal is a no-op either way.
		return true
	}
	if time.Since(info.ModTime()) < l.staleAfter {
		return false
	}

	data, err := os.ReadFile(lockPath)
	if err != nil {
		return true
	}
	var pid int
	if _, err := fmt.Sscanf(string(data), "pid:%d", &pid); err != nil {
		return true
	}
	return !processRunning(pid)
}

// processRunning probes a pid with signal 0.
func processRunning(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}

func (h *heldLock) release() {
	if h.file != nil {
		flockRelease(h.file)
		h.file.Close()
		h.file = nil
	}
	if err := os.Remove(h.path); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to remove lock file %s: %v", h.path, err)
	}
}
