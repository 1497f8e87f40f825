package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLocker() *FileLocker {
	return &FileLocker{
		timeout:    2 * time.Second,
		retryDelay: 5 * time.Millisecond,
		staleAfter: 5 * time.Minute,
	}
}

// TestFileLocker_WithLock tests the basic acquire-run-release cycle
func TestFileLocker_WithLock(t *testing.T) {
	locker := testLocker()
	path := filepath.Join(t.TempDir(), "greeter", "version.txt")

	ran := false
	err := locker.WithLock(path, func() error {
		ran = true

		// The lock file exists while fn runs.
		_, statErr := os.Stat(path + lockSuffix)
		assert.NoError(t, statErr)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, ran)

	_, statErr := os.Stat(path + lockSuffix)
	assert.True(t, os.IsNotExist(statErr), "lock file should be removed on release")
}

// TestFileLocker_WithLock_ReturnsFnError tests error passthrough
func TestFileLocker_WithLock_ReturnsFnError(t *testing.T) {
	locker := testLocker()
	path := filepath.Join(t.TempDir(), "version.txt")

	wantErr := errors.New("boom")
	err := locker.WithLock(path, func() error { return wantErr })

	assert.True(t, errors.Is(err, wantErr))

	_, statErr := os.Stat(path + lockSuffix)
	assert.True(t, os.IsNotExist(statErr), "lock file should be removed even when fn fails")
}

// TestFileLocker_WithLock_ReleasesOnPanic tests cleanup on panic
func TestFileLocker_WithLock_ReleasesOnPanic(t *testing.T) {
	locker := testLocker()
	path := filepath.Join(t.TempDir(), "version.txt")

	require.Panics(t, func() {
		_ = locker.WithLock(path, func() error { panic("boom") })
	})

	_, statErr := os.Stat(path + lockSuffix)
	assert.True(t, os.IsNotExist(statErr), "lock file should be removed after panic")
}

// TestFileLocker_WithLock_MutualExclusion tests that holders never overlap
func TestFileLocker_WithLock_MutualExclusion(t *testing.T) {
	locker := testLocker()
	path := filepath.Join(t.TempDir(), "version.txt")

	var active, overlaps int32
	var wg sync.WaitGroup
	errs := make(chan error, 4)

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- locker.WithLock(path, func() error {
				if atomic.AddInt32(&active, 1) > 1 {
					atomic.AddInt32(&overlaps, 1)
				}
				time.Sleep(10 * time.Millisecond)
				atomic.AddInt32(&active, -1)
				return nil
			})
		}()
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Zero(t, atomic.LoadInt32(&overlaps), "lock holders overlapped")
}

// TestFileLocker_WithLock_Timeout tests giving up on a held lock
func TestFileLocker_WithLock_Timeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "version.txt")

	held, err := testLocker().acquire(path + lockSuffix)
	require.NoError(t, err)
	defer held.release()

	impatient := &FileLocker{
		timeout:    100 * time.Millisecond,
		retryDelay: 20 * time.Millisecond,
		staleAfter: time.Hour,
	}

	err = impatient.WithLock(path, func() error {
		t.Fatal("fn should not run while the lock is held")
		return nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

// TestFileLocker_StaleLockTakeover tests removal of dead holders' locks
func TestFileLocker_StaleLockTakeover(t *testing.T) {
	locker := testLocker()
	path := filepath.Join(t.TempDir(), "version.txt")
	lockPath := path + lockSuffix

	// A lock file from a pid that cannot be running, aged past the
	// stale threshold.
	info := fmt.Sprintf("pid:%d\ntime:%s\n", 1<<30, time.Now().Add(-time.Hour).Format(time.RFC3339))
	require.NoError(t, os.WriteFile(lockPath, []byte(info), 0o600))
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(lockPath, old, old))

	ran := false
	err := locker.WithLock(path, func() error {
		ran = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, ran)
}

// TestFileLocker_FreshLockNotStale tests that young locks are respected
func TestFileLocker_FreshLockNotStale(t *testing.T) {
	locker := testLocker()
	lockPath := filepath.Join(t.TempDir(), "version.txt"+lockSuffix)

	info := fmt.Sprintf("pid:%d\ntime:%s\n", 1<<30, time.Now().Format(time.RFC3339))
	require.NoError(t, os.WriteFile(lockPath, []byte(info), 0o600))

	assert.False(t, locker.isStale(lockPath))
}
