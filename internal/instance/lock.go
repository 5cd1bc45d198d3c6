// Package instance keeps a single BetterRest window per user.
package instance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// LockFileName is the lock file created inside the app directory
const LockFileName = "betterrest.lock"

// ErrAlreadyRunning is returned when another process holds the lock
var ErrAlreadyRunning = errors.New("another instance of BetterRest is already running")

// Lock represents a single instance lock
type Lock struct {
	lockFile *os.File
	lockPath string
	logger   *zap.Logger
}

// NewLock creates a lock file handle inside dir, creating dir if needed
func NewLock(dir string, logger *zap.Logger) (*Lock, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	return &Lock{
		lockPath: filepath.Join(dir, LockFileName),
		logger:   logger,
	}, nil
}

// TryLock attempts to acquire the single instance lock. The file is opened
// without O_EXCL and flocked; an unlocked leftover file means its owner died.
func (l *Lock) TryLock() error {
	for attempt := 0; attempt < 3; attempt++ {
		lockFile, err := os.OpenFile(l.lockPath, os.O_CREATE|os.O_RDWR, 0644)
		if err != nil {
			return fmt.Errorf("failed to open lock file: %w", err)
		}

		if err := syscall.Flock(int(lockFile.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
			lockFile.Close()
			if err == syscall.EWOULDBLOCK {
				return ErrAlreadyRunning
			}
			return fmt.Errorf("failed to acquire file lock: %w", err)
		}

		// The previous owner unlinks the path before unlocking, so we may hold
		// a lock on a file that is no longer at lockPath
		if !l.isCurrent(lockFile) {
			syscall.Flock(int(lockFile.Fd()), syscall.LOCK_UN)
			lockFile.Close()
			continue
		}

		if err := l.claim(lockFile); err != nil {
			syscall.Flock(int(lockFile.Fd()), syscall.LOCK_UN)
			lockFile.Close()
			return err
		}

		l.lockFile = lockFile
		return nil
	}

	return ErrAlreadyRunning
}

func (l *Lock) isCurrent(f *os.File) bool {
	held, err := f.Stat()
	if err != nil {
		return false
	}
	onDisk, err := os.Stat(l.lockPath)
	if err != nil {
		return false
	}
	return os.SameFile(held, onDisk)
}

// claim replaces any stale PID in the locked file with ours
func (l *Lock) claim(f *os.File) error {
	var oldPID int
	if _, err := fmt.Fscanf(f, "%d", &oldPID); err == nil && oldPID != os.Getpid() {
		l.logger.Warn("⚠️ found stale lock file, taking over", zap.Int("pid", oldPID))
	}

	if err := f.Truncate(0); err != nil {
		return fmt.Errorf("failed to truncate lock file: %w", err)
	}
	if _, err := f.WriteAt([]byte(fmt.Sprintf("%d\n", os.Getpid())), 0); err != nil {
		return fmt.Errorf("failed to write PID to lock file: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync lock file: %w", err)
	}
	return nil
}

// Release releases the single instance lock
func (l *Lock) Release() error {
	if l.lockFile == nil {
		return nil
	}

	// Unlink before unlocking; TryLock rejects locks on unlinked files
	if err := os.Remove(l.lockPath); err != nil {
		l.logger.Warn("failed to remove lock file", zap.Error(err))
	}

	if err := syscall.Flock(int(l.lockFile.Fd()), syscall.LOCK_UN); err != nil {
		l.logger.Warn("failed to release file lock", zap.Error(err))
	}

	if err := l.lockFile.Close(); err != nil {
		l.logger.Warn("failed to close lock file", zap.Error(err))
	}

	l.lockFile = nil
	return nil
}

// IsLocked returns true if this instance holds the lock
func (l *Lock) IsLocked() bool {
	return l.lockFile != nil
}

// GetLockPath returns the path to the lock file
func (l *Lock) GetLockPath() string {
	return l.lockPath
}

// WaitForLockRelease waits for another instance to release the lock
func (l *Lock) WaitForLockRelease(timeout time.Duration) error {
	if timeout <= 0 {
		return ErrAlreadyRunning
	}

	l.logger.Info("⏳ another instance is running, waiting for it to exit", zap.Duration("timeout", timeout))

	deadline := time.After(timeout)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := l.TryLock(); err == nil {
				l.logger.Info("✅ lock acquired, continuing")
				return nil
			}

		case <-deadline:
			return fmt.Errorf("timeout waiting for other instance to exit: %w", ErrAlreadyRunning)
		}
	}
}
