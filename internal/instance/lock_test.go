package instance

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLock_AcquireAndRelease(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLock(dir, nil)
	require.NoError(t, err)

	require.NoError(t, l.TryLock())
	assert.True(t, l.IsLocked())

	data, err := os.ReadFile(l.GetLockPath())
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%d\n", os.Getpid()), string(data))

	require.NoError(t, l.Release())
	assert.False(t, l.IsLocked())
	_, err = os.Stat(l.GetLockPath())
	assert.True(t, os.IsNotExist(err))
}

func TestLock_SecondInstanceRejected(t *testing.T) {
	dir := t.TempDir()
	first, err := NewLock(dir, nil)
	require.NoError(t, err)
	require.NoError(t, first.TryLock())
	defer first.Release()

	second, err := NewLock(dir, nil)
	require.NoError(t, err)
	err = second.TryLock()
	assert.True(t, errors.Is(err, ErrAlreadyRunning))
	assert.False(t, second.IsLocked())

	err = second.WaitForLockRelease(300 * time.Millisecond)
	assert.ErrorIs(t, err, ErrAlreadyRunning)
}

func TestLock_StaleLockCleanedUp(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLock(dir, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(l.GetLockPath(), []byte("99999999\n"), 0644))

	require.NoError(t, l.TryLock())
	assert.True(t, l.IsLocked())

	data, err := os.ReadFile(l.GetLockPath())
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%d\n", os.Getpid()), string(data))
	require.NoError(t, l.Release())
}

func TestLock_HeldLockIsNeverReclaimed(t *testing.T) {
	dir := t.TempDir()
	owner, err := NewLock(dir, nil)
	require.NoError(t, err)
	require.NoError(t, owner.TryLock())
	defer owner.Release()

	for i := 0; i < 20; i++ {
		other, err := NewLock(dir, nil)
		require.NoError(t, err)
		assert.ErrorIs(t, other.TryLock(), ErrAlreadyRunning)
	}

	// The owner's file is still in place with the owner's PID
	data, err := os.ReadFile(owner.GetLockPath())
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%d\n", os.Getpid()), string(data))
}

func TestLock_WaitForRelease(t *testing.T) {
	dir := t.TempDir()
	first, err := NewLock(dir, nil)
	require.NoError(t, err)
	require.NoError(t, first.TryLock())

	go func() {
		time.Sleep(150 * time.Millisecond)
		first.Release()
	}()

	second, err := NewLock(dir, nil)
	require.NoError(t, err)
	require.NoError(t, second.WaitForLockRelease(3*time.Second))
	assert.True(t, second.IsLocked())
	require.NoError(t, second.Release())
}

func TestLock_ReleaseWithoutLock(t *testing.T) {
	l, err := NewLock(t.TempDir(), nil)
	require.NoError(t, err)
	assert.NoError(t, l.Release())
}
