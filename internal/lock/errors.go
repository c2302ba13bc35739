package lock

// LockError represents a lock error
type LockError string

// Error returns the error message
func (e LockError) Error() string {
	return string(e)
}

const (
	// ErrLockTimeout is returned when the lock could not be acquired in time
	ErrLockTimeout LockError = "lock wait timed out"

	// ErrLockNotHeld is returned when releasing a lock the token no longer owns
	ErrLockNotHeld LockError = "lock not held"
)
