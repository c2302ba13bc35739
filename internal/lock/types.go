package lock

import (
	"time"
)

type AcquireInput struct {
	// Key is the resource to lock
	Key string

	// TTL bounds how long the lock survives a crashed holder, defaults to the locker's TTL
	TTL time.Duration

	// WaitTimeout bounds how long Acquire retries, defaults to the locker's wait timeout
	WaitTimeout time.Duration
}

type AcquireOutput struct {
	// Token proves ownership and must be passed to Release
	Token string
}

type ReleaseInput struct {
	Key   string
	Token string
}
