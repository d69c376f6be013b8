package services

import "sync"

// UserLocks serializes balance and lot mutations per user. Two concurrent
// sells from the same user would otherwise both pass the held-shares check
// before either decrements a lot; cash and trade services share one instance
// so deposits, withdrawals, and trades for a user never interleave.
type UserLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewUserLocks creates an empty lock table.
func NewUserLocks() *UserLocks {
	return &UserLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the given user and returns its unlock func.
func (l *UserLocks) Lock(userID string) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
