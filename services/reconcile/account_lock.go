package reconcile

import (
	"sync"

	"github.com/google/uuid"
)

// AccountLock serializes the read-compare-insert sequence of snapshot
// recording per account. Two writers racing on the same stale "last balance"
// would both record a change; holding the account's mutex across the sequence
// keeps every inserted snapshot different from its immediate predecessor.
type AccountLock struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewAccountLock() *AccountLock {
	return &AccountLock{
		locks: make(map[uuid.UUID]*sync.Mutex),
	}
}

// Lock acquires the mutex for the given account, creating it on first use.
func (a *AccountLock) Lock(accountID uuid.UUID) {
	a.mu.Lock()
	m, ok := a.locks[accountID]
	if !ok {
		m = &sync.Mutex{}
		a.locks[accountID] = m
	}
	a.mu.Unlock()

	m.Lock()
}

func (a *AccountLock) Unlock(accountID uuid.UUID) {
	a.mu.Lock()
	m, ok := a.locks[accountID]
	a.mu.Unlock()

	if ok {
		m.Unlock()
	}
}
