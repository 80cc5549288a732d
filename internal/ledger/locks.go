package ledger

import "sync"

// accountLocks hands out one mutex per account id. Locks are acquired in
// ascending id order so two transfers touching the same accounts in opposite
// directions cannot deadlock.
type accountLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newAccountLocks() *accountLocks {
	return &accountLocks{locks: make(map[int64]*sync.Mutex)}
}

func (l *accountLocks) get(id int64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	return m
}

// lockPair locks both account ids and returns the matching unlock. Callers
// guarantee a != b.
func (l *accountLocks) lockPair(a, b int64) func() {
	if b < a {
		a, b = b, a
	}
	first, second := l.get(a), l.get(b)
	first.Lock()
	second.Lock()
	return func() {
		second.Unlock()
		first.Unlock()
	}
}
