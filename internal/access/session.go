package access

import "sync"

// MapSession is an in-memory Session, used when no HTTP session is attached.
type MapSession struct {
	mu     sync.Mutex
	values map[string]any
}

// NewMapSession creates an empty session.
func NewMapSession() *MapSession {
	return &MapSession{values: make(map[string]any)}
}

func (s *MapSession) Get(key string) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

func (s *MapSession) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Snapshot copies the unlock marker for vanityURL out of sess, for use after
// the request that owns sess has finished.
func Snapshot(sess Session, vanityURL string) *MapSession {
	snap := NewMapSession()
	if sess == nil {
		return snap
	}
	key := markerKey(vanityURL)
	if v := sess.Get(key); v != nil {
		snap.Set(key, v)
	}
	return snap
}
