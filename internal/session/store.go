package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store holds live sessions in memory. Sessions are ephemeral: a learner who
// navigates away simply stops calling, and the sweeper reclaims the entry once
// its lease expires.
type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
}

func NewStore(ttl time.Duration) *Store {
	st := &Store{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
	}

	// Cleanup goroutine
	go func() {
		for {
			time.Sleep(ttl)
			st.mu.Lock()
			for id, s := range st.sessions {
				if time.Since(s.idleSince()) > ttl {
					delete(st.sessions, id)
				}
			}
			st.mu.Unlock()
		}
	}()

	return st
}

func (st *Store) Put(s *Session) {
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
}

func (st *Store) Get(id uuid.UUID) (*Session, bool) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	st.mu.Unlock()
	if ok {
		s.touch(time.Now())
	}
	return s, ok
}

func (st *Store) Delete(id uuid.UUID) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
