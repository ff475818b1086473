package transcript

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore keeps transcripts in memory. Used when persistence is
// disabled and by tests.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	messages map[int64][]*Message
	nextID   int64
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[int64]*Session),
		messages: make(map[int64][]*Message),
	}
}

func (s *MemoryStore) CreateSession(_ context.Context, title string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	now := time.Now().UTC()
	sess := &Session{ID: s.nextID, Title: title, CreatedAt: now, UpdatedAt: now}
	s.sessions[sess.ID] = sess
	return sess, nil
}

func (s *MemoryStore) Sessions(_ context.Context) ([]*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	// newest first, matching the SQLite ordering
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].UpdatedAt.After(out[i].UpdatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (s *MemoryStore) AppendMessage(_ context.Context, sessionID int64, role, content string) (*Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %d not found", sessionID)
	}
	s.nextID++
	now := time.Now().UTC()
	m := &Message{ID: s.nextID, SessionID: sessionID, Role: role, Content: content, CreatedAt: now}
	s.messages[sessionID] = append(s.messages[sessionID], m)
	sess.UpdatedAt = now
	return m, nil
}

func (s *MemoryStore) Messages(_ context.Context, sessionID int64) ([]*Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.messages[sessionID]
	out := make([]*Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (s *MemoryStore) DeleteSession(_ context.Context, sessionID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	delete(s.messages, sessionID)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
