// Package transcript persists chat sessions so a conversation survives the
// terminal it was rendered in.
package transcript

import (
	"context"
	"time"
)

// Session groups the messages of one conversation.
type Session struct {
	ID        int64
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Message is one finalized transcript entry. Streaming deltas are never
// stored; a message is written once, on finalize.
type Message struct {
	ID        int64
	SessionID int64
	Role      string
	Content   string
	CreatedAt time.Time
}

// Store is the persistence interface for sessions and messages.
type Store interface {
	CreateSession(ctx context.Context, title string) (*Session, error)
	Sessions(ctx context.Context) ([]*Session, error)
	AppendMessage(ctx context.Context, sessionID int64, role, content string) (*Message, error)
	Messages(ctx context.Context, sessionID int64) ([]*Message, error)
	DeleteSession(ctx context.Context, sessionID int64) error
	Close() error
}
