package transcript

import (
	"context"
	"path/filepath"
	"testing"
)

// exercised against both implementations to keep them interchangeable
func runStoreTests(t *testing.T, open func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("session and message roundtrip", func(t *testing.T) {
		store := open(t)
		defer store.Close()

		sess, err := store.CreateSession(ctx, "first")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := store.AppendMessage(ctx, sess.ID, "user", "hello"); err != nil {
			t.Fatal(err)
		}
		if _, err := store.AppendMessage(ctx, sess.ID, "assistant", "hi there"); err != nil {
			t.Fatal(err)
		}

		msgs, err := store.Messages(ctx, sess.ID)
		if err != nil {
			t.Fatal(err)
		}
		if len(msgs) != 2 {
			t.Fatalf("got %d messages, want 2", len(msgs))
		}
		if msgs[0].Role != "user" || msgs[0].Content != "hello" {
			t.Fatalf("first message %+v", msgs[0])
		}
		if msgs[1].Role != "assistant" {
			t.Fatalf("second message %+v", msgs[1])
		}
	})

	t.Run("sessions listed newest first", func(t *testing.T) {
		store := open(t)
		defer store.Close()

		a, err := store.CreateSession(ctx, "a")
		if err != nil {
			t.Fatal(err)
		}
		b, err := store.CreateSession(ctx, "b")
		if err != nil {
			t.Fatal(err)
		}
		// touching a makes it the most recent
		if _, err := store.AppendMessage(ctx, a.ID, "user", "ping"); err != nil {
			t.Fatal(err)
		}

		sessions, err := store.Sessions(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(sessions) != 2 {
			t.Fatalf("got %d sessions", len(sessions))
		}
		if sessions[0].ID != a.ID {
			t.Fatalf("newest first: got %d, want %d (b=%d)", sessions[0].ID, a.ID, b.ID)
		}
	})

	t.Run("delete removes messages", func(t *testing.T) {
		store := open(t)
		defer store.Close()

		sess, err := store.CreateSession(ctx, "doomed")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := store.AppendMessage(ctx, sess.ID, "user", "bye"); err != nil {
			t.Fatal(err)
		}
		if err := store.DeleteSession(ctx, sess.ID); err != nil {
			t.Fatal(err)
		}
		msgs, err := store.Messages(ctx, sess.ID)
		if err != nil {
			t.Fatal(err)
		}
		if len(msgs) != 0 {
			t.Fatalf("messages survived delete: %d", len(msgs))
		}
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreTests(t, func(t *testing.T) Store {
		return NewMemoryStore()
	})
}

func TestSQLiteStore(t *testing.T) {
	runStoreTests(t, func(t *testing.T) Store {
		store, err := OpenSQLite(filepath.Join(t.TempDir(), "transcript.db"))
		if err != nil {
			t.Fatal(err)
		}
		return store
	})
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "transcript.db")

	store, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	sess, err := store.CreateSession(ctx, "persisted")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.AppendMessage(ctx, sess.ID, "user", "still here?"); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	msgs, err := reopened.Messages(ctx, sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 1 || msgs[0].Content != "still here?" {
		t.Fatalf("messages after reopen: %+v", msgs)
	}
}
