package term

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestWriterBatchesIntoSingleWrite(t *testing.T) {
	var out countingWriter
	w := NewWriter(&out, false)
	w.BeginFrame()
	w.WriteString("a")
	w.WriteString("b")
	if err := w.EndFrame(); err != nil {
		t.Fatal(err)
	}
	if out.writes != 1 {
		t.Fatalf("writes = %d, want 1", out.writes)
	}
	if out.buf.String() != "ab" {
		t.Fatalf("got %q", out.buf.String())
	}
}

func TestWriterSyncBracketing(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	w.BeginFrame()
	w.WriteString("x")
	if err := w.EndFrame(); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	if !strings.HasPrefix(got, SyncBegin) || !strings.HasSuffix(got, SyncEnd) {
		t.Fatalf("frame not bracketed: %q", got)
	}
}

func TestWriterEndWithoutBeginIsNoop(t *testing.T) {
	var out countingWriter
	w := NewWriter(&out, true)
	if err := w.EndFrame(); err != nil {
		t.Fatal(err)
	}
	if out.writes != 0 {
		t.Fatalf("writes = %d, want 0", out.writes)
	}
}

func TestWriterPropagatesWriteError(t *testing.T) {
	w := NewWriter(failingWriter{}, false)
	w.BeginFrame()
	w.WriteString("x")
	err := w.EndFrame()
	if err == nil || !strings.Contains(err.Error(), "terminal write") {
		t.Fatalf("err = %v", err)
	}
}

func TestWriterRestore(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	w.Restore()
	got := buf.String()
	if !strings.Contains(got, SyncEnd) || !strings.Contains(got, ShowCursor) {
		t.Fatalf("restore wrote %q", got)
	}
}

type countingWriter struct {
	buf    bytes.Buffer
	writes int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	c.writes++
	return c.buf.Write(p)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}
