package term

import (
	"bytes"
	"fmt"
	"io"
)

// Writer batches one frame's worth of escape sequences and content into a
// single write to the terminal. Batching keeps partially-built frames off
// the wire and gives synchronized output something meaningful to bracket.
//
// Writer is not safe for concurrent use; the render loop owns it for the
// duration of one event's processing.
type Writer struct {
	out  io.Writer
	buf  bytes.Buffer
	sync bool // bracket frames with DEC 2026
	open bool
}

// NewWriter creates a frame writer targeting out. When syncOutput is true
// every frame is wrapped in a synchronized-output begin/end pair.
func NewWriter(out io.Writer, syncOutput bool) *Writer {
	return &Writer{out: out, sync: syncOutput}
}

// BeginFrame starts buffering a frame.
func (w *Writer) BeginFrame() {
	if w.open {
		return
	}
	w.open = true
	w.buf.Reset()
	if w.sync {
		w.buf.WriteString(SyncBegin)
	}
}

// WriteString appends s to the current frame.
func (w *Writer) WriteString(s string) {
	w.buf.WriteString(s)
}

// EndFrame closes the frame and writes it to the terminal in one call.
// A write error is fatal to the render loop: there is no meaningful
// recovery for a dead output stream, so it is propagated, not retried.
func (w *Writer) EndFrame() error {
	if !w.open {
		return nil
	}
	w.open = false
	if w.sync {
		w.buf.WriteString(SyncEnd)
	}
	if _, err := w.out.Write(w.buf.Bytes()); err != nil {
		return fmt.Errorf("terminal write: %w", err)
	}
	return nil
}

// FrameLen returns the size in bytes of the frame being built.
func (w *Writer) FrameLen() int { return w.buf.Len() }

// Restore makes a best-effort attempt to leave the terminal usable after a
// fatal error: synchronized-update mode is ended and the cursor is shown.
// Errors are ignored; the stream is likely already dead.
func (w *Writer) Restore() {
	var b bytes.Buffer
	if w.sync {
		b.WriteString(SyncEnd)
	}
	b.WriteString(ShowCursor)
	w.out.Write(b.Bytes()) //nolint:errcheck
}
