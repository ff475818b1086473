// Package debuglog records per-frame render statistics as JSON lines for
// offline debugging of flicker and scrollback issues. Disabled by default;
// a nop logger costs one nil check per frame.
package debuglog

import (
	"encoding/json"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FrameStats describes one render frame.
type FrameStats struct {
	Time     time.Time `json:"ts"`
	Event    string    `json:"event"`
	Mode     string    `json:"mode"`
	Lines    int       `json:"lines"`
	Scrolled int       `json:"scrolled"`
	Bytes    int       `json:"bytes"`
	Cols     int       `json:"cols"`
	Rows     int       `json:"rows"`
	DurMS    float64   `json:"dur_ms"`
}

// Logger writes frame stats to a size-rotated JSONL file.
type Logger struct {
	mu  sync.Mutex
	out *lumberjack.Logger
	enc *json.Encoder
}

// New creates a logger writing to path, rotating at 10 MB and keeping 3
// old files.
func New(path string) *Logger {
	out := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 3,
		Compress:   true,
	}
	return &Logger{out: out, enc: json.NewEncoder(out)}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{}
}

// Frame records one frame. Safe for concurrent use; errors are swallowed,
// debug logging must never take the renderer down.
func (l *Logger) Frame(s FrameStats) {
	if l == nil || l.enc == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.enc.Encode(s)
}

// Close flushes and closes the underlying file.
func (l *Logger) Close() error {
	if l == nil || l.out == nil {
		return nil
	}
	return l.out.Close()
}
