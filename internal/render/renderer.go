// Package render implements the hybrid inline renderer: finalized messages
// become ordinary terminal text that ends up in native scrollback, while a
// small control region at the bottom holds the in-flight response tail, a
// status line and the input prompt.
//
// A session starts in row-tracking mode with content placed at absolute
// rows. Once content would collide with the control region the renderer
// transitions, once and permanently, to scroll mode where committed lines
// are pushed into scrollback with CSI S. All output for one event is
// batched into a single write, bracketed by synchronized-output when the
// terminal supports it.
package render

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/aircher/ion/internal/debuglog"
	"github.com/aircher/ion/internal/term"
	"github.com/aircher/ion/internal/ui"
	"github.com/aircher/ion/internal/wrap"
)

// Message roles. Stored as-is in the transcript; the renderer styles each
// role differently.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
	RoleError     = "error"
)

// Options configures a Renderer.
type Options struct {
	// Markdown renders assistant messages through glamour on finalize.
	Markdown bool
	// PendingTail caps the visible lines of an in-flight response.
	PendingTail int
	// SyncOutput overrides synchronized-output detection when non-nil.
	SyncOutput *bool
	// Stats receives per-frame statistics. Nil means no stats.
	Stats *debuglog.Logger
	// Styles overrides the default styles bound to the output.
	Styles *ui.Styles
}

type message struct {
	id      int64
	role    string
	content string
}

type eventKind int

const (
	evAppend eventKind = iota
	evStreamBegin
	evStreamDelta
	evStreamEnd
	evInput
	evStatus
	evBusy
	evResize
)

type event struct {
	kind eventKind
	id   int64
	role string
	text string
	on   bool
	size term.Size
}

// Renderer owns the terminal. All drawing happens on the goroutine running
// Run; the exported methods enqueue events and are safe to call from
// anywhere.
type Renderer struct {
	outFile *os.File // nil when constructed over a plain io.Writer
	caps    term.Capabilities
	size    term.Size

	w         *term.Writer
	cache     *wrap.Cache
	tracker   *Tracker
	committer *Committer
	region    *Region
	styles    *ui.Styles
	stats     *debuglog.Logger
	opts      Options

	msgs    []message // live messages, reprint source in row-tracking mode
	pending *message

	prevRegionRow    int
	prevRegionHeight int
	started          bool
	err              error

	nextID    atomic.Int64
	events    chan event
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// New probes the terminal attached to out and builds a renderer for it.
func New(out *os.File, opts Options) *Renderer {
	caps := term.Probe(out)
	r := NewWithCaps(out, caps, opts)
	r.outFile = out
	return r
}

// NewWithCaps builds a renderer over an arbitrary writer with fixed
// capabilities. Resize queries are disabled without a backing file.
func NewWithCaps(out io.Writer, caps term.Capabilities, opts Options) *Renderer {
	if opts.SyncOutput != nil {
		caps.SyncOutput = *opts.SyncOutput
	}
	styles := opts.Styles
	if styles == nil {
		styles = ui.NewStyles(out)
	}
	stats := opts.Stats
	if stats == nil {
		stats = debuglog.Nop()
	}

	w := term.NewWriter(out, caps.SyncOutput)
	r := &Renderer{
		caps:      caps,
		size:      caps.Size,
		w:         w,
		cache:     wrap.NewCache(caps.Size.Cols),
		tracker:   NewTracker(caps.Size.Rows),
		committer: NewCommitter(w),
		region:    NewRegion(styles, opts.PendingTail),
		styles:    styles,
		stats:     stats,
		opts:      opts,
		events:    make(chan event, 256),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	return r
}

// Run drives the render loop until ctx is cancelled, Close is called, or a
// terminal write fails. It owns SIGWINCH handling and the spinner ticker.
func (r *Renderer) Run(ctx context.Context) error {
	defer close(r.done)

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	defer signal.Stop(winch)

	ticker := time.NewTicker(r.region.SpinnerInterval())
	defer ticker.Stop()

	r.startup()

	for r.err == nil {
		select {
		case <-ctx.Done():
			r.shutdown()
			return ctx.Err()
		case <-r.quit:
			r.shutdown()
			return r.err
		case <-winch:
			// coalesce bursts: resizing a window fires many SIGWINCHs
		drain:
			for {
				select {
				case <-winch:
				default:
					break drain
				}
			}
			r.handleResize()
		case <-ticker.C:
			if r.region.Busy() {
				r.region.TickSpinner()
				r.redraw("tick")
			}
		case ev := <-r.events:
			r.dispatch(ev)
		}
	}
	return r.err
}

// Close stops the render loop and blocks until it has exited.
func (r *Renderer) Close() {
	r.closeOnce.Do(func() { close(r.quit) })
	<-r.done
}

// Append enqueues a finalized message and returns its id.
func (r *Renderer) Append(role, content string) int64 {
	id := r.nextID.Add(1)
	r.send(event{kind: evAppend, id: id, role: role, text: content})
	return id
}

// BeginStream starts an in-flight response shown in the control region.
func (r *Renderer) BeginStream(role string) int64 {
	id := r.nextID.Add(1)
	r.send(event{kind: evStreamBegin, id: id, role: role})
	return id
}

// StreamDelta appends text to the in-flight response.
func (r *Renderer) StreamDelta(id int64, delta string) {
	r.send(event{kind: evStreamDelta, id: id, text: delta})
}

// EndStream finalizes the in-flight response: its full content is committed
// as a message and the streaming tail is cleared.
func (r *Renderer) EndStream(id int64) {
	r.send(event{kind: evStreamEnd, id: id})
}

// SetInput updates the text shown on the prompt line.
func (r *Renderer) SetInput(s string) {
	r.send(event{kind: evInput, text: s})
}

// SetStatus updates the status line.
func (r *Renderer) SetStatus(s string) {
	r.send(event{kind: evStatus, text: s})
}

// SetBusy toggles the spinner.
func (r *Renderer) SetBusy(on bool) {
	r.send(event{kind: evBusy, on: on})
}

// Resize reconciles the renderer with new dimensions without waiting for
// SIGWINCH. Useful when embedding the renderer behind another event source.
func (r *Renderer) Resize(cols, rows int) {
	r.send(event{kind: evResize, size: term.Size{Cols: cols, Rows: rows}})
}

func (r *Renderer) send(ev event) {
	select {
	case r.events <- ev:
	case <-r.done:
	}
}

func (r *Renderer) dispatch(ev event) {
	switch ev.kind {
	case evAppend:
		r.handleAppend(message{id: ev.id, role: ev.role, content: ev.text})
	case evStreamBegin:
		r.pending = &message{id: ev.id, role: ev.role}
		r.region.SetBusy(true)
		r.redraw("stream-begin")
	case evStreamDelta:
		if r.pending == nil || r.pending.id != ev.id {
			return
		}
		r.pending.content += ev.text
		r.region.SetPending(wrap.Lines(r.pending.content, r.size.Cols))
		r.redraw("stream-delta")
	case evStreamEnd:
		if r.pending == nil || r.pending.id != ev.id {
			return
		}
		m := *r.pending
		r.pending = nil
		r.region.ClearPending()
		r.region.SetBusy(false)
		r.handleAppend(m)
	case evInput:
		r.region.SetInput(ev.text)
		r.redraw("input")
	case evStatus:
		r.region.SetStatus(ev.text)
		r.redraw("status")
	case evBusy:
		r.region.SetBusy(ev.on)
		r.redraw("busy")
	case evResize:
		if ev.size.Cols > 0 && ev.size.Rows > 0 {
			r.applyResize(ev.size)
		}
	}
}

// startup pushes whatever the shell left on screen into native scrollback
// by feeding the terminal a screenful of newlines, then homes the cursor
// and draws the empty control region. Shell history stays reachable by
// scrolling up, which is the whole point of rendering inline.
func (r *Renderer) startup() {
	r.w.BeginFrame()
	r.w.WriteString(strings.Repeat("\n", r.size.Rows))
	r.w.WriteString(term.CursorTo(0, 0))
	if err := r.w.EndFrame(); err != nil {
		r.fail(err)
		return
	}
	r.redraw("start")
}

// shutdown parks the cursor on a fresh line below everything drawn so the
// shell prompt reappears in a sane spot.
func (r *Renderer) shutdown() {
	if !r.started || r.err != nil {
		return
	}
	row := r.prevRegionRow + r.prevRegionHeight
	if row > r.size.Rows-1 {
		row = r.size.Rows - 1
	}
	r.w.BeginFrame()
	r.w.WriteString(term.CursorTo(row, 0))
	r.w.WriteString("\n")
	r.w.WriteString(term.ShowCursor)
	if err := r.w.EndFrame(); err != nil {
		r.fail(err)
	}
}

func (r *Renderer) fail(err error) {
	if r.err == nil {
		r.err = err
	}
	r.w.Restore()
}

// handleAppend commits a finalized message: wrap it, advance the tracker,
// and let the committer place the lines. A blank separator line follows
// every message.
func (r *Renderer) handleAppend(m message) {
	vls := r.wrapMessage(m)
	texts := make([]string, 0, len(vls)+1)
	for _, vl := range vls {
		texts = append(texts, vl.Text)
	}
	texts = append(texts, "")

	r.frame("append", -1, func(f *frameInfo) {
		act := r.tracker.Advance(len(texts), f.regionHeight)
		f.scrolled = r.committer.Commit(texts, act.Scroll, act.StartRow, r.size.Rows-f.regionHeight)
		f.lines = len(texts)
		switch act.Kind {
		case ActionPrintInPlace:
			r.msgs = append(r.msgs, m)
		case ActionTransition:
			r.dropLive()
			r.cache.Forget(m.id)
		case ActionScrollAppend:
			r.cache.Forget(m.id)
		}
	})
}

// dropLive forgets all live messages. Called when scroll mode takes over:
// from then on the terminal owns the committed text and it is never
// re-wrapped.
func (r *Renderer) dropLive() {
	for _, m := range r.msgs {
		r.cache.Forget(m.id)
	}
	r.msgs = nil
}

func (r *Renderer) wrapMessage(m message) []wrap.VisualLine {
	return r.cache.Wrap(m.id, r.renderMessage(m))
}

func (r *Renderer) renderMessage(m message) string {
	switch m.role {
	case RoleUser:
		return r.styles.Prompt.Render("> ") + r.styles.Input.Render(m.content)
	case RoleError:
		return r.styles.Error.Render(m.content)
	case RoleSystem:
		return r.styles.Muted.Render(m.content)
	default:
		if r.opts.Markdown {
			return ui.RenderMarkdown(m.content, r.size.Cols)
		}
		return m.content
	}
}

func (r *Renderer) handleResize() {
	if r.outFile == nil {
		return
	}
	r.applyResize(term.QuerySize(r.outFile, r.size))
}

// applyResize reconciles the renderer with new terminal dimensions.
// Height-only changes reposition the control region and may force the
// transition when the anchor no longer fits. Width changes invalidate every
// wrap point: row-tracking mode reprints all live messages from the top,
// scroll mode reflows only the control region since committed scrollback is
// out of reach.
func (r *Renderer) applyResize(size term.Size) {
	if size == r.size {
		return
	}
	widthChanged := size.Cols != r.size.Cols
	r.size = size
	r.tracker.SetRows(size.Rows)

	if widthChanged {
		r.cache.SetWidth(size.Cols)
		if r.pending != nil {
			r.region.SetPending(wrap.Lines(r.pending.content, size.Cols))
		}
		if r.tracker.Mode() == ModeRowTracking {
			r.reprint()
			return
		}
		r.redraw("resize")
		return
	}

	// height-only change: the frame pass repositions the region and forces
	// the transition itself when the anchor no longer fits
	r.redraw("resize")
}

// reprint redraws every live message from row zero at the new width.
// Wrapping is deterministic, so this produces the same bytes a cold start
// with the same history would.
func (r *Renderer) reprint() {
	var texts []string
	for _, m := range r.msgs {
		for _, vl := range r.wrapMessage(m) {
			texts = append(texts, vl.Text)
		}
		texts = append(texts, "")
	}

	r.tracker.Reset(r.size.Rows)
	r.frame("resize", 0, func(f *frameInfo) {
		act := r.tracker.Advance(len(texts), f.regionHeight)
		f.scrolled = r.committer.Commit(texts, act.Scroll, act.StartRow, r.size.Rows-f.regionHeight)
		f.lines = len(texts)
		if act.Kind == ActionTransition {
			r.dropLive()
		}
	})
}

func (r *Renderer) redraw(event string) {
	r.frame(event, -1, nil)
}

type frameInfo struct {
	regionHeight int
	scrolled     int
	lines        int
}

// frame runs one redraw cycle: hide the cursor, clear the old control
// region, apply the body (which may scroll and print content), draw the
// region at its new row and park the cursor on the input line. The whole
// frame goes out in a single write.
//
// Clearing precedes any scrolling so rows freed by CSI S are guaranteed
// blank and no region fragment can leak into native scrollback. clearFrom
// overrides the clear origin when >= 0 (full reprints clear from the top).
func (r *Renderer) frame(event string, clearFrom int, body func(*frameInfo)) {
	if r.err != nil {
		return
	}
	start := time.Now()

	regionLines := r.region.Lines(r.size.Cols, r.size.Rows-1)
	f := frameInfo{regionHeight: len(regionLines)}

	r.w.BeginFrame()
	r.w.WriteString(term.HideCursor)
	switch {
	case clearFrom >= 0:
		r.w.WriteString(term.CursorTo(clearFrom, 0))
		r.w.WriteString(term.EraseBelow)
	case r.started:
		r.w.WriteString(term.CursorTo(r.clearRow(), 0))
		r.w.WriteString(term.EraseBelow)
		// a taller region in scroll mode claims rows that hold committed
		// content; scroll it out of the way rather than overwrite it
		if r.tracker.Mode() == ModeScroll && f.regionHeight > r.prevRegionHeight {
			grow := f.regionHeight - r.prevRegionHeight
			r.w.WriteString(term.ScrollUp(grow))
			f.scrolled += grow
		}
	}

	if body != nil {
		body(&f)
	}

	// region growth or a height shrink can leave the anchor without room;
	// the tracker resolves that the same way an overflowing append would
	if r.tracker.Mode() == ModeRowTracking && r.tracker.Anchor()+f.regionHeight > r.size.Rows {
		act := r.tracker.Advance(0, f.regionHeight)
		f.scrolled += r.committer.Commit(nil, act.Scroll, act.StartRow, r.size.Rows-f.regionHeight)
		if act.Kind == ActionTransition {
			r.dropLive()
		}
	}

	row := r.tracker.RegionRow(f.regionHeight)
	if row > r.size.Rows-f.regionHeight {
		row = r.size.Rows - f.regionHeight
	}
	if row < 0 {
		row = 0
	}
	for i, line := range regionLines {
		r.w.WriteString(term.CursorTo(row+i, 0))
		r.w.WriteString(line)
	}
	r.w.WriteString(term.CursorTo(row+f.regionHeight-1, r.region.InputCol(r.size.Cols)))
	r.w.WriteString(term.ShowCursor)

	frameBytes := r.w.FrameLen()
	if err := r.w.EndFrame(); err != nil {
		r.fail(err)
		return
	}
	r.prevRegionRow, r.prevRegionHeight = row, f.regionHeight
	r.started = true

	r.stats.Frame(debuglog.FrameStats{
		Time:     start,
		Event:    event,
		Mode:     r.tracker.Mode().String(),
		Lines:    f.lines,
		Scrolled: f.scrolled,
		Bytes:    frameBytes,
		Cols:     r.size.Cols,
		Rows:     r.size.Rows,
		DurMS:    float64(time.Since(start).Microseconds()) / 1000,
	})
}

// clearRow picks the clear origin: the top of the previous region, never
// lower than the anchor in row-tracking mode, clamped to the screen.
func (r *Renderer) clearRow() int {
	row := r.prevRegionRow
	if r.tracker.Mode() == ModeRowTracking {
		if a := r.tracker.Anchor(); a < row {
			row = a
		}
	}
	if row > r.size.Rows-1 {
		row = r.size.Rows - 1
	}
	if row < 0 {
		row = 0
	}
	return row
}

// Mode reports the current rendering mode.
func (r *Renderer) Mode() Mode { return r.tracker.Mode() }

// Size reports the dimensions the renderer is laying out for.
func (r *Renderer) Size() term.Size { return r.size }

// IsTTY reports whether the output was a terminal at probe time.
func (r *Renderer) IsTTY() bool { return r.caps.IsTTY }
