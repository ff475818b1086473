package wrap

// Cache memoizes wrapped lines per message at the current terminal width.
// Wrap points are width-dependent throughout, so a width change invalidates
// the entire cache rather than individual entries.
//
// Cache is private to the render loop and needs no locking.
type Cache struct {
	width   int
	entries map[int64]cacheEntry
}

type cacheEntry struct {
	content string
	lines   []VisualLine
}

// NewCache creates a wrap cache for the given width.
func NewCache(width int) *Cache {
	if width < 1 {
		width = 1
	}
	return &Cache{width: width, entries: make(map[int64]cacheEntry)}
}

// Width returns the width the cache currently wraps at.
func (c *Cache) Width() int { return c.width }

// SetWidth changes the wrap width. All cached entries are dropped when the
// width actually changes.
func (c *Cache) SetWidth(width int) {
	if width < 1 {
		width = 1
	}
	if width == c.width {
		return
	}
	c.width = width
	c.entries = make(map[int64]cacheEntry)
}

// Wrap returns the visual lines for a message, re-wrapping only when the
// content changed since the last call (streaming appends) or nothing is
// cached. Calling Wrap twice with identical inputs yields identical output.
func (c *Cache) Wrap(id int64, content string) []VisualLine {
	if e, ok := c.entries[id]; ok && e.content == content {
		return e.lines
	}

	raw := Lines(content, c.width)
	lines := make([]VisualLine, len(raw))
	for i, text := range raw {
		lines[i] = VisualLine{MessageID: id, Seq: i, Text: text}
	}
	c.entries[id] = cacheEntry{content: content, lines: lines}
	return lines
}

// Forget drops a single message, e.g. once its lines have been committed to
// native scrollback and the terminal owns that text.
func (c *Cache) Forget(id int64) {
	delete(c.entries, id)
}

// Len returns the number of cached messages.
func (c *Cache) Len() int { return len(c.entries) }
