package wrap

import "testing"

func TestCacheWrapTagsLines(t *testing.T) {
	c := NewCache(5)
	lines := c.Wrap(7, "hello world")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for i, vl := range lines {
		if vl.MessageID != 7 || vl.Seq != i {
			t.Fatalf("line %d tagged %+v", i, vl)
		}
	}
}

func TestCacheReusesUnchangedContent(t *testing.T) {
	c := NewCache(10)
	a := c.Wrap(1, "same content")
	b := c.Wrap(1, "same content")
	if len(a) == 0 || len(b) != len(a) || &a[0] != &b[0] {
		t.Fatal("expected the cached slice back for unchanged content")
	}
	grown := c.Wrap(1, "same content plus a streaming delta")
	if len(grown) <= len(a) {
		t.Fatal("expected re-wrap after content changed")
	}
}

func TestCacheSetWidthDropsEntries(t *testing.T) {
	c := NewCache(10)
	c.Wrap(1, "one")
	c.Wrap(2, "two")
	c.SetWidth(10) // same width keeps entries
	if c.Len() != 2 {
		t.Fatalf("same-width SetWidth dropped entries, len=%d", c.Len())
	}
	c.SetWidth(20)
	if c.Len() != 0 {
		t.Fatalf("width change kept %d entries", c.Len())
	}
	if c.Width() != 20 {
		t.Fatalf("width = %d, want 20", c.Width())
	}
}

func TestCacheForget(t *testing.T) {
	c := NewCache(10)
	c.Wrap(1, "one")
	c.Forget(1)
	if c.Len() != 0 {
		t.Fatalf("len = %d after Forget", c.Len())
	}
}
