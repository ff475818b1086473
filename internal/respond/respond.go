// Package respond abstracts where assistant replies come from. ion ships
// without a model backend; the Echo responder exercises the full streaming
// path so the renderer can be used and demoed standalone.
package respond

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Responder produces a streamed reply to a prompt. The channel closes when
// the reply is complete or ctx is cancelled.
type Responder interface {
	Reply(ctx context.Context, prompt string) (<-chan string, error)
}

// Echo streams the prompt back as formatted markdown, one word at a time.
type Echo struct {
	// Delay between words. Zero streams as fast as the consumer reads.
	Delay time.Duration
}

func (e *Echo) Reply(ctx context.Context, prompt string) (<-chan string, error) {
	out := make(chan string)
	go func() {
		defer close(out)
		reply := fmt.Sprintf("You said:\n\n> %s\n\nNo model backend is wired into this build, so this is the built-in **echo** responder.", prompt)
		for _, word := range strings.SplitAfter(reply, " ") {
			select {
			case <-ctx.Done():
				return
			case out <- word:
			}
			if e.Delay > 0 {
				time.Sleep(e.Delay)
			}
		}
	}()
	return out, nil
}
