package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// SpinnerFrames exposes the dot spinner animation for the control region
// status line. The frames come from bubbles so the animation matches other
// tools built on the same stack; the ticker is driven by the render loop,
// not a tea program.
type SpinnerFrames struct {
	frames []string
	fps    time.Duration
	idx    int
}

// NewSpinnerFrames returns the default spinner animation.
func NewSpinnerFrames() *SpinnerFrames {
	s := spinner.MiniDot
	return &SpinnerFrames{frames: s.Frames, fps: s.FPS}
}

// Interval returns how often the spinner should advance.
func (s *SpinnerFrames) Interval() time.Duration {
	return s.fps
}

// Current returns the frame to draw now.
func (s *SpinnerFrames) Current() string {
	return s.frames[s.idx]
}

// Advance moves to the next frame and returns it.
func (s *SpinnerFrames) Advance() string {
	s.idx = (s.idx + 1) % len(s.frames)
	return s.frames[s.idx]
}
