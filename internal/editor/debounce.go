// Package editor provides the interactive-session primitives: keystroke
// debouncing and the single-in-flight submit guard.
package editor

import (
	"sync"
	"time"

	"github.com/zawlinnphyo/wordstake/pkg/textx"
)

// Debouncer coalesces keystroke validation triggers per editor session.
// A new keystroke supersedes the pending timer, so the callback fires only
// after the typist pauses, and only with the trailing window of recent
// tokens rather than the full document.
type Debouncer struct {
	delay  time.Duration
	window int

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewDebouncer(delay time.Duration, window int) *Debouncer {
	return &Debouncer{
		delay:  delay,
		window: window,
		timers: make(map[string]*time.Timer),
	}
}

// Type registers a keystroke. fn receives the last window words of content
// once delay elapses without another keystroke for the session.
func (d *Debouncer) Type(sessionID, content string, fn func(words []string)) {
	words := textx.Words(textx.StripMarkup(content))
	if len(words) > d.window {
		words = words[len(words)-d.window:]
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[sessionID]; ok {
		t.Stop()
	}
	d.timers[sessionID] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		delete(d.timers, sessionID)
		d.mu.Unlock()
		fn(words)
	})
}

// Cancel drops any pending trigger for the session.
func (d *Debouncer) Cancel(sessionID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[sessionID]; ok {
		t.Stop()
		delete(d.timers, sessionID)
	}
}

// Stop cancels every pending trigger; used on shutdown.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for id, t := range d.timers {
		t.Stop()
		delete(d.timers, id)
	}
}
