package main

import "sync"

// clipboardState is the last known remote clipboard text, guarded by
// its own mutex per the concurrency model (shared between the RDP
// facade's update callback and the input reader's CLP handling).
type clipboardState struct {
	mu      sync.Mutex
	text    string
	updated bool
}

func (c *clipboardState) set(text string) {
	c.mu.Lock()
	c.text = text
	c.updated = true
	c.mu.Unlock()
}

// consume returns the cached text and clears the updated flag. The
// caller uses updated to decide between echoing the cache and issuing
// a fresh request to the RDP facade.
func (c *clipboardState) consume() (text string, wasUpdated bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	text, wasUpdated = c.text, c.updated
	c.updated = false
	return text, wasUpdated
}

// OnClipboardUpdate is invoked by the RDP facade when the remote
// clipboard changes. Ordering relative to CLP commands from the
// browser is not guaranteed.
func (s *Session) OnClipboardUpdate(text string) {
	s.clipboard.set(text)
}

// handleClipboardRequest implements the CLP command: request fresh
// clipboard content from the RDP facade if it has changed since last
// sent, otherwise echo the cached text.
func (s *Session) handleClipboardRequest() {
	text, updated := s.clipboard.consume()
	if updated {
		s.rdp.RequestClipboardText()
		return
	}
	s.writer.emitText("clipboard|" + text)
}
