package audio

import (
	"time"

	"github.com/deenmedia/qurand/internal/engine"
)

// progressInterval is the cadence at which playback position is sampled
// while a track is audible.
const progressInterval = 100 * time.Millisecond

// startTickerLocked launches the progress ticker for the given handle. Any
// prior ticker is cancelled first, so at most one is ever running. Must be
// called with s.mu held.
func (s *Session) startTickerLocked(h engine.Handle, gen uint64) {
	s.stopTickerLocked()

	done := make(chan struct{})
	s.tickerDone = done

	go func() {
		ticker := time.NewTicker(progressInterval)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				// A handle that is no longer playing makes the tick
				// a no-op; the next start brings a fresh handle.
				if !h.Playing() {
					continue
				}
				pos := h.Position()

				s.mu.Lock()
				if s.gen == gen && s.tickerDone == done {
					s.progress = pos
				}
				s.mu.Unlock()
			}
		}
	}()
}

// stopTickerLocked cancels the active ticker, if any. The cancellation is
// synchronous with respect to state: once it returns, no future tick can
// publish progress for the old handle. Must be called with s.mu held.
func (s *Session) stopTickerLocked() {
	if s.tickerDone != nil {
		close(s.tickerDone)
		s.tickerDone = nil
	}
}
