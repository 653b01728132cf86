package engine

import (
	"sync"
	"time"

	"github.com/deenmedia/qurand/internal/logging"
	"github.com/sirupsen/logrus"
)

const (
	// maxPoolSize bounds concurrently live engine instances. The bound is
	// soft: when every entry is active the pool grows past it rather than
	// failing the request.
	maxPoolSize = 5

	// sweepInterval is how often idle entries are purged.
	sweepInterval = 5 * time.Minute

	// maxIdle is how long an inactive entry may stay pooled before the
	// sweep unloads it, independent of pool size.
	maxIdle = 10 * time.Minute
)

// poolEntry is the bookkeeping record for one pooled handle.
type poolEntry struct {
	handle   Handle
	lastUsed time.Time
	active   bool
}

// Stats reports pool occupancy for observability.
type Stats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

// Pool owns a bounded set of reusable engine handles keyed by source URL.
// It is constructed once per process and injected into every consumer.
type Pool struct {
	mu      sync.Mutex
	factory Factory
	entries map[string]*poolEntry
	done    chan struct{}
	log     *logrus.Entry
}

// NewPool creates a pool that builds handles with factory and starts the
// periodic idle sweep. Close must be called at process exit.
func NewPool(factory Factory) *Pool {
	p := &Pool{
		factory: factory,
		entries: make(map[string]*poolEntry),
		done:    make(chan struct{}),
		log:     logging.Component("pool"),
	}

	go p.sweepLoop()

	return p
}

// GetOrCreate returns an active handle for url. A request for a URL already
// pooled replaces that URL's own entry, whatever its state; otherwise an
// inactive, non-loading slot is unloaded and consumed by the new handle,
// bounding the number of concurrently decoding resources. Engine-level
// failures surface through the callbacks in opts, never here.
func (p *Pool) GetOrCreate(url string, opts Options) Handle {
	p.mu.Lock()
	defer p.mu.Unlock()

	if entry, ok := p.entries[url]; ok {
		// Same-URL replacement does not grow the pool, so no unrelated
		// slot is reclaimed and active entries elsewhere stay untouched.
		entry.handle.Stop()
		entry.handle.Unload()
		delete(p.entries, url)
	} else {
		var oldestURL string
		var oldest *poolEntry
		for key, entry := range p.entries {
			if entry.active || entry.handle.Loading() {
				continue
			}
			if oldest == nil || entry.lastUsed.Before(oldest.lastUsed) {
				oldestURL = key
				oldest = entry
			}
		}
		if oldest != nil {
			oldest.handle.Stop()
			oldest.handle.Unload()
			delete(p.entries, oldestURL)
			p.log.Debugf("Reusing pooled slot of %s for %s", oldestURL, url)
		}
	}

	handle := p.factory(url, opts)
	p.entries[url] = &poolEntry{
		handle:   handle,
		lastUsed: time.Now(),
		active:   true,
	}

	if len(p.entries) > maxPoolSize {
		p.evictOldestLocked()
	}

	return handle
}

// Release marks the entry for url inactive and available for reuse. The
// underlying resource stays loaded so a later request for the same URL is
// cheap.
func (p *Pool) Release(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if entry, ok := p.entries[url]; ok {
		entry.active = false
		entry.lastUsed = time.Now()
	}
}

// Destroy force-unloads and removes the entry for url, bypassing pooling.
func (p *Pool) Destroy(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if entry, ok := p.entries[url]; ok {
		entry.handle.Unload()
		delete(p.entries, url)
	}
}

// evictOldestLocked removes the least-recently-used inactive entry. When all
// entries are active nothing is evicted and the pool temporarily exceeds its
// nominal cap.
func (p *Pool) evictOldestLocked() {
	var oldestURL string
	var oldest *poolEntry

	for url, entry := range p.entries {
		if entry.active {
			continue
		}
		if oldest == nil || entry.lastUsed.Before(oldest.lastUsed) {
			oldestURL = url
			oldest = entry
		}
	}

	if oldest == nil {
		return
	}

	oldest.handle.Unload()
	delete(p.entries, oldestURL)
	p.log.Debugf("Evicted pooled instance: %s", oldestURL)
}

// sweepOnce unloads every inactive entry idle for longer than maxIdle.
func (p *Pool) sweepOnce(now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for url, entry := range p.entries {
		if !entry.active && now.Sub(entry.lastUsed) > maxIdle {
			entry.handle.Unload()
			delete(p.entries, url)
			p.log.Debugf("Sweep removed idle instance: %s", url)
		}
	}
}

func (p *Pool) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			p.sweepOnce(time.Now())
		}
	}
}

// Stats returns total/active/inactive entry counts.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	stats := Stats{Total: len(p.entries)}
	for _, entry := range p.entries {
		if entry.active {
			stats.Active++
		} else {
			stats.Inactive++
		}
	}
	return stats
}

// Close cancels the sweep and unloads every pooled handle. Used at process
// exit only; sessions come and go without destroying the pool.
func (p *Pool) Close() {
	close(p.done)

	p.mu.Lock()
	defer p.mu.Unlock()

	for url, entry := range p.entries {
		entry.handle.Unload()
		delete(p.entries, url)
	}
}
