// Package engine abstracts low-level audio playback behind a small capability
// interface and bounds the number of live engine instances with a pool.
package engine

// Callbacks are the lifecycle hooks a caller attaches to a handle. Handles
// invoke them from their own goroutines (or synchronously, for test fakes);
// callers must not assume a particular thread.
type Callbacks struct {
	OnLoad      func()
	OnPlay      func()
	OnPause     func()
	OnEnd       func()
	OnLoadError func(id int, err error)
	OnPlayError func(id int, err error)
}

// Options configure a new handle.
type Options struct {
	// Volume is the initial volume in [0,1].
	Volume float64

	// Stream requests progressive streaming rather than full-buffer decode.
	// Live radio must set this; seeking is unavailable while streaming.
	Stream bool

	// Formats hints at the expected container formats ("mp3", "aac", "hls").
	Formats []string

	Callbacks Callbacks
}

// Handle is one loaded/playable audio source.
//
// Play begins (or resumes) playback; loading happens lazily on first Play and
// completion is reported through OnLoad/OnPlay or OnLoadError. Stop and
// Unload fire no callbacks: they are the caller-initiated teardown path, and
// state bookkeeping for them is the caller's responsibility.
type Handle interface {
	Play()
	Pause()
	Stop()

	// Seek moves to the given position in seconds. No-op while streaming.
	Seek(seconds float64)
	SetVolume(v float64)

	Playing() bool
	Loading() bool

	// Position is the current playback position in seconds.
	Position() float64
	// Duration is the total length in seconds, 0 when unknown (live streams).
	Duration() float64

	// Unload stops playback and releases the underlying decoder resources.
	// The handle must not be used afterwards.
	Unload()
}

// Factory constructs a handle for a source URL. The daemon installs the
// beep-backed factory; tests install fakes that fire callbacks synchronously.
type Factory func(url string, opts Options) Handle
