// Package audio coordinates all playback in the daemon: one Session owns
// the currently audible track, drives the engine pool, and keeps Quran and
// radio playback mutually exclusive.
package audio

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/deenmedia/qurand/internal/engine"
	"github.com/deenmedia/qurand/internal/logging"
	"github.com/deenmedia/qurand/internal/prefs"
	"github.com/deenmedia/qurand/internal/quran"
	"github.com/deenmedia/qurand/internal/radio"
)

// State is the playback lifecycle of the session.
type State string

const (
	StateIdle          State = "idle"
	StateLoading       State = "loading"
	StatePlaying       State = "playing"
	StatePaused        State = "paused"
	StatePausedByOther State = "pausedByOther"
)

// TrackType distinguishes the two kinds of playable content.
type TrackType string

const (
	TrackQuran TrackType = "quran"
	TrackRadio TrackType = "radio"
)

// Track describes the current or most recent playback target. For Quran
// tracks Surah is always set and Ayah is zero when a full surah is playing.
type Track struct {
	Type        TrackType      `json:"type"`
	Surah       int            `json:"surah,omitempty"`
	Ayah        int            `json:"ayah,omitempty"`
	SurahName   string         `json:"surahName,omitempty"`
	Reciter     string         `json:"reciter,omitempty"`
	ReciterName string         `json:"reciterName,omitempty"`
	Station     *radio.Station `json:"station,omitempty"`
}

// Status is a point-in-time snapshot of the session, safe to serialize.
type Status struct {
	State           State   `json:"state"`
	Track           *Track  `json:"track,omitempty"`
	IsPlaying       bool    `json:"isPlaying"`
	IsPausedByOther bool    `json:"isPausedByOther"`
	Progress        float64 `json:"progress"` // seconds
	Duration        float64 `json:"duration"` // seconds, 0 for live streams
	Volume          float64 `json:"volume"`
	PauseReason     string  `json:"pauseReason,omitempty"`
}

// Session is the single authority over what is playing. All transport
// commands funnel through it; engine callbacks feed back into one
// transition handler so state can never be updated from two places.
type Session struct {
	mu    sync.Mutex
	pool  *engine.Pool
	prefs *prefs.Store
	log   *logrus.Entry

	// gen increments on every new playback and on Stop. Engine callbacks
	// carry the gen they were created under; a stale gen is ignored, so a
	// superseded handle can never mutate the session.
	gen uint64

	state       State
	track       *Track
	handle      engine.Handle
	url         string
	volume      float64
	progress    float64
	duration    float64
	pauseReason string

	tickerDone chan struct{}
}

// NewSession creates a session backed by the given engine pool. The store
// may be nil, in which case volume starts at the default and is not
// persisted.
func NewSession(pool *engine.Pool, store *prefs.Store) *Session {
	volume := prefs.DefaultVolume
	if store != nil {
		volume = store.Volume()
	}
	return &Session{
		pool:   pool,
		prefs:  store,
		log:    logging.Component("session"),
		state:  StateIdle,
		volume: volume,
	}
}

// PlayQuranAyah starts playback of a single ayah. An empty reciter ID
// selects the default reciter.
func (s *Session) PlayQuranAyah(surah, ayah int, surahName, reciterID string) {
	r := quran.ResolveReciter(reciterID)
	if surahName == "" {
		surahName = quran.SurahName(surah)
	}
	s.log.Infof("Playing surah %d ayah %d, reciter %s", surah, ayah, r.ID)
	s.startTrack(&Track{
		Type:        TrackQuran,
		Surah:       surah,
		Ayah:        ayah,
		SurahName:   surahName,
		Reciter:     r.ID,
		ReciterName: r.Name,
	}, quran.AyahURL(r.ID, surah, ayah), []string{"mp3"}, false)
}

// PlayQuranSurah starts playback of a full surah recording.
func (s *Session) PlayQuranSurah(surah int, surahName, reciterID string) {
	r := quran.ResolveReciter(reciterID)
	if surahName == "" {
		surahName = quran.SurahName(surah)
	}
	s.log.Infof("Playing surah %d, reciter %s", surah, r.ID)
	s.startTrack(&Track{
		Type:        TrackQuran,
		Surah:       surah,
		SurahName:   surahName,
		Reciter:     r.ID,
		ReciterName: r.Name,
	}, quran.SurahURL(r.ID, surah), []string{"mp3"}, false)
}

// PlayRadio starts playback of a live radio station.
func (s *Session) PlayRadio(station radio.Station) {
	s.log.Infof("Playing radio station %s (%s)", station.ID, station.Name)
	s.startTrack(&Track{
		Type:    TrackRadio,
		Station: &station,
	}, station.StreamURL, []string{string(station.Format)}, true)
}

// startTrack is the shared start path for all content. If a track of the
// other type is audible it is paused before any teardown, so the listener
// never hears both at once and never hears the old track cut out abruptly
// ahead of the pause.
func (s *Session) startTrack(track *Track, url string, formats []string, stream bool) {
	s.mu.Lock()

	if s.handle != nil && s.track != nil && s.track.Type != track.Type && s.state == StatePlaying {
		other := s.handle
		s.state = StatePaused
		s.stopTickerLocked()
		s.mu.Unlock()
		other.Pause()
		s.mu.Lock()
	}

	s.cleanupLocked()
	s.gen++
	gen := s.gen
	s.track = track
	s.url = url
	s.state = StateLoading
	s.duration = 0
	s.pauseReason = ""
	volume := s.volume
	s.mu.Unlock()

	opts := engine.Options{
		Volume:    volume,
		Stream:    stream,
		Formats:   formats,
		Callbacks: s.callbacks(gen),
	}
	h := s.pool.GetOrCreate(url, opts)

	s.mu.Lock()
	if s.gen != gen {
		// Superseded while the handle was being created. Return the
		// claimed slot, or the entry would stay active forever.
		s.mu.Unlock()
		s.pool.Release(url)
		return
	}
	s.handle = h
	s.mu.Unlock()

	h.Play()
}

// TogglePlay pauses a playing track or resumes a paused one. It is a no-op
// when nothing is loaded or when playback was paused on another track's
// behalf; only ResumeFromOther may undo that.
func (s *Session) TogglePlay() {
	s.mu.Lock()
	if s.handle == nil || s.state == StatePausedByOther {
		s.mu.Unlock()
		return
	}
	h := s.handle
	playing := s.state == StatePlaying
	s.mu.Unlock()

	if playing {
		h.Pause()
	} else {
		h.Play()
	}
}

// Stop halts all playback and clears the current track. It is the universal
// cancel: safe to call from any state, idempotent, and afterwards the
// session is exactly as if nothing had ever played.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cleanupLocked()
	s.gen++
	s.track = nil
	s.state = StateIdle
	s.duration = 0
	s.pauseReason = ""
}

// cleanupLocked stops the ticker, silences the handle, and returns it to
// the pool. The ticker is cancelled before the handle goes back so no tick
// can report progress for a slot that may be reused. Must be called with
// s.mu held; Stop and Unload fire no callbacks so holding the lock is safe.
func (s *Session) cleanupLocked() {
	s.stopTickerLocked()
	if s.handle != nil {
		h := s.handle
		url := s.url
		s.handle = nil
		s.url = ""
		h.Stop()
		s.pool.Release(url)
	}
	s.progress = 0
}

// PauseForOther pauses current playback on behalf of another audio source,
// recording why. Only has an effect while actually playing.
func (s *Session) PauseForOther(reason string) {
	s.mu.Lock()
	if s.state != StatePlaying || s.handle == nil {
		s.mu.Unlock()
		return
	}
	s.log.Infof("Pausing for %s", reason)
	s.state = StatePausedByOther
	s.pauseReason = reason
	s.stopTickerLocked()
	h := s.handle
	s.mu.Unlock()

	h.Pause()
}

// ResumeFromOther resumes playback previously interrupted by PauseForOther.
// A no-op in every other state.
func (s *Session) ResumeFromOther() {
	s.mu.Lock()
	if s.state != StatePausedByOther || s.handle == nil {
		s.mu.Unlock()
		return
	}
	h := s.handle
	s.mu.Unlock()

	h.Play()
}

// Seek jumps to the given position in seconds. Live radio cannot seek, so
// the call is ignored for radio tracks. Progress is updated immediately
// rather than waiting for the next tick.
func (s *Session) Seek(seconds float64) {
	s.mu.Lock()
	if s.handle == nil || s.track == nil || s.track.Type != TrackQuran {
		s.mu.Unlock()
		return
	}
	if seconds < 0 {
		seconds = 0
	}
	s.progress = seconds
	h := s.handle
	s.mu.Unlock()

	h.Seek(seconds)
}

// SetVolume applies and persists the playback volume. Values outside [0, 1]
// are clamped.
func (s *Session) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}

	s.mu.Lock()
	s.volume = v
	h := s.handle
	store := s.prefs
	s.mu.Unlock()

	if h != nil {
		h.SetVolume(v)
	}
	if store != nil {
		if err := store.SetVolume(v); err != nil {
			s.log.Warnf("Failed to persist volume: %v", err)
		}
	}
}

// engineEvent identifies which engine callback fired.
type engineEvent int

const (
	evLoad engineEvent = iota
	evPlay
	evPause
	evEnd
	evLoadError
	evPlayError
)

// callbacks builds the callback set for a new handle, bound to the gen the
// handle was created under.
func (s *Session) callbacks(gen uint64) engine.Callbacks {
	return engine.Callbacks{
		OnLoad:  func() { s.handleEvent(gen, evLoad, nil) },
		OnPlay:  func() { s.handleEvent(gen, evPlay, nil) },
		OnPause: func() { s.handleEvent(gen, evPause, nil) },
		OnEnd:   func() { s.handleEvent(gen, evEnd, nil) },
		OnLoadError: func(id int, err error) {
			s.handleEvent(gen, evLoadError, err)
		},
		OnPlayError: func(id int, err error) {
			s.handleEvent(gen, evPlayError, err)
		},
	}
}

// handleEvent is the single place session state changes in response to the
// engine. Events from a superseded handle are dropped at the door.
func (s *Session) handleEvent(gen uint64, ev engineEvent, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return
	}

	switch ev {
	case evLoad:
		if s.track != nil && s.track.Type == TrackQuran && s.handle != nil {
			s.duration = s.handle.Duration()
		}

	case evPlay:
		s.state = StatePlaying
		s.pauseReason = ""
		if s.handle != nil {
			s.startTickerLocked(s.handle, gen)
		}

	case evPause:
		// PauseForOther already moved the state itself; an engine pause
		// only matters when it corresponds to a plain user pause.
		if s.state == StatePlaying {
			s.state = StatePaused
			s.stopTickerLocked()
		}

	case evEnd:
		s.log.Debug("Track finished")
		if s.state == StatePlaying || s.state == StateLoading {
			s.state = StatePaused
		}
		s.progress = 0
		s.stopTickerLocked()

	case evLoadError:
		s.log.Errorf("Failed to load %s: %v", s.url, err)
		s.state = StatePaused
		s.stopTickerLocked()

	case evPlayError:
		s.log.Errorf("Playback error on %s: %v", s.url, err)
		s.state = StatePaused
		s.stopTickerLocked()
	}
}

// Status returns a snapshot of the session. The returned track is a copy.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	var track *Track
	if s.track != nil {
		t := *s.track
		track = &t
	}
	return Status{
		State:           s.state,
		Track:           track,
		IsPlaying:       s.state == StatePlaying,
		IsPausedByOther: s.state == StatePausedByOther,
		Progress:        s.progress,
		Duration:        s.duration,
		Volume:          s.volume,
		PauseReason:     s.pauseReason,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentTrackType reports what kind of track is loaded, or "" when idle.
func (s *Session) CurrentTrackType() TrackType {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.track == nil {
		return ""
	}
	return s.track.Type
}

// Volume returns the session volume.
func (s *Session) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

// Close stops playback and invalidates the session. The engine pool is
// owned by the caller and is not closed here.
func (s *Session) Close() {
	s.Stop()
}
