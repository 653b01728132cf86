package engine

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/sirupsen/logrus"

	"github.com/deenmedia/qurand/internal/logging"
)

// speakerSampleRate is the fixed output rate; sources are resampled to it.
const speakerSampleRate = beep.SampleRate(44100)

var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(speakerSampleRate, speakerSampleRate.N(time.Second/10))
	})
	return speakerErr
}

// NewBeepFactory returns the production Factory backed by gopxl/beep. Handles
// fetch their source over HTTP on first Play: CDN files are buffered fully so
// they stay seekable, live streams (Options.Stream) decode progressively.
func NewBeepFactory() Factory {
	// No client timeout: live streams are open-ended. Failures surface
	// through the load/play error callbacks instead.
	client := &http.Client{}
	log := logging.Component("engine")

	return func(url string, opts Options) Handle {
		return &beepHandle{
			url:    url,
			opts:   opts,
			live:   opts.Stream,
			volume: opts.Volume,
			client: client,
			log:    log,
		}
	}
}

type beepHandle struct {
	mu     sync.Mutex
	url    string
	opts   Options
	live   bool
	client *http.Client
	log    *logrus.Entry

	loading  bool
	loaded   bool
	playing  bool
	stopped  bool
	unloaded bool

	volume float64

	streamer beep.StreamSeekCloser
	body     io.Closer // kept open for live streams
	format   beep.Format
	ctrl     *beep.Ctrl
	volFx    *effects.Volume

	// Elapsed-time tracking for live streams, which have no seekable
	// sample position.
	startedAt          time.Time
	elapsedBeforePause time.Duration
}

func (h *beepHandle) Play() {
	h.mu.Lock()

	if h.unloaded || h.stopped {
		h.mu.Unlock()
		return
	}

	if !h.loaded {
		if h.loading {
			h.mu.Unlock()
			return
		}
		h.loading = true
		h.mu.Unlock()
		go h.load()
		return
	}

	if h.playing {
		h.mu.Unlock()
		return
	}

	speaker.Lock()
	h.ctrl.Paused = false
	speaker.Unlock()
	h.playing = true
	h.startedAt = time.Now()
	onPlay := h.opts.Callbacks.OnPlay
	h.mu.Unlock()

	if onPlay != nil {
		onPlay()
	}
}

// load fetches and decodes the source, then starts playback. Runs on its own
// goroutine; all outcomes are reported through the lifecycle callbacks.
func (h *beepHandle) load() {
	resp, err := h.client.Get(h.url)
	if err != nil {
		h.failLoad(fmt.Errorf("fetch %s: %w", h.url, err))
		return
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		h.failLoad(fmt.Errorf("fetch %s: unexpected status %s", h.url, resp.Status))
		return
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	var body io.Closer

	if h.live {
		streamer, format, err = mp3.Decode(resp.Body)
		body = resp.Body
	} else {
		var data []byte
		data, err = io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			h.failLoad(fmt.Errorf("read %s: %w", h.url, err))
			return
		}
		streamer, format, err = mp3.Decode(nopCloser{bytes.NewReader(data)})
	}
	if err != nil {
		if body != nil {
			body.Close()
		}
		h.failLoad(fmt.Errorf("decode %s: %w", h.url, err))
		return
	}

	h.mu.Lock()
	if h.unloaded || h.stopped {
		// Torn down while the fetch was in flight.
		h.loading = false
		h.mu.Unlock()
		streamer.Close()
		if body != nil {
			body.Close()
		}
		return
	}
	h.streamer = streamer
	h.format = format
	h.body = body
	h.loaded = true
	h.loading = false
	onLoad := h.opts.Callbacks.OnLoad
	h.mu.Unlock()

	if onLoad != nil {
		onLoad()
	}

	if err := initSpeaker(); err != nil {
		h.failPlay(fmt.Errorf("speaker init: %w", err))
		return
	}

	h.mu.Lock()
	if h.unloaded || h.stopped {
		h.mu.Unlock()
		return
	}
	resampled := beep.Resample(4, format.SampleRate, speakerSampleRate, streamer)
	h.ctrl = &beep.Ctrl{Streamer: resampled}
	h.volFx = &effects.Volume{
		Streamer: h.ctrl,
		Base:     2,
		Volume:   volumeExponent(h.volume),
		Silent:   h.volume <= 0,
	}
	h.playing = true
	h.startedAt = time.Now()
	seq := beep.Seq(h.volFx, beep.Callback(func() {
		// The mixer invokes this with the speaker lock held; hop to a
		// fresh goroutine before touching handle state.
		go h.streamEnded()
	}))
	onPlay := h.opts.Callbacks.OnPlay
	h.mu.Unlock()

	speaker.Play(seq)

	if onPlay != nil {
		onPlay()
	}
}

func (h *beepHandle) failLoad(err error) {
	h.log.Errorf("Load failed: %v", err)

	h.mu.Lock()
	h.loading = false
	cb := h.opts.Callbacks.OnLoadError
	h.mu.Unlock()

	if cb != nil {
		cb(0, err)
	}
}

func (h *beepHandle) failPlay(err error) {
	h.log.Errorf("Playback failed: %v", err)

	h.mu.Lock()
	cb := h.opts.Callbacks.OnPlayError
	h.mu.Unlock()

	if cb != nil {
		cb(0, err)
	}
}

func (h *beepHandle) streamEnded() {
	h.mu.Lock()
	if h.stopped || h.unloaded || !h.playing {
		h.mu.Unlock()
		return
	}
	h.playing = false
	h.elapsedBeforePause += time.Since(h.startedAt)
	cb := h.opts.Callbacks.OnEnd
	h.mu.Unlock()

	if cb != nil {
		cb()
	}
}

func (h *beepHandle) Pause() {
	h.mu.Lock()
	if !h.playing || h.ctrl == nil {
		h.mu.Unlock()
		return
	}

	speaker.Lock()
	h.ctrl.Paused = true
	speaker.Unlock()
	h.playing = false
	h.elapsedBeforePause += time.Since(h.startedAt)
	cb := h.opts.Callbacks.OnPause
	h.mu.Unlock()

	if cb != nil {
		cb()
	}
}

func (h *beepHandle) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopLocked()
}

func (h *beepHandle) stopLocked() {
	h.stopped = true
	h.playing = false

	if h.ctrl != nil {
		// Detaching the streamer drains the entry out of the mixer.
		speaker.Lock()
		h.ctrl.Paused = true
		h.ctrl.Streamer = nil
		speaker.Unlock()
	}
}

func (h *beepHandle) Unload() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.unloaded {
		return
	}
	h.stopLocked()
	h.unloaded = true

	if h.streamer != nil {
		h.streamer.Close()
		h.streamer = nil
	}
	if h.body != nil {
		h.body.Close()
		h.body = nil
	}
	h.ctrl = nil
	h.volFx = nil
}

func (h *beepHandle) Seek(seconds float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.live || h.streamer == nil {
		return
	}

	speaker.Lock()
	err := h.streamer.Seek(h.format.SampleRate.N(secondsToDuration(seconds)))
	speaker.Unlock()
	if err != nil {
		h.log.Warnf("Seek failed: %v", err)
	}
}

func (h *beepHandle) SetVolume(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.volume = v
	if h.volFx != nil {
		speaker.Lock()
		h.volFx.Volume = volumeExponent(v)
		h.volFx.Silent = v <= 0
		speaker.Unlock()
	}
}

func (h *beepHandle) Playing() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.playing
}

func (h *beepHandle) Loading() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loading
}

func (h *beepHandle) Position() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.live {
		elapsed := h.elapsedBeforePause
		if h.playing {
			elapsed += time.Since(h.startedAt)
		}
		return elapsed.Seconds()
	}
	if h.streamer == nil {
		return 0
	}

	speaker.Lock()
	pos := h.streamer.Position()
	speaker.Unlock()
	return h.format.SampleRate.D(pos).Seconds()
}

func (h *beepHandle) Duration() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.live || h.streamer == nil {
		return 0
	}
	return h.format.SampleRate.D(h.streamer.Len()).Seconds()
}

// volumeExponent maps a linear [0,1] volume to the base-2 exponent
// effects.Volume expects. Zero is handled via the Silent flag.
func volumeExponent(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Log2(v)
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// nopCloser adapts an in-memory reader to the io.ReadCloser mp3.Decode wants.
type nopCloser struct {
	*bytes.Reader
}

func (nopCloser) Close() error { return nil }
