package ipc

import (
	"encoding/json"
	"testing"

	"github.com/deenmedia/qurand/internal/audio"
	"github.com/deenmedia/qurand/internal/engine"
)

// stubHandle is just enough engine to let the session move through its
// states; load and play callbacks fire synchronously from Play.
type stubHandle struct {
	cb      engine.Callbacks
	playing bool
}

func (h *stubHandle) Play() {
	h.playing = true
	if h.cb.OnLoad != nil {
		h.cb.OnLoad()
	}
	if h.cb.OnPlay != nil {
		h.cb.OnPlay()
	}
}

func (h *stubHandle) Pause() {
	h.playing = false
	if h.cb.OnPause != nil {
		h.cb.OnPause()
	}
}

func (h *stubHandle) Stop()             { h.playing = false }
func (h *stubHandle) Unload()           {}
func (h *stubHandle) Seek(float64)      {}
func (h *stubHandle) SetVolume(float64) {}
func (h *stubHandle) Playing() bool     { return h.playing }
func (h *stubHandle) Loading() bool     { return false }
func (h *stubHandle) Position() float64 { return 0 }
func (h *stubHandle) Duration() float64 { return 30 }

func newTestServer(t *testing.T) *Server {
	t.Helper()
	pool := engine.NewPool(func(url string, opts engine.Options) engine.Handle {
		return &stubHandle{cb: opts.Callbacks}
	})
	t.Cleanup(pool.Close)
	session := audio.NewSession(pool, nil)
	t.Cleanup(session.Close)
	return NewServer("", session, pool, "")
}

func statusFrom(t *testing.T, resp *Response) audio.Status {
	t.Helper()
	if !resp.Success {
		t.Fatalf("Expected success, got error %q", resp.Error)
	}
	var st audio.Status
	if err := json.Unmarshal(resp.Data, &st); err != nil {
		t.Fatalf("Failed to unmarshal status: %v", err)
	}
	return st
}

func TestHandlePlayAyah(t *testing.T) {
	s := newTestServer(t)

	resp := s.handleRequest(&Request{
		Cmd:  CmdPlayAyah,
		Data: json.RawMessage(`{"surah":2,"ayah":255,"surahName":"Al-Baqarah"}`),
	})

	st := statusFrom(t, resp)
	if !st.IsPlaying {
		t.Error("Expected playing after playAyah")
	}
	if st.Track == nil || st.Track.Surah != 2 || st.Track.Ayah != 255 {
		t.Errorf("Unexpected track: %+v", st.Track)
	}
}

func TestHandlePlayAyahValidation(t *testing.T) {
	s := newTestServer(t)

	cases := []string{
		`{"surah":0,"ayah":1}`,
		`{"surah":115,"ayah":1}`,
		`{"surah":1,"ayah":8}`,
		`{"surah":1,"ayah":0}`,
	}
	for _, data := range cases {
		resp := s.handleRequest(&Request{Cmd: CmdPlayAyah, Data: json.RawMessage(data)})
		if resp.Success {
			t.Errorf("Expected validation error for %s", data)
		}
	}
}

func TestHandlePlayRadioUnknownStation(t *testing.T) {
	s := newTestServer(t)

	resp := s.handleRequest(&Request{
		Cmd:  CmdPlayRadio,
		Data: json.RawMessage(`{"stationId":"does-not-exist"}`),
	})
	if resp.Success {
		t.Error("Expected error for unknown station")
	}
}

func TestHandleToggleAndStop(t *testing.T) {
	s := newTestServer(t)

	s.handleRequest(&Request{
		Cmd:  CmdPlaySurah,
		Data: json.RawMessage(`{"surah":36,"surahName":"Ya-Sin"}`),
	})

	st := statusFrom(t, s.handleRequest(&Request{Cmd: CmdToggle}))
	if st.IsPlaying {
		t.Error("Expected paused after toggle")
	}

	st = statusFrom(t, s.handleRequest(&Request{Cmd: CmdStop}))
	if st.State != audio.StateIdle || st.Track != nil {
		t.Errorf("Expected idle cleared status, got %+v", st)
	}
}

func TestHandleVolume(t *testing.T) {
	s := newTestServer(t)

	st := statusFrom(t, s.handleRequest(&Request{
		Cmd:  CmdVolume,
		Data: json.RawMessage(`{"level":0.4}`),
	}))
	if st.Volume != 0.4 {
		t.Errorf("Expected volume 0.4, got %v", st.Volume)
	}
}

func TestHandleStationsAndReciters(t *testing.T) {
	s := newTestServer(t)

	resp := s.handleRequest(&Request{Cmd: CmdStations})
	if !resp.Success {
		t.Fatalf("stations failed: %s", resp.Error)
	}
	var stations []map[string]interface{}
	if err := json.Unmarshal(resp.Data, &stations); err != nil {
		t.Fatalf("Failed to unmarshal stations: %v", err)
	}
	if len(stations) != 8 {
		t.Errorf("Expected 8 stations, got %d", len(stations))
	}

	resp = s.handleRequest(&Request{Cmd: CmdReciters})
	if !resp.Success {
		t.Fatalf("reciters failed: %s", resp.Error)
	}
	var reciters []map[string]interface{}
	if err := json.Unmarshal(resp.Data, &reciters); err != nil {
		t.Fatalf("Failed to unmarshal reciters: %v", err)
	}
	if len(reciters) != 4 {
		t.Errorf("Expected 4 reciters, got %d", len(reciters))
	}
}

func TestConfiguredDefaultReciter(t *testing.T) {
	pool := engine.NewPool(func(url string, opts engine.Options) engine.Handle {
		return &stubHandle{cb: opts.Callbacks}
	})
	defer pool.Close()
	session := audio.NewSession(pool, nil)
	defer session.Close()
	s := NewServer("", session, pool, "ar.husary")

	resp := s.handleRequest(&Request{
		Cmd:  CmdPlayAyah,
		Data: json.RawMessage(`{"surah":1,"ayah":1}`),
	})

	st := statusFrom(t, resp)
	if st.Track == nil || st.Track.Reciter != "ar.husary" {
		t.Errorf("Expected configured reciter applied, got %+v", st.Track)
	}
}

func TestHandleUnknownCommand(t *testing.T) {
	s := newTestServer(t)

	resp := s.handleRequest(&Request{Cmd: "scanLibrary"})
	if resp.Success {
		t.Error("Expected error for unknown command")
	}
}

func TestHandlePoolStats(t *testing.T) {
	s := newTestServer(t)

	s.handleRequest(&Request{
		Cmd:  CmdPlayAyah,
		Data: json.RawMessage(`{"surah":1,"ayah":1}`),
	})

	resp := s.handleRequest(&Request{Cmd: CmdPoolStats})
	if !resp.Success {
		t.Fatalf("poolStats failed: %s", resp.Error)
	}
	var stats PoolStatsResponse
	if err := json.Unmarshal(resp.Data, &stats); err != nil {
		t.Fatalf("Failed to unmarshal stats: %v", err)
	}
	if stats.Total != 1 || stats.Active != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}
