package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/deenmedia/qurand/internal/audio"
	"github.com/deenmedia/qurand/internal/engine"
	"github.com/deenmedia/qurand/internal/logging"
	"github.com/deenmedia/qurand/internal/quran"
	"github.com/deenmedia/qurand/internal/radio"
)

// Server handles IPC communication with clients
type Server struct {
	socketPath     string
	session        *audio.Session
	pool           *engine.Pool
	defaultReciter string
	listener       net.Listener
	log            *logrus.Entry

	mu      sync.Mutex
	clients map[net.Conn]struct{}
}

// NewServer creates a new IPC server. defaultReciter, when non-empty, fills
// in play requests that name no reciter.
func NewServer(socketPath string, session *audio.Session, pool *engine.Pool, defaultReciter string) *Server {
	return &Server{
		socketPath:     socketPath,
		session:        session,
		pool:           pool,
		defaultReciter: defaultReciter,
		log:            logging.Component("ipc"),
		clients:        make(map[net.Conn]struct{}),
	}
}

// Start listens on the unix socket and serves clients until ctx is
// cancelled. The socket file is removed on shutdown.
func (s *Server) Start(ctx context.Context) error {
	if err := os.RemoveAll(s.socketPath); err != nil {
		return fmt.Errorf("failed to remove existing socket: %w", err)
	}

	s.log.Infof("Creating socket at %s", s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to listen on socket: %w", err)
	}
	s.listener = listener

	// User-only access
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	go s.acceptLoop(ctx)

	<-ctx.Done()

	s.log.Info("Shutting down server")

	s.mu.Lock()
	for conn := range s.clients {
		conn.Close()
	}
	s.mu.Unlock()

	listener.Close()
	os.RemoveAll(s.socketPath)

	return nil
}

func (s *Server) acceptLoop(ctx context.Context) {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
				s.log.Warnf("Accept error: %v", err)
				continue
			}
		}

		s.mu.Lock()
		s.clients[conn] = struct{}{}
		s.mu.Unlock()

		go s.handleConnection(ctx, conn)
	}
}

func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	defer func() {
		conn.Close()
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
	}()

	reader := bufio.NewReader(conn)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		// Newline-delimited JSON, one request per line
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if err != io.EOF {
				s.log.Warnf("Read error: %v", err)
			}
			return
		}

		req, err := DecodeRequest(line)
		if err != nil {
			s.log.Warnf("Invalid request: %v", err)
			if err := s.sendResponse(conn, NewErrorResponse("invalid request format")); err != nil {
				return
			}
			continue
		}

		if req.Cmd != CmdStatus {
			s.log.Debugf("Command: %s", req.Cmd)
		}

		if err := s.sendResponse(conn, s.handleRequest(req)); err != nil {
			s.log.Warnf("Send error: %v", err)
			return
		}
	}
}

func (s *Server) sendResponse(conn net.Conn, resp *Response) error {
	data, err := EncodeResponse(resp)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = conn.Write(data)
	return err
}

func (s *Server) handleRequest(req *Request) *Response {
	switch req.Cmd {
	case CmdPlayAyah:
		return s.handlePlayAyah(req)
	case CmdPlaySurah:
		return s.handlePlaySurah(req)
	case CmdPlayRadio:
		return s.handlePlayRadio(req)
	case CmdToggle:
		s.session.TogglePlay()
		return s.handleStatus()
	case CmdStop:
		s.session.Stop()
		return s.handleStatus()
	case CmdPauseForOther:
		return s.handlePauseForOther(req)
	case CmdResumeFromOther:
		s.session.ResumeFromOther()
		return s.handleStatus()
	case CmdSeek:
		return s.handleSeek(req)
	case CmdVolume:
		return s.handleVolume(req)
	case CmdStatus:
		return s.handleStatus()
	case CmdStations:
		return s.handleStations()
	case CmdReciters:
		return s.handleReciters()
	case CmdPoolStats:
		return s.handlePoolStats()
	default:
		return NewErrorResponse(fmt.Sprintf("unknown command: %s", req.Cmd))
	}
}

func (s *Server) handlePlayAyah(req *Request) *Response {
	var playReq PlayAyahRequest
	if err := json.Unmarshal(req.Data, &playReq); err != nil {
		return NewErrorResponse("invalid playAyah request")
	}
	if playReq.Surah < 1 || playReq.Surah > quran.SurahCount {
		return NewErrorResponse(fmt.Sprintf("surah must be 1-%d", quran.SurahCount))
	}
	if playReq.Ayah < 1 || playReq.Ayah > quran.AyahsIn(playReq.Surah) {
		return NewErrorResponse(fmt.Sprintf("ayah must be 1-%d for surah %d", quran.AyahsIn(playReq.Surah), playReq.Surah))
	}
	if playReq.Reciter == "" {
		playReq.Reciter = s.defaultReciter
	}

	s.session.PlayQuranAyah(playReq.Surah, playReq.Ayah, playReq.SurahName, playReq.Reciter)
	return s.handleStatus()
}

func (s *Server) handlePlaySurah(req *Request) *Response {
	var playReq PlaySurahRequest
	if err := json.Unmarshal(req.Data, &playReq); err != nil {
		return NewErrorResponse("invalid playSurah request")
	}
	if playReq.Surah < 1 || playReq.Surah > quran.SurahCount {
		return NewErrorResponse(fmt.Sprintf("surah must be 1-%d", quran.SurahCount))
	}
	if playReq.Reciter == "" {
		playReq.Reciter = s.defaultReciter
	}

	s.session.PlayQuranSurah(playReq.Surah, playReq.SurahName, playReq.Reciter)
	return s.handleStatus()
}

func (s *Server) handlePlayRadio(req *Request) *Response {
	var playReq PlayRadioRequest
	if err := json.Unmarshal(req.Data, &playReq); err != nil {
		return NewErrorResponse("invalid playRadio request")
	}

	station, ok := radio.ByID(playReq.StationID)
	if !ok {
		return NewErrorResponse(fmt.Sprintf("unknown station: %s", playReq.StationID))
	}

	s.session.PlayRadio(station)
	return s.handleStatus()
}

func (s *Server) handlePauseForOther(req *Request) *Response {
	var pauseReq PauseForOtherRequest
	if err := json.Unmarshal(req.Data, &pauseReq); err != nil {
		return NewErrorResponse("invalid pauseForOther request")
	}
	if pauseReq.Reason == "" {
		return NewErrorResponse("reason is required")
	}

	s.session.PauseForOther(pauseReq.Reason)
	return s.handleStatus()
}

func (s *Server) handleSeek(req *Request) *Response {
	var seekReq SeekRequest
	if err := json.Unmarshal(req.Data, &seekReq); err != nil {
		return NewErrorResponse("invalid seek request")
	}
	if seekReq.Position < 0 {
		return NewErrorResponse("position must not be negative")
	}

	s.session.Seek(seekReq.Position)
	return s.handleStatus()
}

func (s *Server) handleVolume(req *Request) *Response {
	var volReq VolumeRequest
	if err := json.Unmarshal(req.Data, &volReq); err != nil {
		return NewErrorResponse("invalid volume request")
	}

	s.session.SetVolume(volReq.Level)
	return s.handleStatus()
}

func (s *Server) handleStatus() *Response {
	resp, err := NewSuccessResponse(s.session.Status())
	if err != nil {
		return NewErrorResponse("internal error")
	}
	return resp
}

func (s *Server) handleStations() *Response {
	resp, err := NewSuccessResponse(radio.All())
	if err != nil {
		return NewErrorResponse("internal error")
	}
	return resp
}

func (s *Server) handleReciters() *Response {
	resp, err := NewSuccessResponse(quran.Reciters)
	if err != nil {
		return NewErrorResponse("internal error")
	}
	return resp
}

func (s *Server) handlePoolStats() *Response {
	stats := s.pool.Stats()
	resp, err := NewSuccessResponse(PoolStatsResponse{
		Total:    stats.Total,
		Active:   stats.Active,
		Inactive: stats.Inactive,
	})
	if err != nil {
		return NewErrorResponse("internal error")
	}
	return resp
}
