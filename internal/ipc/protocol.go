// Package ipc handles inter-process communication between the daemon and
// clients over a unix socket carrying newline-delimited JSON.
package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents the type of command
type CommandType string

const (
	CmdPlayAyah        CommandType = "playAyah"
	CmdPlaySurah       CommandType = "playSurah"
	CmdPlayRadio       CommandType = "playRadio"
	CmdToggle          CommandType = "toggle"
	CmdStop            CommandType = "stop"
	CmdPauseForOther   CommandType = "pauseForOther"
	CmdResumeFromOther CommandType = "resumeFromOther"
	CmdSeek            CommandType = "seek"
	CmdVolume          CommandType = "volume"
	CmdStatus          CommandType = "status"
	CmdStations        CommandType = "stations"
	CmdReciters        CommandType = "reciters"
	CmdPoolStats       CommandType = "poolStats"
)

// Request represents a client request
type Request struct {
	Cmd  CommandType     `json:"cmd"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Response represents a server response
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// PlayAyahRequest is the data for a playAyah command
type PlayAyahRequest struct {
	Surah     int    `json:"surah"`
	Ayah      int    `json:"ayah"`
	SurahName string `json:"surahName,omitempty"`
	Reciter   string `json:"reciter,omitempty"`
}

// PlaySurahRequest is the data for a playSurah command
type PlaySurahRequest struct {
	Surah     int    `json:"surah"`
	SurahName string `json:"surahName,omitempty"`
	Reciter   string `json:"reciter,omitempty"`
}

// PlayRadioRequest is the data for a playRadio command
type PlayRadioRequest struct {
	StationID string `json:"stationId"`
}

// PauseForOtherRequest is the data for a pauseForOther command
type PauseForOtherRequest struct {
	Reason string `json:"reason"`
}

// SeekRequest is the data for a seek command
type SeekRequest struct {
	Position float64 `json:"position"` // seconds
}

// VolumeRequest is the data for a volume command
type VolumeRequest struct {
	Level float64 `json:"level"` // 0.0 - 1.0
}

// PoolStatsResponse is the response to a poolStats command
type PoolStatsResponse struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

// EncodeRequest encodes a request to JSON
func EncodeRequest(req *Request) ([]byte, error) {
	return json.Marshal(req)
}

// DecodeRequest decodes a request from JSON
func DecodeRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to decode request: %w", err)
	}
	return &req, nil
}

// EncodeResponse encodes a response to JSON
func EncodeResponse(resp *Response) ([]byte, error) {
	return json.Marshal(resp)
}

// DecodeResponse decodes a response from JSON
func DecodeResponse(data []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &resp, nil
}

// NewSuccessResponse creates a successful response
func NewSuccessResponse(data interface{}) (*Response, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, err
		}
	}
	return &Response{
		Success: true,
		Data:    rawData,
	}, nil
}

// NewErrorResponse creates an error response
func NewErrorResponse(err string) *Response {
	return &Response{
		Success: false,
		Error:   err,
	}
}
