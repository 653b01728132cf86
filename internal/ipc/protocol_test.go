package ipc

import (
	"encoding/json"
	"testing"
)

func TestEncodeRequest(t *testing.T) {
	req := &Request{
		Cmd: CmdToggle,
	}

	data, err := EncodeRequest(req)
	if err != nil {
		t.Fatalf("EncodeRequest failed: %v", err)
	}

	// Verify it's valid JSON
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Result is not valid JSON: %v", err)
	}

	if decoded["cmd"] != "toggle" {
		t.Errorf("Expected cmd 'toggle', got '%v'", decoded["cmd"])
	}
}

func TestDecodeRequestWithData(t *testing.T) {
	data := []byte(`{"cmd":"playAyah","data":{"surah":2,"ayah":255,"surahName":"Al-Baqarah"}}`)

	req, err := DecodeRequest(data)
	if err != nil {
		t.Fatalf("DecodeRequest failed: %v", err)
	}

	if req.Cmd != CmdPlayAyah {
		t.Errorf("Expected cmd 'playAyah', got '%s'", req.Cmd)
	}

	var playReq PlayAyahRequest
	if err := json.Unmarshal(req.Data, &playReq); err != nil {
		t.Fatalf("Failed to unmarshal data: %v", err)
	}

	if playReq.Surah != 2 || playReq.Ayah != 255 {
		t.Errorf("Expected 2:255, got %d:%d", playReq.Surah, playReq.Ayah)
	}
	if playReq.SurahName != "Al-Baqarah" {
		t.Errorf("Expected surah name 'Al-Baqarah', got '%s'", playReq.SurahName)
	}
}

func TestDecodeRequestInvalid(t *testing.T) {
	data := []byte(`not valid json`)

	_, err := DecodeRequest(data)
	if err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestDecodeResponse(t *testing.T) {
	data := []byte(`{"success":false,"error":"unknown station: xyz"}`)

	resp, err := DecodeResponse(data)
	if err != nil {
		t.Fatalf("DecodeResponse failed: %v", err)
	}

	if resp.Success {
		t.Error("Expected success=false")
	}
	if resp.Error != "unknown station: xyz" {
		t.Errorf("Unexpected error string: %s", resp.Error)
	}
}

func TestNewSuccessResponse(t *testing.T) {
	resp, err := NewSuccessResponse(PoolStatsResponse{Total: 3, Active: 1, Inactive: 2})
	if err != nil {
		t.Fatalf("NewSuccessResponse failed: %v", err)
	}

	if !resp.Success {
		t.Error("Expected success=true")
	}

	var stats PoolStatsResponse
	if err := json.Unmarshal(resp.Data, &stats); err != nil {
		t.Fatalf("Failed to unmarshal data: %v", err)
	}
	if stats.Total != 3 || stats.Active != 1 || stats.Inactive != 2 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}
