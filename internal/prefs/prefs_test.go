package prefs

import (
	"os"
	"testing"
)

func TestVolumeDefault(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "prefs_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	s, err := NewStore(tmpDir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if vol := s.Volume(); vol != DefaultVolume {
		t.Errorf("Expected default volume %v, got %v", DefaultVolume, vol)
	}
}

func TestVolumeRoundtrip(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "prefs_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	s, err := NewStore(tmpDir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if err := s.SetVolume(0.35); err != nil {
		t.Fatalf("SetVolume failed: %v", err)
	}

	// The stored representation is a numeric string.
	if raw := s.Get(KeyVolume); raw != "0.35" {
		t.Errorf("Expected stored value \"0.35\", got %q", raw)
	}

	// A fresh store reads the persisted value back.
	s2, err := NewStore(tmpDir)
	if err != nil {
		t.Fatalf("NewStore (reload) failed: %v", err)
	}
	if vol := s2.Volume(); vol != 0.35 {
		t.Errorf("Expected restored volume 0.35, got %v", vol)
	}
}

func TestVolumeGarbageValue(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "prefs_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	s, err := NewStore(tmpDir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if err := s.Set(KeyVolume, "not-a-number"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if vol := s.Volume(); vol != DefaultVolume {
		t.Errorf("Expected default volume for garbage value, got %v", vol)
	}
}
