package radio

import (
	"testing"
)

func TestRegistry(t *testing.T) {
	all := All()
	if len(all) != 8 {
		t.Errorf("Expected 8 stations, got %d", len(all))
	}

	primary := Primary()
	if len(primary) != 4 {
		t.Errorf("Expected 4 primary stations, got %d", len(primary))
	}
	for _, s := range primary {
		if !s.IsPrimary {
			t.Errorf("Primary() returned non-primary station %q", s.ID)
		}
	}

	backup := Backup()
	if len(backup)+len(primary) != len(all) {
		t.Errorf("Primary + backup should cover all stations: %d + %d != %d",
			len(primary), len(backup), len(all))
	}
}

func TestByID(t *testing.T) {
	s, ok := ByID("alafasy-live")
	if !ok {
		t.Fatal("Expected to find alafasy-live")
	}
	if s.CountryCode != "KW" {
		t.Errorf("Expected country code KW, got %s", s.CountryCode)
	}
	if s.StreamURL == "" {
		t.Error("Expected non-empty stream URL")
	}

	if _, ok := ByID("nope"); ok {
		t.Error("Expected lookup miss for unknown id")
	}
}

func TestStreamFields(t *testing.T) {
	for _, s := range All() {
		if s.ID == "" || s.Name == "" || s.StreamURL == "" {
			t.Errorf("Station %+v missing required fields", s)
		}
		switch s.Format {
		case FormatMP3, FormatAAC, FormatHLS:
		default:
			t.Errorf("Station %q has unknown format %q", s.ID, s.Format)
		}
		if len(s.Language) == 0 {
			t.Errorf("Station %q has no languages", s.ID)
		}
	}
}
