package quran

import (
	"testing"
)

func TestAyahCountTotal(t *testing.T) {
	total := 0
	for s := 1; s <= SurahCount; s++ {
		total += AyahsIn(s)
	}
	if total != TotalAyahs {
		t.Errorf("Expected %d total ayahs, got %d", TotalAyahs, total)
	}
}

func TestGlobalAyahNumber(t *testing.T) {
	tests := []struct {
		name     string
		surah    int
		ayah     int
		expected int
	}{
		{"first ayah of the Quran", 1, 1, 1},
		{"last ayah of Al-Fatiha", 1, 7, 7},
		{"first ayah of Al-Baqarah", 2, 1, 8},
		{"Ayat al-Kursi", 2, 255, 262},
		{"last ayah of the Quran", 114, 6, TotalAyahs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GlobalAyahNumber(tt.surah, tt.ayah)
			if got != tt.expected {
				t.Errorf("GlobalAyahNumber(%d, %d) = %d, expected %d", tt.surah, tt.ayah, got, tt.expected)
			}
		})
	}
}

func TestGlobalAyahNumberMonotonic(t *testing.T) {
	// Strictly increasing in ayah for a fixed surah, and each surah starts
	// right after the previous one ends.
	prev := 0
	for s := 1; s <= SurahCount; s++ {
		for a := 1; a <= AyahsIn(s); a++ {
			n := GlobalAyahNumber(s, a)
			if n != prev+1 {
				t.Fatalf("GlobalAyahNumber(%d, %d) = %d, expected %d", s, a, n, prev+1)
			}
			prev = n
		}
	}
}

func TestResolveReciter(t *testing.T) {
	r := ResolveReciter("")
	if r.ID != DefaultReciterID || r.Name != DefaultReciterName {
		t.Errorf("Expected default reciter for empty id, got %+v", r)
	}

	r = ResolveReciter("ar.husary")
	if r.Name != "Mahmoud Khalil Al-Husary" {
		t.Errorf("Expected Husary, got %+v", r)
	}

	r = ResolveReciter("ar.unknown")
	if r.ID != "ar.unknown" {
		t.Errorf("Unknown id should be kept, got %q", r.ID)
	}
	if r.Name != DefaultReciterName {
		t.Errorf("Unknown id should fall back to default name, got %q", r.Name)
	}
}

func TestURLs(t *testing.T) {
	url := AyahURL("ar.alafasy", 2, 255)
	expected := "https://cdn.islamic.network/quran/audio/64/ar.alafasy/262.mp3"
	if url != expected {
		t.Errorf("AyahURL: expected %q, got %q", expected, url)
	}

	url = SurahURL("ar.alafasy", 36)
	expected = "https://cdn.islamic.network/quran/audio-surah/64/ar.alafasy/36.mp3"
	if url != expected {
		t.Errorf("SurahURL: expected %q, got %q", expected, url)
	}
}

func TestSurahName(t *testing.T) {
	cases := []struct {
		surah int
		name  string
	}{
		{1, "Al-Fatiha"},
		{2, "Al-Baqarah"},
		{36, "Ya-Sin"},
		{55, "Ar-Rahman"},
		{114, "An-Nas"},
		{0, ""},
		{115, ""},
	}
	for _, tc := range cases {
		if got := SurahName(tc.surah); got != tc.name {
			t.Errorf("SurahName(%d): expected %q, got %q", tc.surah, tc.name, got)
		}
	}
}
