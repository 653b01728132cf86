// Package quran holds the static Quran audio metadata: the reciter registry,
// the per-surah ayah counts, and the CDN URL templates for recitation audio.
package quran

import (
	"fmt"

	"github.com/samber/lo"
)

// Reciter identifies one reciter available on the audio CDN.
type Reciter struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Reciters is the registry of supported reciters. The first entry is the
// default used when a caller passes an empty or unknown reciter id.
var Reciters = []Reciter{
	{ID: "ar.alafasy", Name: "Mishary Rashid Alafasy"},
	{ID: "ar.abdulbasitmurattal", Name: "Abdul Basit (Murattal)"},
	{ID: "ar.husary", Name: "Mahmoud Khalil Al-Husary"},
	{ID: "ar.minshawi", Name: "Mohamed Siddiq El-Minshawi"},
}

const (
	// DefaultReciterID is the fallback reciter.
	DefaultReciterID   = "ar.alafasy"
	DefaultReciterName = "Mishary Rashid Alafasy"

	// Bitrate is the fixed CDN bitrate in kbps (32, 40, 48, 64, 128 and 192
	// are available upstream).
	Bitrate = 64

	cdnBase = "https://cdn.islamic.network/quran"

	// SurahCount is the number of surahs in the Quran.
	SurahCount = 114

	// TotalAyahs is the number of ayahs across all surahs.
	TotalAyahs = 6236
)

// ayahCounts holds the number of ayahs in each surah, indexed by surah-1.
var ayahCounts = [SurahCount]int{
	7, 286, 200, 176, 120, 165, 206, 75, 129, 109, 123, 111, 43, 52, 99, 128, 111, 110, 98, 135,
	112, 78, 118, 64, 77, 227, 93, 88, 69, 60, 34, 30, 73, 54, 45, 83, 182, 88, 75, 85, 54, 53,
	89, 59, 37, 35, 38, 29, 18, 45, 60, 49, 62, 55, 78, 96, 29, 22, 24, 13, 14, 11, 11, 18, 12,
	12, 30, 52, 52, 44, 28, 28, 20, 56, 40, 31, 50, 40, 46, 42, 29, 19, 36, 25, 22, 17, 19, 26,
	30, 20, 15, 21, 11, 8, 8, 19, 5, 8, 8, 11, 11, 8, 3, 9, 5, 4, 7, 3, 6, 3, 5, 4, 5, 6,
}

// ResolveReciter maps a reciter id to its registry entry, falling back to the
// default reciter when the id is empty or unknown.
func ResolveReciter(id string) Reciter {
	if id == "" {
		return Reciter{ID: DefaultReciterID, Name: DefaultReciterName}
	}
	r, found := lo.Find(Reciters, func(r Reciter) bool { return r.ID == id })
	if !found {
		// Unknown ids keep their id for URL construction but display the
		// default name, matching the upstream behavior.
		return Reciter{ID: id, Name: DefaultReciterName}
	}
	return r
}

// AyahsIn returns the number of ayahs in the given surah (1-114).
// Out-of-range surahs are a caller precondition violation.
func AyahsIn(surah int) int {
	return ayahCounts[surah-1]
}

// GlobalAyahNumber computes the absolute 1..6236 ayah index the CDN keys
// individual-ayah audio by: the sum of ayah counts of all preceding surahs
// plus the 1-based ayah offset within the surah. Inputs are not validated;
// callers must pass surah in [1,114] and ayah in [1, AyahsIn(surah)].
func GlobalAyahNumber(surah, ayah int) int {
	n := 0
	for i := 0; i < surah-1; i++ {
		n += ayahCounts[i]
	}
	return n + ayah
}

// AyahURL returns the CDN URL for a single ayah recitation.
func AyahURL(reciterID string, surah, ayah int) string {
	return fmt.Sprintf("%s/audio/%d/%s/%d.mp3", cdnBase, Bitrate, reciterID, GlobalAyahNumber(surah, ayah))
}

// SurahURL returns the CDN URL for a whole-surah recitation.
func SurahURL(reciterID string, surah int) string {
	return fmt.Sprintf("%s/audio-surah/%d/%s/%d.mp3", cdnBase, Bitrate, reciterID, surah)
}
