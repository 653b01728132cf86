// Package radio holds the static registry of Quran radio stations.
package radio

import (
	"github.com/samber/lo"
)

// Format is the container format of a station stream.
type Format string

const (
	FormatMP3 Format = "mp3"
	FormatAAC Format = "aac"
	FormatHLS Format = "hls"
)

// Station describes one live radio stream.
type Station struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Country     string   `json:"country"`
	CountryCode string   `json:"countryCode"`
	Description string   `json:"description,omitempty"`
	StreamURL   string   `json:"streamUrl"`
	Format      Format   `json:"format"`
	Bitrate     string   `json:"bitrate,omitempty"`
	Website     string   `json:"website,omitempty"`
	Logo        string   `json:"logo,omitempty"`
	IsPrimary   bool     `json:"isPrimary"`
	Language    []string `json:"language"`
}

// stations lists the four primary stations followed by the backups.
var stations = []Station{
	{
		ID:          "radio-saudi",
		Name:        "Radio Saudi Holy Quran",
		Country:     "Saudi Arabia",
		CountryCode: "SA",
		Description: "Official radio of the Kingdom of Saudi Arabia. Broadcast on 100.0 FM Riyadh with continuous Quran recitation around the clock.",
		StreamURL:   "https://stream.rcast.net/260397",
		Format:      FormatMP3,
		Website:     "https://quran.sr.sa/",
		IsPrimary:   true,
		Language:    []string{"ar"},
	},
	{
		ID:          "alafasy-live",
		Name:        "Al-Afasy Live",
		Country:     "Kuwait",
		CountryCode: "KW",
		Description: "Continuous broadcast of recitations by Sheikh Mishary Rashid Alafasy. Dawah service based in Kuwait City.",
		StreamURL:   "https://stream.rcast.net/270276",
		Format:      FormatMP3,
		Website:     "https://liveonlineradio.net/alafasy-radio",
		IsPrimary:   true,
		Language:    []string{"ar", "en"},
	},
	{
		ID:          "radio-maroc",
		Name:        "Radio Maroc Quran",
		Country:     "Morocco",
		CountryCode: "MA",
		Description: "Official Moroccan Quran recitation station, live from Rabat. 24/7 broadcast in high audio quality.",
		StreamURL:   "https://stream.rcast.net/265132",
		Format:      FormatMP3,
		IsPrimary:   true,
		Language:    []string{"ar", "fr"},
	},
	{
		ID:          "radio-egypte",
		Name:        "Radio Egypt Quran",
		Country:     "Egypt",
		CountryCode: "EG",
		Description: "Official Egyptian Al-Quran Al-Kareem radio. FM 93.1 MHz in Cairo, part of ERTU (Egyptian Radio & TV Union).",
		StreamURL:   "https://stream.rcast.net/267531",
		Format:      FormatMP3,
		Website:     "https://www.maspero.eg/",
		IsPrimary:   true,
		Language:    []string{"ar", "en", "fr"},
	},
	{
		ID:          "telewebion-quran",
		Name:        "Quran TV - Telewebion",
		Country:     "Iran",
		CountryCode: "IR",
		Description: "Iranian Quran TV channel streaming continuous recitations 24/7 with different Qaris.",
		StreamURL:   "https://ncdn.telewebion.com/quran/live/playlist.m3u8",
		Format:      FormatHLS,
		IsPrimary:   false,
		Language:    []string{"fa", "ar", "en"},
	},
	{
		ID:          "alquran-alkareem",
		Name:        "AlQuran AlKareem International",
		Country:     "International",
		CountryCode: "INT",
		Description: "International channel of continuous Quran recitation with worldwide broadcast.",
		StreamURL:   "http://cnlive.org/channel/1e75531f/index.m3u8",
		Format:      FormatHLS,
		IsPrimary:   false,
		Language:    []string{"ar", "en", "fr", "id", "ur"},
	},
	{
		ID:          "quran-cairo",
		Name:        "Holy Quran Radio - Cairo",
		Country:     "Egypt",
		CountryCode: "EG",
		Description: "Egyptian radio from Cairo - FM 93.1 MHz. Daily 24/7 broadcast.",
		StreamURL:   "https://surahquran.com/Radio-Quran-Cairo.html",
		Format:      FormatMP3,
		IsPrimary:   false,
		Language:    []string{"ar", "en"},
	},
	{
		ID:          "quran-verse24",
		Name:        "Verse 24/7 Holy Quran",
		Country:     "Saudi Arabia",
		CountryCode: "SA",
		Description: "Continuous Quran recitations from Abha, Saudi Arabia.",
		StreamURL:   "https://stream.radiojar.com/8s5u5tpdtwzuv",
		Format:      FormatMP3,
		IsPrimary:   false,
		Language:    []string{"ar", "en"},
	},
}

// All returns every registered station, primaries first.
func All() []Station {
	out := make([]Station, len(stations))
	copy(out, stations)
	return out
}

// Primary returns the main stations.
func Primary() []Station {
	return lo.Filter(stations, func(s Station, _ int) bool { return s.IsPrimary })
}

// Backup returns the fallback stations.
func Backup() []Station {
	return lo.Filter(stations, func(s Station, _ int) bool { return !s.IsPrimary })
}

// ByID looks up a station by id.
func ByID(id string) (Station, bool) {
	return lo.Find(stations, func(s Station) bool { return s.ID == id })
}
