package metalarchives

import (
	"strconv"
	"strings"
)

// InstrumentalMarker is the literal text the archive serves for tracks that
// have no lyrics because they are instrumental.
const InstrumentalMarker = "(Instrumental)"

// SearchResponse is the wire shape of an album search.
type SearchResponse struct {
	TotalRecords int            `json:"total_records"`
	Results      []SearchResult `json:"results"`
}

// SearchResult is a lightweight handle returned by album searches. It must
// be resolved through Client.Album to obtain the full record.
type SearchResult struct {
	AlbumID  int64  `json:"album_id"`
	Title    string `json:"title"`
	BandID   int64  `json:"band_id"`
	BandName string `json:"band_name"`
	Type     string `json:"type"`
	Date     string `json:"date"`
}

// Album is a fully resolved release.
type Album struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Type        string  `json:"type"`
	URL         string  `json:"url"`
	Label       string  `json:"label"`
	ReleaseDate string  `json:"release_date"` // YYYY, YYYY-MM or YYYY-MM-DD
	DiscCount   int     `json:"disc_count"`
	Bands       []Band  `json:"bands"`
	Tracks      []Track `json:"tracks"`
}

// Band is an artist credited on a release.
type Band struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"` // full country name as the archive lists it
}

// Track is a single track on a release.
type Track struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	BandID        int64  `json:"band_id"`
	BandName      string `json:"band_name"`
	DurationSec   int    `json:"duration_sec"`
	OverallNumber int    `json:"overall_number"`
	DiscNumber    int    `json:"disc_number"`
	Number        int    `json:"number"`
}

// LyricsResponse is the wire shape of a lyrics lookup.
type LyricsResponse struct {
	TrackID int64  `json:"track_id"`
	Lyrics  string `json:"lyrics"`
}

// BandNames joins all credited bands the way the archive displays splits.
func (a *Album) BandNames() string {
	names := make([]string, 0, len(a.Bands))
	for _, b := range a.Bands {
		names = append(names, b.Name)
	}
	return strings.Join(names, " / ")
}

// ReleaseYMD splits the release date into its parts. Missing components
// are zero.
func (a *Album) ReleaseYMD() (year, month, day int) {
	parts := strings.SplitN(a.ReleaseDate, "-", 3)
	if len(parts) > 0 {
		year, _ = strconv.Atoi(parts[0])
	}
	if len(parts) > 1 {
		month, _ = strconv.Atoi(parts[1])
	}
	if len(parts) > 2 {
		day, _ = strconv.Atoi(parts[2])
	}
	return year, month, day
}
