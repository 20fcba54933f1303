package metalarchives

import (
	"strings"

	"github.com/pariz/gountries"

	"github.com/lcharlick/beets-metalarchives/pkg/plugins"
)

// Mapper converts archive responses into the host's canonical records.
// Keeping the conversion here isolates the rest of the plugin from the
// gateway's wire shapes.
type Mapper struct {
	countries *gountries.Query
	baseURL   string
}

// NewMapper creates a mapper. baseURL is used to build canonical data URLs.
func NewMapper(baseURL string) *Mapper {
	return &Mapper{
		countries: gountries.New(),
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// AlbumInfo maps a resolved release to the host's album record.
func (m *Mapper) AlbumInfo(album *Album) *plugins.AlbumInfo {
	var band Band
	if len(album.Bands) > 0 {
		band = album.Bands[0]
	}

	tracks := make([]*plugins.TrackInfo, 0, len(album.Tracks))
	for _, t := range album.Tracks {
		tracks = append(tracks, m.trackInfo(t))
	}

	year, month, day := album.ReleaseYMD()

	return &plugins.AlbumInfo{
		Title:      album.Title,
		AlbumID:    AddIDPrefix(album.ID),
		Artist:     album.BandNames(),
		ArtistID:   AddIDPrefix(band.ID),
		Tracks:     tracks,
		AlbumType:  album.Type,
		VA:         false,
		Year:       year,
		Month:      month,
		Day:        day,
		Label:      album.Label,
		Mediums:    album.DiscCount,
		Country:    m.CountryCode(band.Country),
		DataSource: DataSource,
		DataURL:    m.baseURL + "/" + strings.TrimLeft(album.URL, "/"),
	}
}

func (m *Mapper) trackInfo(t Track) *plugins.TrackInfo {
	return &plugins.TrackInfo{
		Title:       t.Title,
		TrackID:     AddIDPrefix(t.ID),
		Artist:      t.BandName,
		ArtistID:    AddIDPrefix(t.BandID),
		Length:      t.DurationSec,
		Index:       t.OverallNumber,
		Medium:      t.DiscNumber,
		MediumIndex: t.Number,
	}
}

// CountryCode resolves the archive's full country name to its two-letter
// code. Unresolvable names map to the empty string.
func (m *Mapper) CountryCode(name string) string {
	if name == "" {
		return ""
	}
	country, err := m.countries.FindCountryByName(name)
	if err != nil {
		return ""
	}
	return country.Alpha2
}
