package metalarchives

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchFixture = `{
	"total_records": 1,
	"results": [
		{
			"album_id": 825,
			"title": "Master of Puppets",
			"band_id": 125,
			"band_name": "Metallica",
			"type": "Full-length",
			"date": "1986-03-03"
		}
	]
}`

const albumFixture = `{
	"id": 825,
	"title": "Master of Puppets",
	"type": "Full-length",
	"url": "albums/Metallica/Master_of_Puppets/825",
	"label": "Elektra Records",
	"release_date": "1986-03-03",
	"disc_count": 1,
	"bands": [
		{"id": 125, "name": "Metallica", "country": "United States"}
	],
	"tracks": [
		{"id": 6461, "title": "Battery", "band_id": 125, "band_name": "Metallica",
		 "duration_sec": 312, "overall_number": 1, "disc_number": 1, "number": 1},
		{"id": 6462, "title": "Master of Puppets", "band_id": 125, "band_name": "Metallica",
		 "duration_sec": 515, "overall_number": 2, "disc_number": 1, "number": 2}
	]
}`

func newTestClient(t *testing.T, handler http.Handler, cache *Cache) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(hclog.NewNullLogger(), ClientOptions{
		BaseURL:   server.URL,
		UserAgent: "metalarchives-test/1.0",
		RateLimit: 100,
		Cache:     cache,
	})
	return client, server
}

func TestClient_SearchAlbums(t *testing.T) {
	var gotQuery map[string]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search/albums", r.URL.Path)
		gotQuery = map[string]string{
			"title":  r.URL.Query().Get("title"),
			"band":   r.URL.Query().Get("band"),
			"strict": r.URL.Query().Get("strict"),
			"year":   r.URL.Query().Get("year"),
		}
		w.Write([]byte(searchFixture))
	}), nil)

	results, err := client.SearchAlbums(context.Background(), "Master of Puppets", "Metallica",
		SearchOptions{Year: 1986})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, int64(825), results[0].AlbumID)
	assert.Equal(t, "Metallica", results[0].BandName)
	assert.Equal(t, map[string]string{
		"title":  "Master of Puppets",
		"band":   "Metallica",
		"strict": "0",
		"year":   "1986",
	}, gotQuery)
}

func TestClient_SearchAlbums_NoResults(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total_records": 0, "results": []}`))
	}), nil)

	_, err := client.SearchAlbums(context.Background(), "Nonexistent", "Nobody", SearchOptions{})
	assert.ErrorIs(t, err, ErrNoResults)
	assert.False(t, IsTransient(err))
}

func TestClient_SearchAlbums_ServerError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}), nil)

	_, err := client.SearchAlbums(context.Background(), "a", "b", SearchOptions{})
	require.Error(t, err)
	assert.True(t, IsTransient(err))

	var re *RequestError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusInternalServerError, re.StatusCode)
}

func TestClient_SearchAlbums_TransportFault(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	client := NewClient(hclog.NewNullLogger(), ClientOptions{BaseURL: server.URL, RateLimit: 100})
	server.Close()

	_, err := client.SearchAlbums(context.Background(), "a", "b", SearchOptions{})
	require.Error(t, err)
	assert.True(t, IsTransient(err))
}

func TestClient_Album(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/albums/825", r.URL.Path)
		w.Write([]byte(albumFixture))
	}), nil)

	album, err := client.Album(context.Background(), "825")
	require.NoError(t, err)

	assert.Equal(t, "Master of Puppets", album.Title)
	assert.Equal(t, "Elektra Records", album.Label)
	require.Len(t, album.Tracks, 2)
	assert.Equal(t, "Battery", album.Tracks[0].Title)
	assert.Equal(t, "United States", album.Bands[0].Country)

	year, month, day := album.ReleaseYMD()
	assert.Equal(t, 1986, year)
	assert.Equal(t, 3, month)
	assert.Equal(t, 3, day)
}

func TestClient_Album_NotFound(t *testing.T) {
	client, _ := newTestClient(t, http.NotFoundHandler(), nil)

	_, err := client.Album(context.Background(), "999999")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, IsTransient(err))
}

func TestClient_Lyrics(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tracks/6462/lyrics", r.URL.Path)
		w.Write([]byte(`{"track_id": 6462, "lyrics": "End of passion play\nCrumbling away"}`))
	}), nil)

	lyrics, err := client.Lyrics(context.Background(), "6462")
	require.NoError(t, err)
	assert.Equal(t, "End of passion play\nCrumbling away", lyrics)
}

func TestClient_Lyrics_NotAvailable(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"track_id": 1, "lyrics": "(lyrics not available)"}`))
	}), nil)

	_, err := client.Lyrics(context.Background(), "1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_Lyrics_InstrumentalPassesThrough(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"track_id": 2, "lyrics": "(Instrumental)"}`))
	}), nil)

	lyrics, err := client.Lyrics(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, InstrumentalMarker, lyrics)
}

func TestClient_CachesResponses(t *testing.T) {
	cache := newTestCache(t)
	hits := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(albumFixture))
	}), cache)

	for i := 0; i < 3; i++ {
		album, err := client.Album(context.Background(), "825")
		require.NoError(t, err)
		assert.Equal(t, "Master of Puppets", album.Title)
	}
	assert.Equal(t, 1, hits)
}

func TestRequestError_Unwrap(t *testing.T) {
	inner := errors.New("connection reset")
	err := &RequestError{URL: "http://example.test", Err: inner}
	assert.ErrorIs(t, err, inner)
}
