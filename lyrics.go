package main

import (
	"context"
	"errors"
	"strconv"

	"github.com/lcharlick/beets-metalarchives/internal"
	"github.com/lcharlick/beets-metalarchives/metalarchives"
	"github.com/lcharlick/beets-metalarchives/pkg/plugins"
)

// lyricsDistanceThreshold is the maximum normalized title distance accepted
// when matching a track through the fallback search.
const lyricsDistanceThreshold = 0.1

// lyricsOutcome is the terminal state of a per-item lyrics fetch.
type lyricsOutcome int

const (
	lyricsFound lyricsOutcome = iota
	lyricsNotFound
	lyricsSkipped
	lyricsNetworkError
)

func (o lyricsOutcome) String() string {
	switch o {
	case lyricsFound:
		return "found"
	case lyricsNotFound:
		return "not-found"
	case lyricsSkipped:
		return "skipped"
	case lyricsNetworkError:
		return "network-error"
	}
	return "unknown"
}

// OnImportCompleted fetches lyrics for every imported item. The per-item
// outcome is logged; nothing is returned to the caller, and one item's
// failure never stops its siblings.
func (p *MetalArchivesPlugin) OnImportCompleted(ctx context.Context, task *plugins.ImportTask) error {
	for _, item := range task.Items {
		outcome := p.fetchItemLyrics(ctx, task, item)
		switch outcome {
		case lyricsFound:
			p.logger.Info("fetched lyrics", "path", item.Path, "title", item.Title)
		case lyricsSkipped:
			p.logger.Debug("lyrics already present", "path", item.Path, "title", item.Title)
		default:
			p.logger.Info("lyrics not found", "path", item.Path, "title", item.Title,
				"outcome", outcome.String())
		}
	}
	return nil
}

func (p *MetalArchivesPlugin) fetchItemLyrics(ctx context.Context, task *plugins.ImportTask, item *plugins.Item) lyricsOutcome {
	if item.Lyrics != "" {
		return lyricsSkipped
	}

	var lyrics string
	switch {
	case metalarchives.HasIDPrefix(item.AlbumID):
		trackID, ok := metalarchives.StripIDPrefix(item.TrackID)
		if !ok {
			return lyricsNotFound
		}
		text, err := p.client.Lyrics(ctx, trackID)
		if err != nil {
			if errors.Is(err, metalarchives.ErrNotFound) {
				return lyricsNotFound
			}
			p.logger.Warn("lyrics fetch failed", "track_id", item.TrackID, "error", err)
			return lyricsNetworkError
		}
		lyrics = text

	case p.config.LyricsSearch:
		text, outcome := p.searchItemLyrics(ctx, item)
		if outcome != lyricsFound {
			return outcome
		}
		lyrics = text

	default:
		return lyricsNotFound
	}

	if lyrics == metalarchives.InstrumentalMarker {
		lyrics = p.config.Instrumental
	}
	if lyrics == "" {
		return lyricsNotFound
	}

	item.Lyrics = lyrics
	if task.Store != nil {
		if task.WriteOnImport {
			if err := task.Store.Write(item); err != nil {
				p.logger.Warn("failed to write tags", "path", item.Path, "error", err)
			}
		}
		if err := task.Store.Store(item); err != nil {
			p.logger.Warn("failed to store item", "path", item.Path, "error", err)
		}
	}
	return lyricsFound
}

// searchItemLyrics matches a non-source item against the archive by album
// search. The first candidate whose track title at the item's position is
// within the distance threshold wins; later, possibly closer candidates are
// not considered.
func (p *MetalArchivesPlugin) searchItemLyrics(ctx context.Context, item *plugins.Item) (string, lyricsOutcome) {
	results, err := p.client.SearchAlbums(ctx, item.Album, item.Artist,
		metalarchives.SearchOptions{Year: item.Year})
	if err != nil {
		if errors.Is(err, metalarchives.ErrNoResults) {
			return "", lyricsNotFound
		}
		p.logger.Warn("lyrics search failed", "artist", item.Artist, "album", item.Album, "error", err)
		return "", lyricsNetworkError
	}

	for _, result := range results {
		album, err := p.client.Album(ctx, strconv.FormatInt(result.AlbumID, 10))
		if err != nil {
			p.logger.Warn("failed to resolve lyrics candidate",
				"album_id", result.AlbumID, "error", err)
			continue
		}
		if item.Index < 1 || item.Index > len(album.Tracks) {
			continue
		}
		candidate := album.Tracks[item.Index-1]
		if internal.TitleDistance(item.Title, candidate.Title) > lyricsDistanceThreshold {
			continue
		}

		text, err := p.client.Lyrics(ctx, strconv.FormatInt(candidate.ID, 10))
		if err != nil {
			if errors.Is(err, metalarchives.ErrNotFound) {
				return "", lyricsNotFound
			}
			// A network fault on the accepted candidate ends the whole
			// operation for this item, not just this candidate.
			p.logger.Warn("lyrics fetch failed", "track_id", candidate.ID, "error", err)
			return "", lyricsNetworkError
		}
		return text, lyricsFound
	}
	return "", lyricsNotFound
}
