package main

import (
	"context"
	"errors"
	"strconv"

	"github.com/lcharlick/beets-metalarchives/metalarchives"
	"github.com/lcharlick/beets-metalarchives/pkg/plugins"
)

// Candidates returns album records for a Metal Archives search matching an
// album and artist (if not various). Network failures degrade to an empty
// result so the host can fall back to other sources.
func (p *MetalArchivesPlugin) Candidates(ctx context.Context, artist, album string, vaLikely bool) ([]*plugins.AlbumInfo, error) {
	if vaLikely {
		// The archive has no various-artists releases worth matching.
		artist = ""
	}

	results, err := p.client.SearchAlbums(ctx, album, artist, metalarchives.SearchOptions{})
	if err != nil {
		if errors.Is(err, metalarchives.ErrNoResults) {
			return nil, nil
		}
		p.logger.Warn("album search failed", "artist", artist, "album", album, "error", err)
		return nil, nil
	}

	albums := make([]*plugins.AlbumInfo, 0, len(results))
	for _, result := range results {
		full, err := p.client.Album(ctx, strconv.FormatInt(result.AlbumID, 10))
		if err != nil {
			// A single unresolvable result must not sink the batch.
			p.logger.Warn("failed to resolve search result",
				"album_id", result.AlbumID, "title", result.Title, "error", err)
			continue
		}
		albums = append(albums, p.mapper.AlbumInfo(full))
	}
	return albums, nil
}

// AlbumForID fetches an album by its prefixed identifier. Identifiers
// belonging to other sources return (nil, nil) without any network call.
func (p *MetalArchivesPlugin) AlbumForID(ctx context.Context, albumID string) (*plugins.AlbumInfo, error) {
	externalID, ok := metalarchives.StripIDPrefix(albumID)
	if !ok {
		return nil, nil
	}

	album, err := p.client.Album(ctx, externalID)
	if err != nil {
		if errors.Is(err, metalarchives.ErrNotFound) {
			return nil, nil
		}
		p.logger.Warn("album lookup failed", "album_id", albumID, "error", err)
		return nil, nil
	}
	return p.mapper.AlbumInfo(album), nil
}

// AlbumDistance contributes the configured source weight for candidates
// that originated here. Per-field scoring is the host's job.
func (p *MetalArchivesPlugin) AlbumDistance(candidate *plugins.AlbumInfo) float64 {
	if candidate == nil || candidate.DataSource != metalarchives.DataSource {
		return 0
	}
	return p.config.SourceWeight
}
