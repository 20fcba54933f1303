// Package plugins provides interfaces and types for developing metadata
// plugins for the tagger host. This package is designed to be imported by
// external plugins without creating dependencies on the host application.
package plugins

import "context"

// Implementation is the interface every plugin binary must implement.
type Implementation interface {
	// Core plugin methods
	Initialize(ctx *PluginContext) error
	Start() error
	Stop() error
	Info() (*PluginInfo, error)
	Health() error

	// Optional service implementations (return nil if not supported)
	MetadataSourceService() MetadataSourceService
	ImportStageService() ImportStageService
	DatabaseService() DatabaseService
}

// MetadataSourceService is implemented by plugins that contribute album
// candidates to the host's autotagger.
type MetadataSourceService interface {
	// Candidates returns album records matching a free-text artist and album
	// query. A transient backend failure yields an empty slice, not an error.
	Candidates(ctx context.Context, artist, album string, vaLikely bool) ([]*AlbumInfo, error)

	// AlbumForID resolves a host-supplied identifier. Identifiers that do
	// not belong to this source return (nil, nil) without any backend call.
	AlbumForID(ctx context.Context, albumID string) (*AlbumInfo, error)

	// AlbumDistance returns this source's contribution to the host's
	// overall distance score for a candidate album.
	AlbumDistance(candidate *AlbumInfo) float64
}

// ImportStageService is invoked once per completed import batch.
type ImportStageService interface {
	OnImportCompleted(ctx context.Context, task *ImportTask) error
}

// DatabaseService manages plugin-owned tables in the plugin's database.
type DatabaseService interface {
	GetModels() []string
	Migrate(connectionString string) error
	Rollback(connectionString string) error
}

// ItemStore is the host's storage surface for library items.
type ItemStore interface {
	// Store persists the item's fields to the host library database.
	Store(item *Item) error
	// Write writes the item's tags back to the underlying media file.
	Write(item *Item) error
}

// Logger is the minimal logging interface plugins log through.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}
