package plugins

// AlbumInfo is the canonical album record handed back to the tagger host.
// Identifiers carry the originating source's prefix so the host's
// multi-source router can dispatch follow-up lookups.
type AlbumInfo struct {
	Title      string       `json:"title"`
	AlbumID    string       `json:"album_id"`
	Artist     string       `json:"artist"`
	ArtistID   string       `json:"artist_id"`
	Tracks     []*TrackInfo `json:"tracks"`
	AlbumType  string       `json:"album_type"`
	VA         bool         `json:"va"`
	Year       int          `json:"year"`
	Month      int          `json:"month"`
	Day        int          `json:"day"`
	Label      string       `json:"label"`
	Mediums    int          `json:"mediums"`
	Country    string       `json:"country"`
	DataSource string       `json:"data_source"`
	DataURL    string       `json:"data_url"`
}

// TrackInfo is the canonical track record. Tracks are owned by their parent
// AlbumInfo and are never shared between albums.
type TrackInfo struct {
	Title       string `json:"title"`
	TrackID     string `json:"track_id"`
	Artist      string `json:"artist"`
	ArtistID    string `json:"artist_id"`
	Length      int    `json:"length"` // seconds
	Index       int    `json:"index"`  // overall position on the release
	Medium      int    `json:"medium"`
	MediumIndex int    `json:"medium_index"`
}

// Item is a track in the host's library, as handed to import stages.
type Item struct {
	ID      uint64 `json:"id"`
	Path    string `json:"path"`
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	Album   string `json:"album"`
	Year    int    `json:"year"`
	Index   int    `json:"index"` // track position within the album, 1-based
	AlbumID string `json:"album_id"`
	TrackID string `json:"track_id"`
	Lyrics  string `json:"lyrics"`
}

// ImportTask is the batch handed to an import stage after the host finishes
// an import. Store is the host's storage callback; it is nil when the stage
// runs out of process, in which case the host applies the mutated items
// itself (see RPCClient.OnImportCompleted).
type ImportTask struct {
	WriteOnImport bool      `json:"write_on_import"`
	Items         []*Item   `json:"items"`
	Store         ItemStore `json:"-"`
}

// PluginContext carries host-provided settings into Initialize.
type PluginContext struct {
	PluginID    string            `json:"plugin_id"`
	DatabaseURL string            `json:"database_url"`
	BasePath    string            `json:"base_path"`
	LogLevel    string            `json:"log_level"`
	Config      map[string]string `json:"config"`
}

type PluginInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Version     string `json:"version"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Author      string `json:"author"`
}

// Plugin type constants.
const (
	PluginTypeMetadataSource = "metadata_source"
	PluginTypeImportStage    = "import_stage"
	PluginTypeGeneric        = "generic"
)
