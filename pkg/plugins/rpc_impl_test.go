package plugins

import (
	"context"
	"net"
	"net/rpc"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeImpl is a minimal plugin implementation for exercising the RPC glue.
type fakeImpl struct {
	initialized *PluginContext
	started     bool
	stopped     bool
}

func (f *fakeImpl) Initialize(ctx *PluginContext) error { f.initialized = ctx; return nil }
func (f *fakeImpl) Start() error                        { f.started = true; return nil }
func (f *fakeImpl) Stop() error                         { f.stopped = true; return nil }
func (f *fakeImpl) Health() error                       { return nil }

func (f *fakeImpl) Info() (*PluginInfo, error) {
	return &PluginInfo{ID: "fake", Name: "Fake Source", Version: "0.1.0"}, nil
}

func (f *fakeImpl) MetadataSourceService() MetadataSourceService { return f }
func (f *fakeImpl) ImportStageService() ImportStageService       { return f }
func (f *fakeImpl) DatabaseService() DatabaseService             { return nil }

func (f *fakeImpl) Candidates(ctx context.Context, artist, album string, vaLikely bool) ([]*AlbumInfo, error) {
	return []*AlbumInfo{{Title: album, Artist: artist, AlbumID: "fake-1", DataSource: "Fake"}}, nil
}

func (f *fakeImpl) AlbumForID(ctx context.Context, albumID string) (*AlbumInfo, error) {
	if albumID != "fake-1" {
		return nil, nil
	}
	return &AlbumInfo{Title: "Known", AlbumID: albumID, DataSource: "Fake"}, nil
}

func (f *fakeImpl) AlbumDistance(candidate *AlbumInfo) float64 {
	if candidate != nil && candidate.DataSource == "Fake" {
		return 0.25
	}
	return 0
}

func (f *fakeImpl) OnImportCompleted(ctx context.Context, task *ImportTask) error {
	for _, item := range task.Items {
		if item.Lyrics == "" {
			item.Lyrics = "lyrics for " + item.Title
		}
	}
	return nil
}

type recordingStore struct {
	stored  []string
	written []string
}

func (s *recordingStore) Store(item *Item) error {
	s.stored = append(s.stored, item.Title)
	return nil
}

func (s *recordingStore) Write(item *Item) error {
	s.written = append(s.written, item.Title)
	return nil
}

func newRPCPair(t *testing.T, impl Implementation) *RPCClient {
	server := rpc.NewServer()
	require.NoError(t, server.RegisterName("Plugin", &RPCServer{Impl: impl}))

	clientConn, serverConn := net.Pipe()
	go server.ServeConn(serverConn)
	t.Cleanup(func() { clientConn.Close() })

	return &RPCClient{client: rpc.NewClient(clientConn)}
}

func TestRPC_Lifecycle(t *testing.T) {
	impl := &fakeImpl{}
	client := newRPCPair(t, impl)

	require.NoError(t, client.Initialize(&PluginContext{PluginID: "fake", LogLevel: "info"}))
	require.NotNil(t, impl.initialized)
	assert.Equal(t, "fake", impl.initialized.PluginID)

	require.NoError(t, client.Start())
	assert.True(t, impl.started)

	info, err := client.Info()
	require.NoError(t, err)
	assert.Equal(t, "Fake Source", info.Name)

	require.NoError(t, client.Health())
	require.NoError(t, client.Stop())
	assert.True(t, impl.stopped)
}

func TestRPC_MetadataSource(t *testing.T) {
	client := newRPCPair(t, &fakeImpl{})

	albums, err := client.Candidates(context.Background(), "Metallica", "Master of Puppets", false)
	require.NoError(t, err)
	require.Len(t, albums, 1)
	assert.Equal(t, "Master of Puppets", albums[0].Title)

	album, err := client.AlbumForID(context.Background(), "fake-1")
	require.NoError(t, err)
	require.NotNil(t, album)
	assert.Equal(t, "Known", album.Title)

	missing, err := client.AlbumForID(context.Background(), "other-9")
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.Equal(t, 0.25, client.AlbumDistance(&AlbumInfo{DataSource: "Fake"}))
}

func TestRPC_ImportStagePersistsThroughHostStore(t *testing.T) {
	client := newRPCPair(t, &fakeImpl{})
	store := &recordingStore{}

	items := []*Item{
		{Title: "Battery"},
		{Title: "Orion", Lyrics: "already here"},
	}
	task := &ImportTask{WriteOnImport: true, Items: items, Store: store}

	require.NoError(t, client.OnImportCompleted(context.Background(), task))

	// The plugin mutated the first item; the host store persisted it.
	assert.Equal(t, "lyrics for Battery", items[0].Lyrics)
	assert.Equal(t, []string{"Battery"}, store.stored)
	assert.Equal(t, []string{"Battery"}, store.written)
	// The untouched item is not re-stored.
	assert.Equal(t, "already here", items[1].Lyrics)
}
