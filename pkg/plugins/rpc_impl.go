package plugins

import (
	"context"
	"net/rpc"
)

// RPC request/response envelopes. Everything crossing the plugin boundary
// must be gob-encodable, which is why ImportTask.Store stays host-side and
// mutated items travel back in the response.

type InitializeRequest struct {
	Context *PluginContext
}

type CandidatesRequest struct {
	Artist   string
	Album    string
	VALikely bool
}

type CandidatesResponse struct {
	Albums []*AlbumInfo
}

type AlbumForIDRequest struct {
	AlbumID string
}

type AlbumForIDResponse struct {
	Album *AlbumInfo
}

type AlbumDistanceRequest struct {
	Candidate *AlbumInfo
}

type AlbumDistanceResponse struct {
	Distance float64
}

type ImportCompletedRequest struct {
	WriteOnImport bool
	Items         []*Item
}

type ImportCompletedResponse struct {
	Items []*Item
}

type MigrateRequest struct {
	ConnectionString string
}

type Empty struct{}

// RPCServer runs inside the plugin process and dispatches host calls to the
// plugin implementation.
type RPCServer struct {
	Impl Implementation
}

func (s *RPCServer) Initialize(req InitializeRequest, _ *Empty) error {
	return s.Impl.Initialize(req.Context)
}

func (s *RPCServer) Start(_ Empty, _ *Empty) error {
	return s.Impl.Start()
}

func (s *RPCServer) Stop(_ Empty, _ *Empty) error {
	return s.Impl.Stop()
}

func (s *RPCServer) Info(_ Empty, resp *PluginInfo) error {
	info, err := s.Impl.Info()
	if err != nil {
		return err
	}
	*resp = *info
	return nil
}

func (s *RPCServer) Health(_ Empty, _ *Empty) error {
	return s.Impl.Health()
}

func (s *RPCServer) Candidates(req CandidatesRequest, resp *CandidatesResponse) error {
	svc := s.Impl.MetadataSourceService()
	if svc == nil {
		return nil
	}
	albums, err := svc.Candidates(context.Background(), req.Artist, req.Album, req.VALikely)
	if err != nil {
		return err
	}
	resp.Albums = albums
	return nil
}

func (s *RPCServer) AlbumForID(req AlbumForIDRequest, resp *AlbumForIDResponse) error {
	svc := s.Impl.MetadataSourceService()
	if svc == nil {
		return nil
	}
	album, err := svc.AlbumForID(context.Background(), req.AlbumID)
	if err != nil {
		return err
	}
	resp.Album = album
	return nil
}

func (s *RPCServer) AlbumDistance(req AlbumDistanceRequest, resp *AlbumDistanceResponse) error {
	svc := s.Impl.MetadataSourceService()
	if svc == nil {
		return nil
	}
	resp.Distance = svc.AlbumDistance(req.Candidate)
	return nil
}

func (s *RPCServer) ImportCompleted(req ImportCompletedRequest, resp *ImportCompletedResponse) error {
	svc := s.Impl.ImportStageService()
	if svc == nil {
		resp.Items = req.Items
		return nil
	}
	// Store is nil here: the plugin mutates the items and the host-side
	// client persists them after the call returns.
	task := &ImportTask{
		WriteOnImport: req.WriteOnImport,
		Items:         req.Items,
	}
	if err := svc.OnImportCompleted(context.Background(), task); err != nil {
		return err
	}
	resp.Items = task.Items
	return nil
}

func (s *RPCServer) GetModels(_ Empty, resp *[]string) error {
	svc := s.Impl.DatabaseService()
	if svc == nil {
		return nil
	}
	*resp = svc.GetModels()
	return nil
}

func (s *RPCServer) Migrate(req MigrateRequest, _ *Empty) error {
	svc := s.Impl.DatabaseService()
	if svc == nil {
		return nil
	}
	return svc.Migrate(req.ConnectionString)
}

func (s *RPCServer) Rollback(req MigrateRequest, _ *Empty) error {
	svc := s.Impl.DatabaseService()
	if svc == nil {
		return nil
	}
	return svc.Rollback(req.ConnectionString)
}

// RPCClient runs inside the host process and proxies Implementation calls
// over the go-plugin connection.
type RPCClient struct {
	client *rpc.Client
}

var _ Implementation = (*RPCClient)(nil)

func (c *RPCClient) Initialize(ctx *PluginContext) error {
	return c.client.Call("Plugin.Initialize", InitializeRequest{Context: ctx}, &Empty{})
}

func (c *RPCClient) Start() error {
	return c.client.Call("Plugin.Start", Empty{}, &Empty{})
}

func (c *RPCClient) Stop() error {
	return c.client.Call("Plugin.Stop", Empty{}, &Empty{})
}

func (c *RPCClient) Info() (*PluginInfo, error) {
	var info PluginInfo
	if err := c.client.Call("Plugin.Info", Empty{}, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *RPCClient) Health() error {
	return c.client.Call("Plugin.Health", Empty{}, &Empty{})
}

func (c *RPCClient) MetadataSourceService() MetadataSourceService { return c }
func (c *RPCClient) ImportStageService() ImportStageService       { return c }
func (c *RPCClient) DatabaseService() DatabaseService             { return c }

func (c *RPCClient) Candidates(ctx context.Context, artist, album string, vaLikely bool) ([]*AlbumInfo, error) {
	var resp CandidatesResponse
	req := CandidatesRequest{Artist: artist, Album: album, VALikely: vaLikely}
	if err := c.client.Call("Plugin.Candidates", req, &resp); err != nil {
		return nil, err
	}
	return resp.Albums, nil
}

func (c *RPCClient) AlbumForID(ctx context.Context, albumID string) (*AlbumInfo, error) {
	var resp AlbumForIDResponse
	if err := c.client.Call("Plugin.AlbumForID", AlbumForIDRequest{AlbumID: albumID}, &resp); err != nil {
		return nil, err
	}
	return resp.Album, nil
}

func (c *RPCClient) AlbumDistance(candidate *AlbumInfo) float64 {
	var resp AlbumDistanceResponse
	if err := c.client.Call("Plugin.AlbumDistance", AlbumDistanceRequest{Candidate: candidate}, &resp); err != nil {
		return 0
	}
	return resp.Distance
}

// OnImportCompleted ships the batch to the plugin and persists whatever came
// back changed through the host's store.
func (c *RPCClient) OnImportCompleted(ctx context.Context, task *ImportTask) error {
	req := ImportCompletedRequest{
		WriteOnImport: task.WriteOnImport,
		Items:         task.Items,
	}
	var resp ImportCompletedResponse
	if err := c.client.Call("Plugin.ImportCompleted", req, &resp); err != nil {
		return err
	}
	if task.Store == nil {
		task.Items = resp.Items
		return nil
	}
	for i, updated := range resp.Items {
		if i >= len(task.Items) || updated == nil {
			continue
		}
		local := task.Items[i]
		if updated.Lyrics == local.Lyrics {
			continue
		}
		local.Lyrics = updated.Lyrics
		if task.WriteOnImport {
			if err := task.Store.Write(local); err != nil {
				return err
			}
		}
		if err := task.Store.Store(local); err != nil {
			return err
		}
	}
	return nil
}

func (c *RPCClient) GetModels() []string {
	var models []string
	if err := c.client.Call("Plugin.GetModels", Empty{}, &models); err != nil {
		return nil
	}
	return models
}

func (c *RPCClient) Migrate(connectionString string) error {
	return c.client.Call("Plugin.Migrate", MigrateRequest{ConnectionString: connectionString}, &Empty{})
}

func (c *RPCClient) Rollback(connectionString string) error {
	return c.client.Call("Plugin.Rollback", MigrateRequest{ConnectionString: connectionString}, &Empty{})
}
