package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/lcharlick/beets-metalarchives/config"
	"github.com/lcharlick/beets-metalarchives/metalarchives"
	"github.com/lcharlick/beets-metalarchives/pkg/plugins"
)

const (
	// PluginID is the unique identifier for this plugin.
	PluginID = "metalarchives"

	// PluginName is the human-readable name.
	PluginName = "Metal Archives Metadata Source"

	// PluginVersion follows semantic versioning.
	PluginVersion = "1.0.0"

	// PluginDescription describes what this plugin does.
	PluginDescription = "Adds Metal Archives album search and lyrics support to the autotagger"

	// PluginAuthor identifies the plugin author.
	PluginAuthor = "lcharlick"
)

// MetalArchivesPlugin implements the plugin interfaces.
type MetalArchivesPlugin struct {
	logger   hclog.Logger
	config   *config.Config
	client   metalarchives.API
	mapper   *metalarchives.Mapper
	cache    *metalarchives.Cache
	basePath string
}

func (p *MetalArchivesPlugin) Initialize(ctx *plugins.PluginContext) error {
	p.logger = hclog.New(&hclog.LoggerOptions{
		Name:  PluginID,
		Level: hclog.LevelFromString(ctx.LogLevel),
	})
	p.basePath = ctx.BasePath

	cfg := config.DefaultConfig()
	if err := cfg.ApplyOverrides(ctx.Config); err != nil {
		return fmt.Errorf("invalid plugin configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid plugin configuration: %w", err)
	}
	p.config = cfg

	cache, err := metalarchives.OpenCache(
		p.logger.Named("cache"),
		filepath.Join(p.basePath, "metalarchives.db"),
		time.Duration(cfg.CacheDurationHours)*time.Hour,
	)
	if err != nil {
		return fmt.Errorf("failed to open response cache: %w", err)
	}
	p.cache = cache

	client := metalarchives.NewClient(p.logger.Named("client"), metalarchives.ClientOptions{
		BaseURL:   cfg.BaseURL,
		UserAgent: cfg.UserAgent,
		RateLimit: cfg.RateLimit,
		Cache:     cache,
	})
	p.client = client
	p.mapper = metalarchives.NewMapper(client.BaseURL())

	p.logger.Info("initialized",
		"base_path", p.basePath,
		"base_url", client.BaseURL(),
		"source_weight", cfg.SourceWeight,
		"lyrics", cfg.Lyrics,
		"lyrics_search", cfg.LyricsSearch)
	return nil
}

func (p *MetalArchivesPlugin) Start() error {
	p.logger.Info("started")
	return nil
}

func (p *MetalArchivesPlugin) Stop() error {
	p.logger.Info("stopped")
	if p.cache != nil {
		return p.cache.Close()
	}
	return nil
}

func (p *MetalArchivesPlugin) Info() (*plugins.PluginInfo, error) {
	return &plugins.PluginInfo{
		ID:          PluginID,
		Name:        PluginName,
		Version:     PluginVersion,
		Description: PluginDescription,
		Author:      PluginAuthor,
		Type:        plugins.PluginTypeMetadataSource,
	}, nil
}

func (p *MetalArchivesPlugin) Health() error {
	if p.cache == nil {
		return fmt.Errorf("response cache not available")
	}
	type healthChecker interface {
		HealthCheck(ctx context.Context) error
	}
	if hc, ok := p.client.(healthChecker); ok {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return hc.HealthCheck(ctx)
	}
	return nil
}

// Service interface implementations.

func (p *MetalArchivesPlugin) MetadataSourceService() plugins.MetadataSourceService {
	if !p.config.Enabled {
		return nil
	}
	return p
}

func (p *MetalArchivesPlugin) ImportStageService() plugins.ImportStageService {
	// The lyrics stage is registered only when enabled, mirroring how the
	// host skips stages that would be no-ops.
	if !p.config.Enabled || !p.config.Lyrics {
		return nil
	}
	return p
}

func (p *MetalArchivesPlugin) DatabaseService() plugins.DatabaseService {
	return p
}

// DatabaseService implementation: the only plugin-owned table is the
// response cache.

func (p *MetalArchivesPlugin) GetModels() []string {
	return []string{"CachedResponse"}
}

func (p *MetalArchivesPlugin) Migrate(connectionString string) error {
	if p.cache == nil {
		return fmt.Errorf("response cache not available")
	}
	return p.cache.Migrate()
}

func (p *MetalArchivesPlugin) Rollback(connectionString string) error {
	if p.cache == nil {
		return fmt.Errorf("response cache not available")
	}
	return p.cache.Rollback()
}
