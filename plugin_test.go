package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcharlick/beets-metalarchives/pkg/plugins"
)

func initializedPlugin(t *testing.T, overrides map[string]string) *MetalArchivesPlugin {
	p := &MetalArchivesPlugin{}
	err := p.Initialize(&plugins.PluginContext{
		PluginID: PluginID,
		BasePath: t.TempDir(),
		LogLevel: "error",
		Config:   overrides,
	})
	require.NoError(t, err)
	t.Cleanup(func() { p.Stop() })
	return p
}

func TestPlugin_Initialize(t *testing.T) {
	p := initializedPlugin(t, map[string]string{
		"source_weight": "0.5",
		"lyrics":        "true",
	})

	assert.NotNil(t, p.logger)
	assert.NotNil(t, p.client)
	assert.NotNil(t, p.mapper)
	assert.NotNil(t, p.cache)
	assert.Equal(t, 0.5, p.config.SourceWeight)
	assert.True(t, p.config.Lyrics)
}

func TestPlugin_Initialize_InvalidConfig(t *testing.T) {
	p := &MetalArchivesPlugin{}
	err := p.Initialize(&plugins.PluginContext{
		BasePath: t.TempDir(),
		LogLevel: "error",
		Config:   map[string]string{"source_weight": "heavy"},
	})
	assert.Error(t, err)
}

func TestPlugin_Info(t *testing.T) {
	p := initializedPlugin(t, nil)

	info, err := p.Info()
	require.NoError(t, err)

	assert.Equal(t, PluginID, info.ID)
	assert.Equal(t, PluginName, info.Name)
	assert.Equal(t, PluginVersion, info.Version)
	assert.Equal(t, plugins.PluginTypeMetadataSource, info.Type)
}

func TestPlugin_ServiceRegistration(t *testing.T) {
	t.Run("lyrics stage off by default", func(t *testing.T) {
		p := initializedPlugin(t, nil)
		assert.NotNil(t, p.MetadataSourceService())
		assert.Nil(t, p.ImportStageService())
		assert.NotNil(t, p.DatabaseService())
	})

	t.Run("lyrics stage registered when enabled", func(t *testing.T) {
		p := initializedPlugin(t, map[string]string{"lyrics": "true"})
		assert.NotNil(t, p.ImportStageService())
	})

	t.Run("disabled plugin exposes no source", func(t *testing.T) {
		p := initializedPlugin(t, map[string]string{"enabled": "false"})
		assert.Nil(t, p.MetadataSourceService())
		assert.Nil(t, p.ImportStageService())
	})
}

func TestPlugin_DatabaseService(t *testing.T) {
	p := initializedPlugin(t, nil)

	assert.Equal(t, []string{"CachedResponse"}, p.GetModels())
	require.NoError(t, p.Migrate(""))
	require.NoError(t, p.Rollback(""))
	require.NoError(t, p.Migrate(""))
}

func TestPlugin_HealthWithoutCache(t *testing.T) {
	p := &MetalArchivesPlugin{}
	assert.Error(t, p.Health())
}
