// Package plugins: HashiCorp go-plugin integration helpers.
package plugins

import (
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// SourcePlugin is the plugin.Plugin implementation for go-plugin.
type SourcePlugin struct {
	Impl Implementation
}

// Server returns the RPC server for HashiCorp go-plugin.
func (p *SourcePlugin) Server(*plugin.MuxBroker) (interface{}, error) {
	return &RPCServer{Impl: p.Impl}, nil
}

// Client returns the RPC client for HashiCorp go-plugin.
func (p *SourcePlugin) Client(b *plugin.MuxBroker, c *rpc.Client) (interface{}, error) {
	return &RPCClient{client: c}, nil
}

// Handshake configuration shared by the host and all plugins.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "TAGGER_PLUGIN",
	MagicCookieValue: "tagger",
}

// PluginMap is the map of plugins we can dispense.
var PluginMap = map[string]plugin.Plugin{
	"source": &SourcePlugin{},
}

// StartPlugin is a helper for plugin main() functions.
func StartPlugin(impl Implementation) {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins: map[string]plugin.Plugin{
			"source": &SourcePlugin{Impl: impl},
		},
	})
}
