package bridge

import (
	"context"

	"github.com/roslog/rerunros/pkg/log"
)

// Plugin extends the bridge with optional functionality.
// Plugins are initialized in registration order when the bridge starts and
// shut down in reverse order when it stops.
type Plugin interface {
	// Name returns a stable identifier used in log output.
	Name() string

	// Initialize starts the plugin. The context is canceled when the
	// bridge stops. An error aborts bridge startup.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown stops the plugin and releases its resources.
	Shutdown(ctx context.Context) error
}

// PluginConfig is the subset of bridge configuration handed to plugins at
// initialization.
type PluginConfig struct {
	ConfigPath string
	Listen     string
	SinkURL    string
	AppID      string
	AuthKey    string
	Logger     log.Logger
}
