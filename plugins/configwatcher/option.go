package configwatcher

import "github.com/roslog/rerunros/pkg/bridge"

// WithConfigWatcher returns a bridge Option that enables config file
// watching. When enabled, the plugin monitors the bridge's configuration
// file for changes and logs a restart advisory when it is rewritten.
//
// Usage:
//
//	b, err := bridge.New(cfg,
//	    configwatcher.WithConfigWatcher(configwatcher.Config{
//	        DebounceDelay: 100 * time.Millisecond,
//	    }),
//	)
func WithConfigWatcher(cfg Config) bridge.Option {
	plugin := New(cfg)
	return bridge.WithPlugin(plugin)
}

// WithDefaultConfigWatcher returns a bridge Option that enables config
// watching with default settings (debounce 100ms).
//
// Usage:
//
//	b, err := bridge.New(cfg, configwatcher.WithDefaultConfigWatcher())
func WithDefaultConfigWatcher() bridge.Option {
	return WithConfigWatcher(DefaultConfig())
}
