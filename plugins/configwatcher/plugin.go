// Package configwatcher provides config file monitoring for the bridge.
// When enabled, it watches the bridge's TOML configuration file for changes,
// re-parses it, and reports whether the new contents are valid. Routing
// changes take effect on the next restart.
package configwatcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/roslog/rerunros/internal/cliconfig"
	"github.com/roslog/rerunros/pkg/bridge"
	"github.com/roslog/rerunros/pkg/log"
)

// Plugin implements config file watching. It monitors the configuration
// file the bridge was started from and logs a restart advisory whenever the
// file changes. An optional OnChange callback lets embedders react, for
// example by triggering a supervised restart.
type Plugin struct {
	mu sync.Mutex

	// Configuration
	debounceDelay time.Duration
	onChange      func(path string)

	// Runtime state
	configPath string
	logger     bridge.Logger
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	debounce   *time.Timer
}

// Config holds configuration options for the config watcher plugin.
type Config struct {
	// DebounceDelay is the delay to wait after a file change before
	// re-parsing. Editors often produce several events per save.
	// Default: 100 milliseconds
	DebounceDelay time.Duration

	// OnChange is called after a changed file has been re-parsed,
	// regardless of whether it was valid. Optional.
	OnChange func(path string)
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 100 * time.Millisecond,
	}
}

// New creates a new config watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}

	return &Plugin{
		debounceDelay: cfg.DebounceDelay,
		onChange:      cfg.OnChange,
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "configwatcher"
}

// Initialize sets up the plugin and starts the watcher loop.
func (p *Plugin) Initialize(ctx context.Context, cfg bridge.PluginConfig) error {
	p.mu.Lock()
	p.configPath = cfg.ConfigPath
	p.logger = cfg.Logger
	p.mu.Unlock()

	if p.configPath == "" {
		p.logger.Warn("config watcher disabled: no config file path")
		return nil
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("config watcher plugin initialized",
		log.String("path", p.configPath))

	p.wg.Add(1)
	go p.watchLoop(watchCtx)

	return nil
}

// Shutdown stops the config watcher.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	return nil
}

// watchLoop watches the directory holding the config file. Watching the
// directory rather than the file survives the rename-and-replace pattern
// most editors use on save.
func (p *Plugin) watchLoop(ctx context.Context) {
	defer p.wg.Done()

	configDir := filepath.Dir(p.configPath)
	configName := filepath.Base(p.configPath)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		p.logger.Error("config watcher: failed to create watcher")
		return
	}
	defer watcher.Close()

	if err := watcher.Add(configDir); err != nil {
		p.logger.Error("config watcher: failed to watch directory")
		return
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != configName {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			p.debounceCheck(p.debounceDelay)

		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("config watcher: watcher error")
		}
	}
}

func (p *Plugin) debounceCheck(delay time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}

	p.debounce = time.AfterFunc(delay, p.checkConfig)
}

// checkConfig re-parses the changed file and logs the result.
func (p *Plugin) checkConfig() {
	fc, err := cliconfig.LoadFileConfig(p.configPath)
	switch {
	case err != nil:
		p.logger.Warn("config file changed but does not parse; keeping current routing",
			log.Err(err))
	default:
		p.logger.Info("config file changed; restart to apply",
			log.Int("conversions", len(fc.Conversions)))
	}

	if p.onChange != nil {
		p.onChange(p.configPath)
	}
}

// Ensure Plugin implements bridge.Plugin.
var _ bridge.Plugin = (*Plugin)(nil)
