package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/roslog/rerunros/internal/cliconfig"
	"github.com/roslog/rerunros/pkg/bridge"
	logAdapter "github.com/roslog/rerunros/pkg/log"
	"github.com/roslog/rerunros/plugins/configwatcher"
)

const helpDescription = `
Relay ROS 2 messages to a visualization backend without touching your nodes.

Highlights:
  - Routes topics to entity paths with a declarative [[conversion]] table.
  - Decodes std_msgs and geometry_msgs payloads; fan out by frame_id.
  - Rejects broken routing at startup, before any message flows.
  - Configure via file, environment (RERUNROS_*), or flags.
`

var longHelp = strings.TrimSpace(helpDescription)

var exampleUsage = strings.TrimSpace(`
  rerunros --config $HOME/.rerunros/config.toml
  rerunros --config ./bridge.toml --dump
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "rerunros",
		Short:   "Relay ROS 2 messages to a visualization backend",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.rerunros/config.toml),
			// then apply env and flag overrides.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Environment variables (RERUNROS_*) override file config but
			// are overridden by flags (checked via changed map).
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			// Log configuration (masking the auth key)
			logCfg := cfg
			if len(logCfg.AuthKey) > 0 {
				logCfg.AuthKey = "*****"
			}
			log.Info().Interface("config", logCfg).Msg("configuration")

			libCfg := bridge.Config{
				AppID:       cfg.AppID,
				Listen:      cfg.Listen,
				SinkURL:     cfg.SinkURL,
				AuthKey:     cfg.AuthKey,
				HTTPTimeout: cfg.HTTPTimeout,
				Dump:        cfg.Dump,
				ConfigPath:  cfgFile,
			}
			for _, conv := range cfg.Conversions {
				libCfg.Conversions = append(libCfg.Conversions, bridge.Conversion{
					Topic:      conv.Topic,
					ROSType:    conv.ROSType,
					EntityPath: conv.EntityPath,
					FrameID:    conv.FrameID,
				})
			}

			zerologAdapter := logAdapter.NewZerologAdapterWithLogger(log)

			b, err := bridge.New(libCfg,
				bridge.WithLogger(zerologAdapter),
				configwatcher.WithConfigWatcher(configwatcher.DefaultConfig()),
			)
			if err != nil {
				return fmt.Errorf("create bridge: %w", err)
			}

			// Setup signal handling for graceful shutdown
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			if err := b.Start(ctx); err != nil {
				return fmt.Errorf("start bridge: %w", err)
			}

			// Detect crash-driven completion
			doneCh := make(chan struct{})
			go func() {
				ticker := time.NewTicker(100 * time.Millisecond)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						status := b.Status()
						if status == bridge.StateStopped || status == bridge.StateCrashed {
							close(doneCh)
							return
						}
					}
				}
			}()

			select {
			case <-sigCh:
				log.Info().Msg("received signal, stopping...")
			case <-doneCh:
				if b.Status() == bridge.StateCrashed {
					log.Error().Msg("bridge crashed")
				}
			}

			// A crashed bridge has already torn itself down.
			if err := b.Stop(); err != nil && !errors.Is(err, bridge.ErrNotRunning) {
				return fmt.Errorf("stop bridge: %w", err)
			}
			return nil
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.rerunros/config.toml)")
	root.Flags().StringVar(&cfg.AppID, "app-id", cfg.AppID, "application id reported to the sink backend")
	root.Flags().StringVar(&cfg.Listen, "listen", cfg.Listen, "TCP address publishers connect to")
	root.Flags().StringVar(&cfg.SinkURL, "sink-url", cfg.SinkURL, "base URL of the sink backend")
	root.Flags().StringVar(&cfg.AuthKey, "auth-key", cfg.AuthKey, "API key for sink authentication")
	root.Flags().DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP timeout for sink requests")
	root.Flags().BoolVar(&cfg.Dump, "dump", cfg.Dump, "log records locally instead of sending to the sink")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("rerunros")
		os.Exit(1)
	}
}
