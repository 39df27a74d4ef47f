// Package rerunros provides a lightweight bridge from ROS 2 topics to a
// visualization backend.
//
// Example usage:
//
//	cfg := rerunros.Config{
//	    SinkURL: "http://127.0.0.1:9876",
//	    Conversions: []rerunros.Conversion{
//	        {Topic: "/cpu_temp", ROSType: "std_msgs/msg/Float64", EntityPath: "/sensors/cpu_temp"},
//	    },
//	}
//	if err := rerunros.Run(context.Background(), cfg); err != nil {
//	    log.Fatal(err)
//	}
package rerunros

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/roslog/rerunros/internal/cliconfig"
	"github.com/roslog/rerunros/pkg/bridge"
	logpkg "github.com/roslog/rerunros/pkg/log"
)

// Config holds the configuration for the bridge.
// Use bridge.Config's SetDefaults for sensible default values.
type Config = bridge.Config

// Conversion declares one routing rule.
type Conversion = bridge.Conversion

// Run starts the bridge with the given configuration and blocks until the
// context is cancelled or startup fails. For finer lifecycle control, use
// the bridge package directly.
func Run(ctx context.Context, cfg Config) error {
	b, err := bridge.New(cfg,
		bridge.WithLogger(logpkg.NewZerologAdapterWithLogger(cliconfig.Logger())),
	)
	if err != nil {
		return err
	}
	if err := b.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return b.Stop()
}

// Logger returns the package-level zerolog logger used by the CLI.
func Logger() zerolog.Logger {
	return cliconfig.Logger()
}

// DefaultSinkURL is the default endpoint records are logged to.
const DefaultSinkURL = bridge.DefaultSinkURL
