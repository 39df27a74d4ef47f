// Package cliconfig loads and validates the bridge configuration from file,
// environment and command-line flags, in ascending precedence.
package cliconfig

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// DefaultSinkURL is the default logging backend endpoint.
const DefaultSinkURL = "http://127.0.0.1:9876"

// DefaultListen is the default transport ingest address.
const DefaultListen = "127.0.0.1:9877"

// Conversion is one routing rule as configured: a topic relayed under an
// entity path, with an optional frame filter.
type Conversion struct {
	Topic      string
	ROSType    string
	EntityPath string
	FrameID    string
}

// Config holds CLI configuration for rerunros.
type Config struct {
	AppID   string
	Listen  string
	SinkURL string
	AuthKey string

	HTTPTimeout time.Duration

	// Dump writes records to the log instead of shipping them.
	Dump bool

	Conversions []Conversion
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		AppID:       "rerun_ros_bridge",
		Listen:      DefaultListen,
		SinkURL:     DefaultSinkURL,
		HTTPTimeout: 15 * time.Second,
		AuthKey:     os.Getenv("RERUNROS_AUTH_KEY"),
	}
}

// Validate checks the configuration for errors and sets derived defaults.
// Every failure here is startup-fatal: the bridge must not subscribe to
// anything with a structurally invalid configuration.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.SinkURL == "" && !c.Dump {
		return fmt.Errorf("sink-url is required")
	}
	c.SinkURL = strings.TrimSuffix(c.SinkURL, "/")

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive")
	}

	if len(c.Conversions) == 0 {
		return fmt.Errorf("at least one [[conversion]] entry is required")
	}
	for i, conv := range c.Conversions {
		if conv.Topic == "" {
			return fmt.Errorf("conversion %d: topic is required", i)
		}
		if conv.ROSType == "" {
			return fmt.Errorf("conversion %d (topic %s): ros_type is required", i, conv.Topic)
		}
		if conv.EntityPath == "" {
			return fmt.Errorf("conversion %d (topic %s): entity_path is required", i, conv.Topic)
		}
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't been
// explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not
// changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
