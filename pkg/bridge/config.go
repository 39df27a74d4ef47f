package bridge

import (
	"fmt"
	"strings"
	"time"

	"github.com/roslog/rerunros/internal/domain"
)

// Default endpoints used when the corresponding Config fields are empty.
const (
	DefaultSinkURL = "http://127.0.0.1:9876"
	DefaultListen  = "127.0.0.1:9877"
	DefaultAppID   = "rerun_ros_bridge"
)

// Conversion declares one routing rule: messages on Topic, decoded as
// ROSType, are logged under EntityPath. A non-empty FrameID restricts the
// rule to messages carrying that exact frame.
type Conversion struct {
	Topic      string
	ROSType    string
	EntityPath string
	FrameID    string
}

// Config holds the configuration for a Bridge instance.
// Use SetDefaults to fill optional fields, then Validate before New.
type Config struct {
	// AppID identifies this bridge to the sink backend.
	AppID string

	// Listen is the TCP address publishers connect to.
	Listen string

	// SinkURL is the base URL of the sink backend. Required unless Dump
	// is set.
	SinkURL string

	// AuthKey is the bearer token sent with sink requests. Optional.
	AuthKey string

	// HTTPTimeout bounds each sink request.
	HTTPTimeout time.Duration

	// Dump logs records locally instead of sending them to a sink.
	Dump bool

	// ConfigPath is the TOML file this configuration was loaded from,
	// if any. Plugins such as the config watcher use it; the bridge
	// itself never reads it.
	ConfigPath string

	// Conversions is the routing table. At least one entry is required.
	Conversions []Conversion
}

// SetDefaults fills in default values for unset optional fields.
func (c *Config) SetDefaults() {
	if c.AppID == "" {
		c.AppID = DefaultAppID
	}
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.SinkURL == "" && !c.Dump {
		c.SinkURL = DefaultSinkURL
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 15 * time.Second
	}
}

// Validate checks the configuration for errors.
// Call SetDefaults first; Validate does not fill missing values.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("%w: listen address is required", domain.ErrInvalidConfig)
	}
	if c.SinkURL == "" && !c.Dump {
		return fmt.Errorf("%w: sink URL is required unless dump mode is enabled", domain.ErrInvalidConfig)
	}
	c.SinkURL = strings.TrimRight(c.SinkURL, "/")
	if len(c.Conversions) == 0 {
		return fmt.Errorf("%w: at least one conversion is required", domain.ErrInvalidConfig)
	}
	for i, conv := range c.Conversions {
		if conv.Topic == "" {
			return fmt.Errorf("%w: conversion %d: topic is required", domain.ErrInvalidConfig, i)
		}
		if conv.ROSType == "" {
			return fmt.Errorf("%w: conversion %d: ros_type is required", domain.ErrInvalidConfig, i)
		}
		if conv.EntityPath == "" {
			return fmt.Errorf("%w: conversion %d: entity_path is required", domain.ErrInvalidConfig, i)
		}
	}
	return nil
}
