package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML
// friendly.
type FileConfig struct {
	AppID       string           `toml:"app_id"`
	Listen      string           `toml:"listen"`
	SinkURL     string           `toml:"sink_url"`
	AuthKey     string           `toml:"auth_key"`
	HTTPTimeout string           `toml:"http_timeout"`
	Dump        *bool            `toml:"dump"`
	Conversions []FileConversion `toml:"conversion"`
}

// FileConversion is one [[conversion]] table in the config file.
type FileConversion struct {
	Topic      string `toml:"topic"`
	ROSType    string `toml:"ros_type"`
	EntityPath string `toml:"entity_path"`
	FrameID    string `toml:"frame_id"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.rerunros/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".rerunros", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map). The
// conversion list only ever comes from the file.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("app-id", fc.AppID, &cfg.AppID)
	s.setString("listen", fc.Listen, &cfg.Listen)
	s.setString("sink-url", fc.SinkURL, &cfg.SinkURL)
	s.setString("auth-key", fc.AuthKey, &cfg.AuthKey)

	if err := s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}
	s.setBool("dump", fc.Dump, &cfg.Dump)

	for _, conv := range fc.Conversions {
		cfg.Conversions = append(cfg.Conversions, Conversion{
			Topic:      conv.Topic,
			ROSType:    conv.ROSType,
			EntityPath: conv.EntityPath,
			FrameID:    conv.FrameID,
		})
	}
	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
