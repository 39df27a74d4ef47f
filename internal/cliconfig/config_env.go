package cliconfig

import "os"

// ApplyEnvConfig applies RERUNROS_* environment variables to the Config.
// Environment values override the file but are overridden by explicitly set
// flags (tracked via the changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("app-id", os.Getenv("RERUNROS_APP_ID"), &cfg.AppID)
	s.setString("listen", os.Getenv("RERUNROS_LISTEN"), &cfg.Listen)
	s.setString("sink-url", os.Getenv("RERUNROS_SINK_URL"), &cfg.SinkURL)
	s.setString("auth-key", os.Getenv("RERUNROS_AUTH_KEY"), &cfg.AuthKey)

	if err := s.setDuration("timeout", os.Getenv("RERUNROS_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}
	s.setBoolFromString("dump", os.Getenv("RERUNROS_DUMP"), &cfg.Dump)
	return nil
}
