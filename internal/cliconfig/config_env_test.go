package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"RERUNROS_APP_ID":       "env_bridge",
				"RERUNROS_LISTEN":       "0.0.0.0:7001",
				"RERUNROS_SINK_URL":     "http://env-backend",
				"RERUNROS_AUTH_KEY":     "env-secret",
				"RERUNROS_HTTP_TIMEOUT": "45s",
				"RERUNROS_DUMP":         "true",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				AppID:       "env_bridge",
				Listen:      "0.0.0.0:7001",
				SinkURL:     "http://env-backend",
				AuthKey:     "env-secret",
				HTTPTimeout: 45 * time.Second,
				Dump:        true,
			},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"RERUNROS_SINK_URL": "http://env-backend",
				"RERUNROS_APP_ID":   "env_bridge",
			},
			changed: map[string]bool{"sink-url": true},
			initial: Config{SinkURL: "http://flag-backend"},
			expected: Config{
				SinkURL: "http://flag-backend",
				AppID:   "env_bridge",
			},
		},
		{
			name: "returns error for invalid duration",
			envVars: map[string]string{
				"RERUNROS_HTTP_TIMEOUT": "not-a-duration",
			},
			changed: map[string]bool{},
			initial: Config{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)

			if tt.wantErr {
				if err == nil {
					t.Fatal("ApplyEnvConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnvConfig() unexpected error: %v", err)
			}

			if cfg.AppID != tt.expected.AppID ||
				cfg.Listen != tt.expected.Listen ||
				cfg.SinkURL != tt.expected.SinkURL ||
				cfg.AuthKey != tt.expected.AuthKey ||
				cfg.HTTPTimeout != tt.expected.HTTPTimeout ||
				cfg.Dump != tt.expected.Dump {
				t.Fatalf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}
