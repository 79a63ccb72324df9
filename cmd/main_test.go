package main

import (
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/saeidalz13/battleship-engine/api"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		wantErr    bool
		port       int
		agentDelay time.Duration
		logLevel   log.Level
	}{
		{
			name:       "defaults",
			env:        map[string]string{"PORT": "7171"},
			port:       7171,
			agentDelay: time.Second,
			logLevel:   log.InfoLevel,
		},
		{
			name:       "overrides",
			env:        map[string]string{"PORT": "8080", "AGENT_DELAY_MS": "250", "LOG_LEVEL": "debug"},
			port:       8080,
			agentDelay: 250 * time.Millisecond,
			logLevel:   log.DebugLevel,
		},
		{name: "missing port", env: map[string]string{}, wantErr: true},
		{name: "bad delay", env: map[string]string{"PORT": "7171", "AGENT_DELAY_MS": "soon"}, wantErr: true},
		{name: "bad level", env: map[string]string{"PORT": "7171", "LOG_LEVEL": "loud"}, wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			for _, key := range []string{"PORT", "AGENT_DELAY_MS", "LOG_LEVEL", "DATABASE_URL", "STAGE"} {
				t.Setenv(key, test.env[key])
			}

			cfg, err := loadConfig()
			if test.wantErr {
				if err == nil {
					t.Fatalf("expected error, got config %+v", cfg)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.port != test.port {
				t.Errorf("port = %d, want %d", cfg.port, test.port)
			}
			if cfg.agentDelay != test.agentDelay {
				t.Errorf("agent delay = %v, want %v", cfg.agentDelay, test.agentDelay)
			}
			if cfg.logLevel != test.logLevel {
				t.Errorf("log level = %v, want %v", cfg.logLevel, test.logLevel)
			}
			if cfg.psqlUrl != "" {
				t.Errorf("expected analytics disabled, got %q", cfg.psqlUrl)
			}
		})
	}
}

// A server that fails to start returns from run instead of exiting,
// so deferred cleanup still happens.
func TestRunReturnsConfigError(t *testing.T) {
	t.Setenv("STAGE", api.StageProd)
	t.Setenv("PORT", "not-a-port")

	if err := run(); err == nil {
		t.Fatal("expected run to return an error")
	}
}
