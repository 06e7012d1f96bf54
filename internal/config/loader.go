package config

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variable names.
const (
	envPrefix     = "CHILDCARE_"
	envConfigFile = "CHILDCARE_CONFIG"
	envLegacyPort = "PORT"
	defaultHost   = "0.0.0.0"
)

// Load builds a Config by layering sources.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. PORT, kept for deployments that only set a port
//  3. file (YAML) if CHILDCARE_CONFIG is set
//  4. env (prefix CHILDCARE_)
func Load(_ context.Context) (*Config, error) {
	base := New()
	if port := strings.TrimSpace(os.Getenv(envLegacyPort)); port != "" {
		base.Addr = net.JoinHostPort(defaultHost, port)
	}

	k := koanf.New(".")

	if path := os.Getenv(envConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	// CHILDCARE_LOG_LEVEL -> log_level. Keys stay flat so underscores
	// match the koanf tags.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}
	// The file path variable shares the prefix but is not a setting.
	k.Delete("config")

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
