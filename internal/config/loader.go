package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/hyperreal/internal/domain/matchtime"
)

// Environment variables read by Load.
const (
	EnvPrefix     = "HYPERREAL_"
	EnvConfigFile = "HYPERREAL_CONFIG"
	EnvToken      = "GITHUB_TOKEN"
	EnvGitCommits = "ENABLE_GIT_COMMITS"
)

// OverrideConfigFile is the override key that names a YAML file; it takes
// precedence over HYPERREAL_CONFIG.
const OverrideConfigFile = "config_file"

// bareEnv maps unprefixed variables onto config keys.
var bareEnv = map[string]string{
	EnvToken:      "github_token",
	EnvGitCommits: "enable_git_commits",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(matchClockFits, Config{})
	return v
}

// matchClockFits rejects matches whose clock would need four minute digits.
func matchClockFits(sl validator.StructLevel) {
	c := sl.Current().Interface().(Config)
	if c.Duration > 0 && c.FPS > 0 && !matchtime.Fits(c.Duration, c.FPS) {
		sl.ReportError(c.Duration, "Duration", "duration", "matchclock", "")
	}
}

// Load builds a Config by layering, from low to high precedence:
//  1. defaults (New(ctx))
//  2. YAML file named by the config_file override or HYPERREAL_CONFIG
//  3. GITHUB_TOKEN and ENABLE_GIT_COMMITS
//  4. env (prefix HYPERREAL_)
//  5. overrides, typically command line flags, keyed like the koanf tags
func Load(ctx context.Context, overrides map[string]any) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	path := os.Getenv(EnvConfigFile)
	if p, ok := overrides[OverrideConfigFile].(string); ok && p != "" {
		path = p
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	bare := env.Provider("", ".", func(s string) string {
		return bareEnv[s]
	})
	if err := k.Load(bare, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	// HYPERREAL_TEAM_A -> team_a; underscores are kept to match the tags.
	prefixed := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(prefixed, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	for key, val := range overrides {
		if key == OverrideConfigFile {
			continue
		}
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("%w: override %s: %w", ErrLoadConfig, key, err)
		}
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and wraps failures in ErrInvalidConfig.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}
