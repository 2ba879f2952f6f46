// Copyright (c) Microsoft. All rights reserved.

// Package config loads the game show settings from the environment.
//
// A .env file in the working directory is read first when present; real
// environment variables take precedence over it.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	// ErrConfig is the base error for every configuration problem.
	ErrConfig = errors.New("configuration error")

	// ErrMissing reports a required setting that is not set.
	ErrMissing = fmt.Errorf("%w: missing setting", ErrConfig)

	// ErrInvalid reports a setting whose value cannot be used.
	ErrInvalid = fmt.Errorf("%w: invalid setting", ErrConfig)
)

// Provider names a model vendor.
type Provider string

const (
	Anthropic Provider = "anthropic"
	OpenAI    Provider = "openai"
	Azure     Provider = "azure"
)

// Narrator selects how the host speaks.
type Narrator string

const (
	NarratorAI    Narrator = "ai"
	NarratorPlain Narrator = "plain"
)

// Defaults.
const (
	DefaultPlayers           = "Contestant 1,Contestant 2"
	DefaultAttempts          = 3
	DefaultLower             = 1
	DefaultUpper             = 100
	DefaultRequestsPerSecond = 2.0
	DefaultRequestTimeout    = time.Minute
)

// Config is the complete set of settings for one run.
type Config struct {
	Provider Provider
	Model    string
	// APIKey is empty only for Azure with Azure AD authentication.
	APIKey string
	// BaseURL overrides the provider endpoint. Required for Azure.
	BaseURL string
	// APIVersion is the Azure api-version query parameter, if any.
	APIVersion string

	Players  []string
	Attempts int
	Lower    int
	Upper    int

	Narrator          Narrator
	RequestsPerSecond float64
	// RequestTimeout bounds each model call; zero means unbounded.
	RequestTimeout time.Duration
	Debug          bool
}

// LookupFunc reads one setting; it has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadEnv reads .env if present and loads the configuration from the
// process environment.
func LoadEnv() (*Config, error) {
	// Ignored if missing.
	_ = godotenv.Load()
	return Load(os.LookupEnv)
}

// Load builds a Config from lookup. Errors wrap [ErrMissing] or [ErrInvalid].
func Load(lookup LookupFunc) (*Config, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	cfg := &Config{Debug: get("DEBUG") != ""}

	if err := cfg.loadProvider(get); err != nil {
		return nil, err
	}

	var err error
	if cfg.Players, err = players(get("GAMESHOW_PLAYERS")); err != nil {
		return nil, err
	}
	if cfg.Attempts, err = intSetting("GAMESHOW_ATTEMPTS", get("GAMESHOW_ATTEMPTS"), DefaultAttempts); err != nil {
		return nil, err
	}
	if cfg.Attempts < 1 {
		return nil, fmt.Errorf("%w: GAMESHOW_ATTEMPTS must be at least 1, got %d", ErrInvalid, cfg.Attempts)
	}
	if cfg.Lower, err = intSetting("GAMESHOW_MIN", get("GAMESHOW_MIN"), DefaultLower); err != nil {
		return nil, err
	}
	if cfg.Upper, err = intSetting("GAMESHOW_MAX", get("GAMESHOW_MAX"), DefaultUpper); err != nil {
		return nil, err
	}
	if cfg.Lower > cfg.Upper {
		return nil, fmt.Errorf("%w: GAMESHOW_MIN (%d) is greater than GAMESHOW_MAX (%d)", ErrInvalid, cfg.Lower, cfg.Upper)
	}

	switch n := Narrator(strings.ToLower(get("GAMESHOW_NARRATOR"))); n {
	case "":
		cfg.Narrator = NarratorAI
	case NarratorAI, NarratorPlain:
		cfg.Narrator = n
	default:
		return nil, fmt.Errorf("%w: GAMESHOW_NARRATOR must be %q or %q, got %q", ErrInvalid, NarratorAI, NarratorPlain, n)
	}

	cfg.RequestsPerSecond = DefaultRequestsPerSecond
	if v := get("GAMESHOW_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil || rps < 0 {
			return nil, fmt.Errorf("%w: GAMESHOW_RPS must be a non-negative number, got %q", ErrInvalid, v)
		}
		cfg.RequestsPerSecond = rps
	}

	cfg.RequestTimeout = DefaultRequestTimeout
	if v := get("GAMESHOW_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("%w: GAMESHOW_TIMEOUT must be a non-negative duration such as 30s, got %q", ErrInvalid, v)
		}
		cfg.RequestTimeout = d
	}

	return cfg, nil
}

func (c *Config) loadProvider(get func(string) string) error {
	p := Provider(strings.ToLower(get("GAMESHOW_PROVIDER")))
	if p == "" {
		switch {
		case get("ANTHROPIC_API_KEY") != "":
			p = Anthropic
		case get("OPENAI_API_KEY") != "":
			p = OpenAI
		case get("AZURE_FOUNDRY_ENDPOINT") != "":
			p = Azure
		default:
			return fmt.Errorf("%w: ANTHROPIC_API_KEY (or OPENAI_API_KEY, or AZURE_FOUNDRY_ENDPOINT)", ErrMissing)
		}
	}
	c.Provider = p

	switch p {
	case Anthropic:
		c.APIKey = get("ANTHROPIC_API_KEY")
		c.Model = get("ANTHROPIC_MODEL_NAME")
		c.BaseURL = get("ANTHROPIC_BASE_URL")
		return require(map[string]string{"ANTHROPIC_API_KEY": c.APIKey, "ANTHROPIC_MODEL_NAME": c.Model})
	case OpenAI:
		c.APIKey = get("OPENAI_API_KEY")
		c.Model = get("OPENAI_MODEL")
		c.BaseURL = get("OPENAI_BASE_URL")
		return require(map[string]string{"OPENAI_API_KEY": c.APIKey, "OPENAI_MODEL": c.Model})
	case Azure:
		c.APIKey = get("AZURE_FOUNDRY_KEY")
		c.Model = get("AZURE_FOUNDRY_MODEL")
		c.BaseURL = get("AZURE_FOUNDRY_ENDPOINT")
		c.APIVersion = get("AZURE_FOUNDRY_API_VERSION")
		return require(map[string]string{"AZURE_FOUNDRY_ENDPOINT": c.BaseURL, "AZURE_FOUNDRY_MODEL": c.Model})
	default:
		return fmt.Errorf("%w: GAMESHOW_PROVIDER must be one of %q, %q, %q, got %q", ErrInvalid, Anthropic, OpenAI, Azure, p)
	}
}

// require reports every unset key, sorted.
func require(settings map[string]string) error {
	var missing []string
	for k, v := range settings {
		if v == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	slices.Sort(missing)
	return fmt.Errorf("%w: %s", ErrMissing, strings.Join(missing, ", "))
}

func players(v string) ([]string, error) {
	if v == "" {
		v = DefaultPlayers
	}
	var names []string
	seen := make(map[string]bool)
	for _, n := range strings.Split(v, ",") {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if seen[n] {
			return nil, fmt.Errorf("%w: GAMESHOW_PLAYERS lists %q twice", ErrInvalid, n)
		}
		seen[n] = true
		names = append(names, n)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: GAMESHOW_PLAYERS names no player", ErrInvalid)
	}
	return names, nil
}

func intSetting(key, v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalid, key, v)
	}
	return n, nil
}
