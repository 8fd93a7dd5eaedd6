package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable that may point at a config file
const EnvConfigPath = "SUSTAINABOT_CONFIG"

// envVarPattern matches ${NAME} and ${NAME:-default}
var envVarPattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)(?::-([^}]*))?\}`)

// Loader reads YAML configuration overlaid on DefaultConfig
type Loader struct {
	searchPaths []string
	lookupEnv   func(string) (string, bool)
	used        string
}

// NewLoader creates a loader probing the working directory and the home
// directory for a config file
func NewLoader() *Loader {
	return &Loader{
		searchPaths: []string{
			"sustainabot.yaml",
			filepath.Join("config", "sustainabot.yaml"),
			filepath.Join(os.Getenv("HOME"), ".sustainabot", "config.yaml"),
		},
		lookupEnv: os.LookupEnv,
	}
}

// Path returns the file the last Load read, or "" when defaults were used
func (l *Loader) Path() string {
	return l.used
}

// Load resolves a config file and decodes it over the defaults.
// Resolution order: configPath, $SUSTAINABOT_CONFIG, then the search paths.
// Values may reference the environment as ${VAR} or ${VAR:-default}.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func (l *Loader) Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	l.used = l.resolve(configPath)
	if l.used == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(l.used)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(l.expandEnvVars(raw)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config file %s: %w", l.used, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file %s: %w", l.used, err)
	}

	return cfg, nil
}

func (l *Loader) resolve(configPath string) string {
	if configPath != "" {
		return configPath
	}
	if p, ok := l.lookupEnv(EnvConfigPath); ok && p != "" {
		return p
	}
	for _, p := range l.searchPaths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// expandEnvVars substitutes environment references; unset variables without
// a default become empty
func (l *Loader) expandEnvVars(raw []byte) []byte {
	return envVarPattern.ReplaceAllFunc(raw, func(ref []byte) []byte {
		m := envVarPattern.FindSubmatch(ref)
		if val, ok := l.lookupEnv(string(m[1])); ok {
			return []byte(val)
		}
		return m[2]
	})
}
