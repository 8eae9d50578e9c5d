package check

import (
	"fmt"
	"os"

	"github.com/fortlang/shape/pkg/diag"
	"gopkg.in/yaml.v3"
)

// Setting is the effective configuration of one checker.
type Setting struct {
	Enabled  bool
	Severity diag.Severity
}

// Config selects which checkers run and at which severity.
type Config struct {
	settings map[string]Setting
}

// DefaultConfig enables every built-in checker at its natural severity.
func DefaultConfig() *Config {
	cfg := &Config{settings: make(map[string]Setting)}
	for _, c := range Registry() {
		cfg.settings[c.Name()] = Setting{Enabled: true, Severity: c.DefaultSeverity()}
	}
	return cfg
}

// Set overrides the setting of one checker.
func (c *Config) Set(name string, s Setting) *Config {
	c.settings[name] = s
	return c
}

func (c *Config) setting(name string) Setting {
	return c.settings[name]
}

// yamlConfigFile is the YAML shape of a checker configuration document:
//
//	checks:
//	  nested-logical-if:
//	    enabled: true
//	    severity: error
//	  empty-do-body:
//	    severity: warning
type yamlConfigFile struct {
	Checks map[string]yamlCheck `yaml:"checks"`
}

type yamlCheck struct {
	Enabled  *bool  `yaml:"enabled"`
	Severity string `yaml:"severity"`
}

// Load parses a YAML configuration document and applies it on top of the
// defaults. Unknown checker names are rejected.
func Load(data []byte) (*Config, error) {
	var file yamlConfigFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg := DefaultConfig()
	for name, entry := range file.Checks {
		s, ok := cfg.settings[name]
		if !ok {
			return nil, fmt.Errorf("unknown check %q", name)
		}
		if entry.Enabled != nil {
			s.Enabled = *entry.Enabled
		}
		if entry.Severity != "" {
			sev, err := diag.ParseSeverity(entry.Severity)
			if err != nil {
				return nil, fmt.Errorf("check %q: %w", name, err)
			}
			s.Severity = sev
		}
		cfg.settings[name] = s
	}
	return cfg, nil
}

// LoadFile loads a checker configuration from a YAML file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return Load(data)
}
