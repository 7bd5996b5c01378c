package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the documentation generator.
type Config struct {
	Generate   GenerateConfig   `yaml:"generate"`
	Matching   MatchingConfig   `yaml:"matching"`
	Decompiler DecompilerConfig `yaml:"decompiler"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GenerateConfig holds inputs, output and page generation settings.
type GenerateConfig struct {
	Module            string   `yaml:"module"`     // metadata dump of the compiled module
	Assembly          string   `yaml:"assembly"`   // compiled module, handed to the exec decompiler
	XML               string   `yaml:"xml"`        // documentation export; derived when empty
	References        []string `yaml:"references"` // dumps used for ancestor resolution only
	Output            string   `yaml:"output"`
	Includes          []string `yaml:"includes"` // doublestar over "Ns/Sub/TypeName"
	Excludes          []string `yaml:"excludes"`
	Workers           int      `yaml:"workers"`
	OnDecompilerError string   `yaml:"on_decompiler_error"` // "abort" or "skip"
	Incremental       bool     `yaml:"incremental"`
	Clean             bool     `yaml:"clean"`
}

// MatchingConfig selects identifier matching behaviour.
type MatchingConfig struct {
	ExactIdentifiers bool `yaml:"exact_identifiers"`
	LegacyParamSplit bool `yaml:"legacy_param_split"`
}

// DecompilerConfig selects where declaration text comes from.
type DecompilerConfig struct {
	Mode    string        `yaml:"mode"`    // "static" or "exec"
	Command string        `yaml:"command"` // e.g. "ilspycmd {assembly} -t {member}{signature}"
	Timeout time.Duration `yaml:"timeout"`
	// Cache keeps exec output in the manifest database between runs.
	Cache bool `yaml:"cache"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

const (
	OnErrorAbort = "abort"
	OnErrorSkip  = "skip"

	DecompilerStatic = "static"
	DecompilerExec   = "exec"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Generate: GenerateConfig{
			Output:            "docs",
			Includes:          []string{"**"},
			Excludes:          []string{},
			Workers:           0,
			OnDecompilerError: OnErrorAbort,
			Incremental:       true,
			Clean:             true,
		},
		Matching: MatchingConfig{
			ExactIdentifiers: false,
			LegacyParamSplit: false,
		},
		Decompiler: DecompilerConfig{
			Mode:    DecompilerStatic,
			Timeout: 30 * time.Second,
			Cache:   true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for mddocs.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".mddocs", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// FileName is the config file looked up in the working directory.
const FileName = "mddocs.yaml"

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ManifestPath returns the path of the page manifest for an output directory.
func ManifestPath(output string) string {
	return filepath.Join(output, ".mddocs", "manifest.db")
}

// EnsureManifestDir ensures the manifest directory exists.
func EnsureManifestDir(output string) error {
	return os.MkdirAll(filepath.Join(output, ".mddocs"), 0755)
}

// XMLPath returns the documentation export to read: the configured path, or
// the file named after the assembly (or, failing that, the module dump) with
// an .xml extension in the same directory.
func (g GenerateConfig) XMLPath() string {
	if g.XML != "" {
		return g.XML
	}
	base := g.Assembly
	if base == "" {
		base = g.Module
	}
	if base == "" {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".xml"
}
