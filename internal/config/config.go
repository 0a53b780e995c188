// Package config loads sweepy's project configuration: the alias table,
// extra source roots, supported extensions, and ignored directory names
// that shape discovery and specifier resolution.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultExtensions is the set of file extensions discovery and the
// resolver consider source files, in the order candidates are tried
// when an extensionless specifier is resolved.
var DefaultExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".vue"}

// DefaultIgnoreDirs is the set of directory names discovery skips
// entirely, regardless of depth.
var DefaultIgnoreDirs = []string{"node_modules", ".git", "dist", "build", ".turbo", "coverage"}

// Config holds the project-level knobs that shape discovery and
// specifier resolution. A nil *Config is equivalent to Default(): no
// aliases, no extra roots, the default extension list and ignore set.
type Config struct {
	// Aliases maps a specifier prefix (e.g. "@/") to a directory path,
	// relative to the project root unless already absolute.
	Aliases map[string]string `json:"aliases" mapstructure:"aliases"`

	// ExtraSourceRoots are additional directories folded into discovery
	// alongside the project root, for monorepo layouts where sources
	// live outside the root passed to Analyze.
	ExtraSourceRoots []string `json:"extraSourceRoots" mapstructure:"extraSourceRoots"`

	// Extensions overrides the extensions considered during discovery
	// and specifier resolution. Empty means DefaultExtensions.
	Extensions []string `json:"extensions" mapstructure:"extensions"`

	// IgnoreDirs overrides the directory names skipped during
	// discovery. Empty means DefaultIgnoreDirs.
	IgnoreDirs []string `json:"ignoreDirs" mapstructure:"ignoreDirs"`
}

// Default returns the zero-alias, default-extension configuration used
// when callers pass a nil *Config to Analyze.
func Default() *Config {
	return &Config{
		Aliases:          map[string]string{},
		ExtraSourceRoots: []string{},
		Extensions:       append([]string(nil), DefaultExtensions...),
		IgnoreDirs:       append([]string(nil), DefaultIgnoreDirs...),
	}
}

// ResolvedExtensions returns c.Extensions, falling back to
// DefaultExtensions when c is nil or its list is empty.
func (c *Config) ResolvedExtensions() []string {
	if c == nil || len(c.Extensions) == 0 {
		return DefaultExtensions
	}
	return c.Extensions
}

// ResolvedIgnoreDirs returns c.IgnoreDirs, falling back to
// DefaultIgnoreDirs when c is nil or its list is empty.
func (c *Config) ResolvedIgnoreDirs() []string {
	if c == nil || len(c.IgnoreDirs) == 0 {
		return DefaultIgnoreDirs
	}
	return c.IgnoreDirs
}

// ResolvedAliases returns c.Aliases, or an empty map when c is nil.
func (c *Config) ResolvedAliases() map[string]string {
	if c == nil {
		return map[string]string{}
	}
	return c.Aliases
}

// Load reads a sweepy config file at path using viper, supporting
// .json, .yaml, and .toml. A missing file is not an error: Load returns
// Default() so callers can treat "no config" and "default config" the
// same way.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return Default(), nil
		}
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteDefault writes a commented starter config in YAML form to path,
// creating parent directories as needed. This writes directly with
// yaml.v3 rather than round-tripping through viper, so the comments
// survive.
func WriteDefault(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	doc := defaultConfigDocument()
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}

	header := "# sweepy configuration\n" +
		"# aliases maps an import prefix to a directory, e.g. \"@/\": \"src\"\n" +
		"# extensions and ignoreDirs override the built-in defaults when set\n"
	return os.WriteFile(path, append([]byte(header), data...), 0o644)
}

func defaultConfigDocument() map[string]interface{} {
	return map[string]interface{}{
		"aliases":          map[string]string{"@/": "src"},
		"extraSourceRoots": []string{},
		"extensions":       DefaultExtensions,
		"ignoreDirs":       DefaultIgnoreDirs,
	}
}
