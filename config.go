package scripthub

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort       = `3000`
	DefaultOptionsDir = `options`
	DefaultPublicDir  = `public`
)

// Config defines configuration options.
type Config struct {
	Addr                string              `yaml:"addr" toml:"addr"`
	Port                string              `yaml:"port" toml:"port"`
	RootDir             string              `yaml:"rootDir" toml:"root_dir"`
	OptionsDir          string              `yaml:"optionsDir" toml:"options_dir"`
	PublicDir           string              `yaml:"publicDir" toml:"public_dir"`
	WorkDir             string              `yaml:"workDir" toml:"work_dir"`
	LogLevel            string              `yaml:"logLevel" toml:"log_level"`
	ValidateDescriptors bool                `yaml:"validateDescriptors" toml:"validate_descriptors"`
	Interpreters        map[string][]string `yaml:"interpreters" toml:"interpreters"`
	CertFile            string              `yaml:"certFile" toml:"cert_file"`
	KeyFile             string              `yaml:"keyFile" toml:"key_file"`
}

// GetConfig creates and returns a Config from the given filepath.
// Files ending in .toml are decoded as TOML, everything else as YAML.
func GetConfig(path string) (*Config, error) {
	var C Config
	b, err := os.ReadFile(path)
	if err != nil {
		return &C, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case `.toml`:
		err = toml.Unmarshal(b, &C)
	default:
		err = yaml.Unmarshal(b, &C)
	}
	if err != nil {
		return &C, fmt.Errorf("error parsing config %q: %w", path, err)
	}
	return &C, nil
}

// ApplyDefaults fills in unset values. Relative options, public and work
// directories are resolved against RootDir, which defaults to the given cwd.
// An empty WorkDir stays empty.
func (c *Config) ApplyDefaults(cwd string) {
	if c.Port == "" {
		c.Port = DefaultPort
	}
	if c.RootDir == "" {
		c.RootDir = cwd
	}
	if c.OptionsDir == "" {
		c.OptionsDir = DefaultOptionsDir
	}
	if c.PublicDir == "" {
		c.PublicDir = DefaultPublicDir
	}
	if !filepath.IsAbs(c.OptionsDir) {
		c.OptionsDir = filepath.Join(c.RootDir, c.OptionsDir)
	}
	if !filepath.IsAbs(c.PublicDir) {
		c.PublicDir = filepath.Join(c.RootDir, c.PublicDir)
	}
	if c.WorkDir != "" && !filepath.IsAbs(c.WorkDir) {
		c.WorkDir = filepath.Join(c.RootDir, c.WorkDir)
	}
}

// ListenAddr returns the address the server binds to.
func (c *Config) ListenAddr() string {
	return c.Addr + `:` + c.Port
}

// TLSEnabled reports whether both a certificate and key were configured.
func (c *Config) TLSEnabled() bool {
	return c.CertFile != "" && c.KeyFile != ""
}
