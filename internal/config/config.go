package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spf13/viper"

	"github.com/Paintersrp/zrt/internal/constants"
)

type S3Config struct {
	Region    string `yaml:"region"     json:"region"`
	Profile   string `yaml:"profile"    json:"profile"`
	Endpoint  string `yaml:"endpoint"   json:"endpoint"`
	AccessKey string `yaml:"access_key" json:"access_key"`
	SecretKey string `yaml:"secret_key" json:"-"`
	PathStyle bool   `yaml:"path_style" json:"path_style"`
}

type Config struct {
	Directory  string   `yaml:"directory"  json:"directory"`
	Exclude    []string `yaml:"exclude"    json:"exclude"`
	Extensions []string `yaml:"extensions" json:"extensions"`
	TodoTag    string   `yaml:"todo_tag"   json:"todo_tag"`
	DoneTag    string   `yaml:"done_tag"   json:"done_tag"`
	// Top is the default -n for word count listings. Unset means
	// DefaultTop; 0 lists nothing.
	Top        *int     `yaml:"top"        json:"top"`
	CountMode  string   `yaml:"count_mode" json:"count_mode"`
	Format     string   `yaml:"format"     json:"format"`
	S3         S3Config `yaml:"s3"         json:"s3"`

	path string `yaml:"-"`
}

var ValidCountModes = map[string]bool{
	"whitespace": true,
	"prose":      true,
}

var ValidFormats = map[string]bool{
	"plain": true,
	"table": true,
	"json":  true,
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.ensureDefaults()
	return cfg
}

func (cfg *Config) ensureDefaults() {
	if cfg.Exclude == nil {
		cfg.Exclude = []string{constants.DefaultExclude}
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = []string{constants.DefaultExtension}
	}
	cfg.TodoTag = strings.TrimSpace(cfg.TodoTag)
	if cfg.TodoTag == "" {
		cfg.TodoTag = constants.DefaultTodoTag
	}
	cfg.DoneTag = strings.TrimSpace(cfg.DoneTag)
	if cfg.Top == nil {
		top := constants.DefaultTop
		cfg.Top = &top
	}
	if cfg.CountMode == "" {
		cfg.CountMode = "whitespace"
	}
	if cfg.Format == "" {
		cfg.Format = "plain"
	}
}

// Validate rejects values the scanner and printers cannot honour.
func (cfg *Config) Validate() error {
	if !ValidCountModes[cfg.CountMode] {
		return fmt.Errorf(
			"invalid count_mode: %q. Please choose from 'whitespace' or 'prose'",
			cfg.CountMode,
		)
	}
	if !ValidFormats[cfg.Format] {
		return fmt.Errorf(
			"invalid format: %q. Please choose from 'plain', 'table', or 'json'",
			cfg.Format,
		)
	}
	if cfg.Top != nil && *cfg.Top < 0 {
		return fmt.Errorf("invalid top: %d must not be negative", *cfg.Top)
	}
	return nil
}

// Load reads the config file under home. A missing or empty file yields the
// defaults.
func Load(home string) (*Config, error) {
	return LoadFile(GetConfigPath(home))
}

func LoadFile(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	case len(strings.TrimSpace(string(data))) > 0:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.path = path
	cfg.ensureDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.syncViper()
	return cfg, nil
}

func (cfg *Config) syncViper() {
	viper.SetDefault("directory", cfg.Directory)
	viper.SetDefault("exclude", cfg.Exclude)
	viper.SetDefault("extensions", cfg.Extensions)
	viper.SetDefault("todo_tag", cfg.TodoTag)
	viper.SetDefault("done_tag", cfg.DoneTag)
	viper.SetDefault("top", *cfg.Top)
	viper.SetDefault("count_mode", cfg.CountMode)
	viper.SetDefault("format", cfg.Format)
	viper.SetDefault("s3.region", cfg.S3.Region)
	viper.SetDefault("s3.profile", cfg.S3.Profile)
	viper.SetDefault("s3.endpoint", cfg.S3.Endpoint)
	viper.SetDefault("s3.access_key", cfg.S3.AccessKey)
	viper.SetDefault("s3.secret_key", cfg.S3.SecretKey)
	viper.SetDefault("s3.path_style", cfg.S3.PathStyle)
}

// Path returns the file the config was loaded from.
func (cfg *Config) Path() string {
	if cfg.path != "" {
		return cfg.path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return GetConfigPath(homeDir)
}

// SetPath changes where Save writes.
func (cfg *Config) SetPath(path string) {
	cfg.path = path
}

func (cfg *Config) Save() error {
	cfg.ensureDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	cfg.syncViper()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	configPath := cfg.Path()
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o600)
}
