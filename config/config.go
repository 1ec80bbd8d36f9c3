package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v2"
)

const (
	DefaultFileName  = "config.yaml"
	xdgRelativePath  = "potability/config.yaml"
	defaultModelPath = "model_and_scaler.json"
	defaultCacheSize = 256
)

type Config struct {
	Http struct {
		Port    int           `yaml:"port"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"http"`
	Log struct {
		Level      string `yaml:"level"`
		Format     string `yaml:"format"`
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
		Compress   bool   `yaml:"compress"`
	} `yaml:"log"`
	Model struct {
		Path      string `yaml:"path"`
		CacheSize int    `yaml:"cache_size"`
		Watch     bool   `yaml:"watch"`
	} `yaml:"model"`
	UI struct {
		Locale string `yaml:"locale"`
		Title  string `yaml:"title"`
	} `yaml:"ui"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{}
	cfg.Model.Watch = true
	cfg.Model.CacheSize = defaultCacheSize
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Http.Port == 0 {
		c.Http.Port = 8501
	}
	if c.Http.Timeout == 0 {
		c.Http.Timeout = 30 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 50
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 3
	}
	if c.Log.MaxAgeDays == 0 {
		c.Log.MaxAgeDays = 28
	}
	if c.Model.Path == "" {
		c.Model.Path = defaultModelPath
	}
	if c.UI.Locale == "" {
		c.UI.Locale = "en"
	}
	if c.UI.Title == "" {
		c.UI.Title = "Water Potability Prediction"
	}
}

func (c *Config) Validate() error {
	if c.Model.Path == "" {
		return errors.New("model.path is required")
	}
	if c.Http.Port < 1 || c.Http.Port > 65535 {
		return fmt.Errorf("http.port %d out of range", c.Http.Port)
	}
	if c.Http.Timeout < 0 {
		return errors.New("http.timeout must not be negative")
	}
	if c.Model.CacheSize < 0 {
		return errors.New("model.cache_size must not be negative")
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format %q must be console or json", c.Log.Format)
	}
	return nil
}

// Load reads the config at path. With an empty path it tries ./config.yaml
// and then the XDG config directory, falling back to Default. The returned
// string is the file actually read, empty when defaults were used.
func Load(path string) (*Config, string, error) {
	if path == "" {
		path = locate()
		if path == "" {
			cfg := Default()
			return cfg, "", cfg.Validate()
		}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	// fields absent from the file keep these values
	cfg := &Config{}
	cfg.Model.Watch = true
	cfg.Model.CacheSize = defaultCacheSize
	if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return cfg, path, nil
}

func locate() string {
	if _, err := os.Stat(DefaultFileName); err == nil {
		return DefaultFileName
	}
	if path, err := xdg.SearchConfigFile(xdgRelativePath); err == nil {
		return path
	}
	return ""
}
