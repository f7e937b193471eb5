package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration
type Config struct {
	Version    int              `toml:"version"`
	Generation GenerationConfig `toml:"generation"`
	Image      ImageConfig      `toml:"image"`
	Publish    PublishConfig    `toml:"publish"`
	Recording  RecordingConfig  `toml:"recording"`
	Schedule   ScheduleConfig   `toml:"schedule"`
	Webhook    WebhookConfig    `toml:"webhook"`
	Wordlists  WordlistsConfig  `toml:"wordlists"`
}

// Provider names accepted in GenerationConfig.Provider
const (
	ProviderOllama    = "ollama"
	ProviderAnthropic = "anthropic"
)

type GenerationConfig struct {
	Provider    string  `toml:"provider"`
	OllamaURL   string  `toml:"ollama_url"`
	Model       string  `toml:"model"`
	APIKey      string  `toml:"api_key"`
	Temperature float64 `toml:"temperature"`
}

// Image backends
const (
	ImageBackendTemplate = "template"
	ImageBackendSD       = "sd"
)

type ImageConfig struct {
	Backend   string `toml:"backend"`
	SDAPIURL  string `toml:"sd_api_url"`
	OutputDir string `toml:"output_dir"`
	FontPath  string `toml:"font_path"`
}

// Publish modes
const (
	PublishModeLocal   = "local"
	PublishModeAPI     = "api"
	PublishModeBrowser = "browser"
)

type PublishConfig struct {
	Mode        string `toml:"mode"`
	OutputDir   string `toml:"output_dir"`
	Headless    bool   `toml:"headless"`
	APIBaseURL  string `toml:"api_base_url"`
	AccessToken string `toml:"access_token"`
	AppID       string `toml:"app_id"`
	AppSecret   string `toml:"app_secret"`
}

type RecordingConfig struct {
	Enabled bool   `toml:"enabled"`
	DBPath  string `toml:"db_path"`
}

type ScheduleConfig struct {
	IntervalHours int    `toml:"interval_hours"`
	Timezone      string `toml:"timezone"`
}

type WebhookConfig struct {
	Port int `toml:"port"`
}

type WordlistsConfig struct {
	// Files maps a difficulty level tag (e.g. "CET-4") to a word file
	// with one word per line.
	Files map[string]string `toml:"files"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Version: 1,
		Generation: GenerationConfig{
			Provider:    ProviderOllama,
			OllamaURL:   "http://localhost:11434",
			Model:       "qwen2.5:3b",
			Temperature: 0.7,
		},
		Image: ImageConfig{
			Backend:   ImageBackendTemplate,
			SDAPIURL:  "http://127.0.0.1:7860",
			OutputDir: "generated_images",
		},
		Publish: PublishConfig{
			Mode:       PublishModeLocal,
			OutputDir:  "output",
			Headless:   true,
			APIBaseURL: "https://open.xiaohongshu.com",
		},
		Recording: RecordingConfig{
			Enabled: true,
		},
		Schedule: ScheduleConfig{
			IntervalHours: 24,
			Timezone:      "Asia/Shanghai",
		},
		Webhook: WebhookConfig{
			Port: 8080,
		},
		Wordlists: WordlistsConfig{
			Files: map[string]string{
				"CET-4": "data/cet4.txt",
				"CET-6": "data/cet6.txt",
				"GRE":   "data/gre.txt",
			},
		},
	}
}

// ConfigDir returns the platform-appropriate config directory
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "lexipost"), nil
}

// ConfigPath returns the full path to the config file
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DataDir returns the directory holding mutable application state (the
// SQLite database lives here unless recording.db_path overrides it).
func DataDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

// DBPath resolves the SQLite database path, preferring the configured
// override when present.
func (c *Config) DBPath() (string, error) {
	if c.Recording.DBPath != "" {
		return c.Recording.DBPath, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "posts.db"), nil
}

// Load reads config from disk
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}
