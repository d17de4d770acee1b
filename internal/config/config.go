package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LogLevelEnv overrides the configured log level when set.
const LogLevelEnv = "NEWSIR_LOG_LEVEL"

// EngineConfig configures document loading and indexing.
type EngineConfig struct {
	TextField     string `yaml:"text_field"`
	MaxVocabulary int    `yaml:"max_vocabulary"`
}

// SearchConfig configures query ranking.
type SearchConfig struct {
	TopK int `yaml:"top_k"`
}

// SummarizerConfig configures the extractive summarizer.
type SummarizerConfig struct {
	MaxSentences      int `yaml:"max_sentences"`
	MinSentenceLength int `yaml:"min_sentence_length"`
}

// LogConfig selects log level and encoding ("console" or "json").
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Engine     EngineConfig     `yaml:"engine"`
	Search     SearchConfig     `yaml:"search"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Log        LogConfig        `yaml:"log"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	applyConfigDefaults(&cfg)
	applyEnv(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./newsir.yaml first, then ~/.config/newsir/config.yaml.
// If neither exists, it writes defaults to ~/.config/newsir/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "newsir.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := Default()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	applyEnv(cfg)
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects values that cannot be defaulted.
func (c *AppConfig) Validate() error {
	if c.Engine.MaxVocabulary < 0 {
		return fmt.Errorf("engine.max_vocabulary must be >= 0, got %d", c.Engine.MaxVocabulary)
	}
	if c.Search.TopK < 0 {
		return fmt.Errorf("search.top_k must be >= 0, got %d", c.Search.TopK)
	}
	if c.Summarizer.MaxSentences < 0 {
		return fmt.Errorf("summarizer.max_sentences must be >= 0, got %d", c.Summarizer.MaxSentences)
	}
	if c.Summarizer.MinSentenceLength < 0 {
		return fmt.Errorf("summarizer.min_sentence_length must be >= 0, got %d", c.Summarizer.MinSentenceLength)
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("log.format must be 'console' or 'json', got %q", c.Log.Format)
	}
	return nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "newsir", "config.yaml"), nil
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	cfg := &AppConfig{
		Engine:     EngineConfig{TextField: "headline", MaxVocabulary: 10000},
		Search:     SearchConfig{TopK: 5},
		Summarizer: SummarizerConfig{MaxSentences: 3, MinSentenceLength: 30},
		Log:        LogConfig{Level: "info", Format: "console"},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	def := Default()
	if cfg.Engine.TextField == "" {
		cfg.Engine.TextField = def.Engine.TextField
	}
	if cfg.Engine.MaxVocabulary == 0 {
		cfg.Engine.MaxVocabulary = def.Engine.MaxVocabulary
	}
	if cfg.Search.TopK == 0 {
		cfg.Search.TopK = def.Search.TopK
	}
	if cfg.Summarizer.MaxSentences == 0 {
		cfg.Summarizer.MaxSentences = def.Summarizer.MaxSentences
	}
	if cfg.Summarizer.MinSentenceLength == 0 {
		cfg.Summarizer.MinSentenceLength = def.Summarizer.MinSentenceLength
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
}

func applyEnv(cfg *AppConfig) {
	if lvl := os.Getenv(LogLevelEnv); lvl != "" {
		cfg.Log.Level = lvl
	}
}
