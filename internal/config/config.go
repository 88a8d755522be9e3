package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EmbeddingPathEnv overrides embedding.path when set.
const EmbeddingPathEnv = "MEIGEN_EMBEDDING_PATH"

// EmbeddingConfig selects and configures the word embedding.
type EmbeddingConfig struct {
	Type   string `yaml:"type"`
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
	// Dir is searched for word_vectors.bin / word_vectors.txt when Path is empty.
	Dir string `yaml:"dir"`
}

// SegmenterConfig selects the morphological analyzer.
type SegmenterConfig struct {
	Type       string `yaml:"type"`
	Dictionary string `yaml:"dictionary"`
}

// CatalogConfig points at the emotion catalog. An empty path selects the built-in one.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// ReplyConfig controls the generated reply.
type ReplyConfig struct {
	TopK int `yaml:"top_k"`
	// Seed fixes the saying choice; zero means random.
	Seed int64 `yaml:"seed"`
}

// LoggingConfig configures the leveled logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Output string `yaml:"output"`
	Prefix string `yaml:"prefix"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Embedding EmbeddingConfig `yaml:"embedding"`
	Segmenter SegmenterConfig `yaml:"segmenter"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Reply     ReplyConfig     `yaml:"reply"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/meigen/config.yaml.
// If neither exists, it writes defaults to ~/.config/meigen/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
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
	cfg := defaultConfig()
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

// Validate rejects unknown component types and out-of-range values.
func (c *AppConfig) Validate() error {
	switch c.Embedding.Type {
	case "word2vec":
	default:
		return fmt.Errorf("unknown embedding: %s", c.Embedding.Type)
	}
	switch c.Embedding.Format {
	case "auto", "text", "binary":
	default:
		return fmt.Errorf("unknown embedding format: %s", c.Embedding.Format)
	}
	switch c.Segmenter.Type {
	case "kagome":
	default:
		return fmt.Errorf("unknown segmenter: %s", c.Segmenter.Type)
	}
	if c.Segmenter.Dictionary != "ipa" {
		return fmt.Errorf("unsupported dictionary: %s", c.Segmenter.Dictionary)
	}
	if c.Reply.TopK <= 0 {
		return fmt.Errorf("reply.top_k must be positive, got %d", c.Reply.TopK)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %s", c.Logging.Level)
	}
	return nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "meigen", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Embedding: EmbeddingConfig{Type: "word2vec", Format: "auto", Dir: "."},
		Segmenter: SegmenterConfig{Type: "kagome", Dictionary: "ipa"},
		Reply:     ReplyConfig{TopK: 3},
		Logging:   LoggingConfig{Level: "info", Output: "stderr", Prefix: "meigen "},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.Embedding.Type == "" {
		cfg.Embedding.Type = def.Embedding.Type
	}
	if cfg.Embedding.Format == "" {
		cfg.Embedding.Format = def.Embedding.Format
	}
	if cfg.Embedding.Dir == "" {
		cfg.Embedding.Dir = def.Embedding.Dir
	}
	if cfg.Segmenter.Type == "" {
		cfg.Segmenter.Type = def.Segmenter.Type
	}
	if cfg.Segmenter.Dictionary == "" {
		cfg.Segmenter.Dictionary = def.Segmenter.Dictionary
	}
	if cfg.Reply.TopK == 0 {
		cfg.Reply.TopK = def.Reply.TopK
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = def.Logging.Output
	}
}

func applyEnv(cfg *AppConfig) {
	if p := os.Getenv(EmbeddingPathEnv); p != "" {
		cfg.Embedding.Path = p
	}
}
