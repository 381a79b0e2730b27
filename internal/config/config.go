package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// Config is the on-disk configuration of the textgen CLI. Files ending in
// .yaml or .yml are read and written as YAML, everything else as JSON.
type Config struct {
	LogLevel      string `json:"log_level"`
	MaxConcurrent int    `json:"max_concurrent"`
	LLM           struct {
		BaseURL        string `json:"base_url"`
		APIKey         string `json:"api_key"`
		Model          string `json:"model"`
		TimeoutSeconds int    `json:"timeout_seconds"`
	} `json:"llm"`
}

// Timeout returns the configured request timeout, zero if unset.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.LLM.TimeoutSeconds) * time.Second
}

// DefaultPath returns ~/.textgen/config.json.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".textgen", "config.json")
}

func defaults() *Config {
	cfg := &Config{
		LogLevel:      "info",
		MaxConcurrent: 4,
	}
	cfg.LLM.BaseURL = "https://api.openai.com/v1"
	cfg.LLM.Model = "gpt-4o"
	cfg.LLM.TimeoutSeconds = 60
	return cfg
}

// Load reads the config at path on top of the defaults. A missing file is
// created with the defaults. Environment variables take precedence over the
// file. The API key is deliberately not read from the environment here; the
// client falls back to OPENAI_API_KEY itself.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := os.Stat(path); err == nil {
		data, err := readJSON(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if os.IsNotExist(err) {
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
	} else {
		return nil, fmt.Errorf("stat config %s: %w", path, err)
	}

	// Override from env (highest precedence)
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		cfg.LLM.BaseURL = baseURL
	}
	if level := os.Getenv("TEXTGEN_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	return cfg, nil
}

// Save writes cfg to path atomically, creating the directory if needed.
func Save(path string, cfg *Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return writeJSON(path, data)
}

// ToMap converts cfg to its generic JSON form.
func ToMap(cfg *Config) (map[string]any, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return m, nil
}

// ListValues returns cfg as flat dot-separated keys, with secrets masked
// when mask is set.
func ListValues(cfg *Config, mask bool) (map[string]any, error) {
	m, err := ToMap(cfg)
	if err != nil {
		return nil, err
	}
	flat := Flatten(m)
	if mask {
		flat = MaskSecrets(flat)
	}
	return flat, nil
}

// GetValue returns the value stored under a dot-separated key in the file at
// path. The file is created with defaults if missing.
func GetValue(path, key string) (any, error) {
	if _, err := Load(path); err != nil {
		return nil, err
	}
	m, err := readMap(path)
	if err != nil {
		return nil, err
	}
	v, ok := Flatten(m)[key]
	if !ok {
		return nil, fmt.Errorf("unknown config key: %s", key)
	}
	return v, nil
}

// SetValue stores value under a dot-separated key in the existing file at
// path. Values that parse as JSON (numbers, booleans) are stored typed, all
// others as strings. Secret keys are always strings. The result must still
// decode into Config.
func SetValue(path, key, value string) error {
	m, err := readMap(path)
	if err != nil {
		return err
	}

	var typed any = value
	if !IsSecretKey(key) {
		if err := json.Unmarshal([]byte(value), &typed); err != nil {
			typed = value
		}
	}

	flat := Flatten(m)
	flat[key] = typed

	data, err := json.Marshal(Unflatten(flat))
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := json.Unmarshal(data, &Config{}); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return writeJSON(path, data)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// readJSON returns the file contents as JSON, converting from YAML if needed.
func readJSON(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if !isYAML(path) {
		return data, nil
	}
	data, err = yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return data, nil
}

func readMap(path string) (map[string]any, error) {
	data, err := readJSON(path)
	if err != nil {
		return nil, err
	}
	m := map[string]any{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return m, nil
}

// writeJSON stores JSON data at path in the format its extension selects.
func writeJSON(path string, data []byte) error {
	if isYAML(path) {
		out, err := yaml.JSONToYAML(data)
		if err != nil {
			return fmt.Errorf("encode yaml config: %w", err)
		}
		data = out
	} else {
		var m any
		if err := json.Unmarshal(data, &m); err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		out, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		data = append(out, '\n')
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}
