package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema. Nested sections
// map naturally to flags and env vars.
type FileConfig struct {
	URL    string `yaml:"url" json:"url"`
	Input  string `yaml:"input" json:"input"`
	Output string `yaml:"output" json:"output"`
	PDF    string `yaml:"pdf" json:"pdf"`

	Mode   string `yaml:"mode" json:"mode"`
	Method string `yaml:"method" json:"method"`

	LLM struct {
		BaseURL string        `yaml:"base" json:"base"`
		Model   string        `yaml:"model" json:"model"`
		APIKey  string        `yaml:"key" json:"key"`
		Timeout time.Duration `yaml:"timeout" json:"timeout"`
	} `yaml:"llm" json:"llm"`

	Fetch struct {
		UserAgent string `yaml:"ua" json:"ua"`
	} `yaml:"fetch" json:"fetch"`

	Cache struct {
		Dir    string `yaml:"dir" json:"dir"`
		Bypass bool   `yaml:"bypass" json:"bypass"`
	} `yaml:"cache" json:"cache"`

	History struct {
		Path    string `yaml:"path" json:"path"`
		Disable bool   `yaml:"disable" json:"disable"`
	} `yaml:"history" json:"history"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields that
// are currently unset in cfg. Flags are parsed first; file config supplies
// defaults without overriding explicit flags.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.URL == "" && fc.URL != "" {
		cfg.URL = fc.URL
	}
	if cfg.InputPath == "" && fc.Input != "" {
		cfg.InputPath = fc.Input
	}
	if cfg.OutputPath == "" && fc.Output != "" {
		cfg.OutputPath = fc.Output
	}
	if cfg.PDFPath == "" && fc.PDF != "" {
		cfg.PDFPath = fc.PDF
	}
	if cfg.Mode == "" && fc.Mode != "" {
		cfg.Mode = fc.Mode
	}
	if cfg.Method == "" && fc.Method != "" {
		cfg.Method = fc.Method
	}
	if cfg.LLMBaseURL == "" && fc.LLM.BaseURL != "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" && fc.LLM.Model != "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" && fc.LLM.APIKey != "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if cfg.LLMTimeout == 0 && fc.LLM.Timeout > 0 {
		cfg.LLMTimeout = fc.LLM.Timeout
	}
	if cfg.UserAgent == "" && fc.Fetch.UserAgent != "" {
		cfg.UserAgent = fc.Fetch.UserAgent
	}
	if cfg.CacheDir == "" && fc.Cache.Dir != "" {
		cfg.CacheDir = fc.Cache.Dir
	}
	if !cfg.BypassCache && fc.Cache.Bypass {
		cfg.BypassCache = true
	}
	if cfg.HistoryPath == "" && fc.History.Path != "" {
		cfg.HistoryPath = fc.History.Path
	}
	if !cfg.NoHistory && fc.History.Disable {
		cfg.NoHistory = true
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}
