// Copyright 2025 cons0leweb
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// maxRecentFolders bounds the recent-folder history.
const maxRecentFolders = 5

// 📚 Config holds the utility's persisted settings
type Config struct {
	// DefaultExtensions pre-fills the extension filters.
	DefaultExtensions []string `json:"default_extensions" yaml:"default_extensions" hcl:"default_extensions,optional"`

	// MaxFileSizeMB is the default size ceiling for batch operations.
	MaxFileSizeMB int64 `json:"max_file_size" yaml:"max_file_size" hcl:"max_file_size,optional"`

	// RecentFolders lists the most recently used folders, newest first.
	RecentFolders []string `json:"recent_folders" yaml:"recent_folders" hcl:"recent_folders,optional"`

	// Workers is the batch worker count; 1 means strictly sequential.
	Workers int `json:"workers,omitempty" yaml:"workers,omitempty" hcl:"workers,optional"`

	// LogFile is the operation log location.
	LogFile string `json:"log_file,omitempty" yaml:"log_file,omitempty" hcl:"log_file,optional"`

	// BackupSuffix overrides the backup marker suffix.
	BackupSuffix string `json:"backup_suffix,omitempty" yaml:"backup_suffix,omitempty" hcl:"backup_suffix,optional"`
}

// 🎯 Default returns the configuration used when no file exists yet.
func Default() *Config {
	return &Config{
		DefaultExtensions: []string{".txt", ".html", ".css", ".js", ".py", ".json"},
		MaxFileSizeMB:     10,
		Workers:           8,
		LogFile:           "fsutils.log",
	}
}

// MaxFileSizeBytes converts the configured ceiling to bytes. Zero means no
// limit.
func (cfg *Config) MaxFileSizeBytes() int64 {
	return cfg.MaxFileSizeMB * 1024 * 1024
}

// 🔍 Validate normalizes the configuration and rejects nonsense values.
func (cfg *Config) Validate() error {
	if cfg.MaxFileSizeMB < 0 {
		return errors.Errorf("max_file_size must not be negative: %d", cfg.MaxFileSizeMB)
	}
	if cfg.Workers < 0 {
		return errors.Errorf("workers must not be negative: %d", cfg.Workers)
	}
	if cfg.Workers == 0 {
		cfg.Workers = Default().Workers
	}
	if cfg.LogFile == "" {
		cfg.LogFile = Default().LogFile
	}
	if len(cfg.RecentFolders) > maxRecentFolders {
		cfg.RecentFolders = cfg.RecentFolders[:maxRecentFolders]
	}
	return nil
}

// 📌 AddRecentFolder records a folder as most recently used, de-duplicating
// and keeping at most five entries.
func (cfg *Config) AddRecentFolder(folder string) {
	recent := []string{folder}
	for _, f := range cfg.RecentFolders {
		if f != folder {
			recent = append(recent, f)
		}
	}
	if len(recent) > maxRecentFolders {
		recent = recent[:maxRecentFolders]
	}
	cfg.RecentFolders = recent
}

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var parsers []Parser

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🎯 Load reads the configuration from a file. A missing file yields the
// defaults rather than an error: the utility starts fresh.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Debug().Str("path", path).Msg("no config file, using defaults")
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 💾 Save writes the configuration as indented JSON, matching the format
// the original desktop build shipped with.
func Save(ctx context.Context, path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return errors.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.Errorf("writing config file: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("configuration saved")
	return nil
}

// 🔧 JSONParser implements the Parser interface for JSON files
type JSONParser struct{}

func init() {
	Register(&JSONParser{})
}

func (p *JSONParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".json")
}

func (p *JSONParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	return &cfg, nil
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

func init() {
	Register(&HCLParser{})
}

func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var cfg Config
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &cfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return &cfg, nil
}
