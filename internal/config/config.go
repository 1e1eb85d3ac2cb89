// Package config loads and validates the on-disk YAML configuration.
// Values resolve with CLI > repo-local > global precedence; the CLI layer
// performs the merge, this package only parses and validates.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/scanlens/scanlens/internal/rules"
	"github.com/scanlens/scanlens/internal/types"
)

// ConfigError is the fatal error for invalid configuration; a scan never
// starts with a config that fails validation.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// LanguageConfig controls one language's participation in a scan.
type LanguageConfig struct {
	Enabled    *bool    `yaml:"enabled"`
	Extensions []string `yaml:"extensions"`
}

// CustomRule is the YAML shape of a user-declared pattern rule.
type CustomRule struct {
	ID        string   `yaml:"id"`
	Languages []string `yaml:"languages"`
	Pattern   string   `yaml:"pattern"`
	Severity  string   `yaml:"severity"`
	Category  string   `yaml:"category"`
	Message   string   `yaml:"message"`
	Fix       string   `yaml:"fix"`
}

// AIConfig configures the optional insight provider.
type AIConfig struct {
	Enabled             *bool    `yaml:"enabled"`
	Endpoint            *string  `yaml:"endpoint"`
	APIKeyEnv           *string  `yaml:"api_key_env"`
	Model               *string  `yaml:"model"`
	Timeout             *string  `yaml:"timeout"`
	ConfidenceThreshold *float64 `yaml:"confidence_threshold"`
}

// FileConfig is the on-disk YAML configuration shape. Pointer fields
// distinguish "unset" from zero values during precedence merging.
type FileConfig struct {
	Languages          map[string]LanguageConfig `yaml:"languages"`
	IgnorePatterns     []string                  `yaml:"ignore_patterns"`
	MaxFileSize        *int64                    `yaml:"max_file_size"`
	ParallelProcessing *bool                     `yaml:"parallel_processing"`
	MaxWorkers         *int                      `yaml:"max_workers"`
	Format             *string                   `yaml:"format"`
	NoCache            *bool                     `yaml:"no_cache"`
	LogLevel           *string                   `yaml:"log_level"`
	CustomRules        []CustomRule              `yaml:"custom_rules"`
	AI                 *AIConfig                 `yaml:"ai"`
}

// Defaults that apply when neither CLI nor any config file sets a value.
const (
	DefaultMaxFileSize = int64(1 << 20) // 1 MiB
	DefaultMaxWorkers  = 4
	DefaultAITimeout   = 15 * time.Second
)

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, &ConfigError{Field: path, Reason: err.Error()}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
// It supports .scanlens.yml/.yaml and scanlens.yml/.yaml.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".scanlens.yml", ".scanlens.yaml", "scanlens.yml", "scanlens.yaml"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "scanlens", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// Validate checks field values that cannot be range-checked by YAML alone.
func (fc FileConfig) Validate() error {
	if fc.MaxFileSize != nil && *fc.MaxFileSize <= 0 {
		return &ConfigError{Field: "max_file_size", Reason: "must be positive"}
	}
	if fc.MaxWorkers != nil && *fc.MaxWorkers < 1 {
		return &ConfigError{Field: "max_workers", Reason: "must be at least 1"}
	}
	for name := range fc.Languages {
		if parseLanguage(name) == types.LangUnknown {
			return &ConfigError{Field: "languages." + name, Reason: "unsupported language"}
		}
	}
	for _, cr := range fc.CustomRules {
		if cr.ID == "" {
			return &ConfigError{Field: "custom_rules", Reason: "rule without an id"}
		}
		if cr.Pattern == "" {
			return &ConfigError{Field: "custom_rules." + cr.ID, Reason: "empty pattern"}
		}
		if types.Severity(cr.Severity).Rank() < 0 {
			return &ConfigError{Field: "custom_rules." + cr.ID, Reason: fmt.Sprintf("unknown severity %q", cr.Severity)}
		}
	}
	if fc.AI != nil && fc.AI.Timeout != nil {
		if _, err := time.ParseDuration(*fc.AI.Timeout); err != nil {
			return &ConfigError{Field: "ai.timeout", Reason: err.Error()}
		}
	}
	if fc.AI != nil && fc.AI.ConfidenceThreshold != nil {
		if v := *fc.AI.ConfidenceThreshold; v < 0 || v > 1 {
			return &ConfigError{Field: "ai.confidence_threshold", Reason: "must be within [0,1]"}
		}
	}
	return nil
}

// EnabledLanguages maps language identifiers to their enable flag. With no
// languages section every supported language is enabled.
func (fc FileConfig) EnabledLanguages() map[types.Language]bool {
	out := map[types.Language]bool{
		types.LangPython:     true,
		types.LangJavaScript: true,
		types.LangTypeScript: true,
		types.LangJava:       true,
	}
	for name, lc := range fc.Languages {
		if lc.Enabled != nil {
			out[parseLanguage(name)] = *lc.Enabled
		}
	}
	return out
}

// LanguageOverrides returns only the enable flags this file sets
// explicitly, so one config can be layered over another without the
// all-enabled defaults clobbering the lower layer.
func (fc FileConfig) LanguageOverrides() map[types.Language]bool {
	out := map[types.Language]bool{}
	for name, lc := range fc.Languages {
		if lc.Enabled != nil {
			out[parseLanguage(name)] = *lc.Enabled
		}
	}
	return out
}

// ExtensionOverrides maps additional file extensions declared per language
// to that language. Extensions are normalized to a leading dot.
func (fc FileConfig) ExtensionOverrides() map[string]types.Language {
	out := map[string]types.Language{}
	for name, lc := range fc.Languages {
		lang := parseLanguage(name)
		for _, ext := range lc.Extensions {
			if ext == "" {
				continue
			}
			if ext[0] != '.' {
				ext = "." + ext
			}
			out[ext] = lang
		}
	}
	return out
}

// CustomRuleSpecs converts the YAML custom rules to engine specs.
func (fc FileConfig) CustomRuleSpecs() []rules.CustomSpec {
	specs := make([]rules.CustomSpec, 0, len(fc.CustomRules))
	for _, cr := range fc.CustomRules {
		spec := rules.CustomSpec{
			ID:       cr.ID,
			Pattern:  cr.Pattern,
			Severity: types.Severity(cr.Severity),
			Category: types.Category(cr.Category),
			Message:  cr.Message,
			Fix:      cr.Fix,
		}
		for _, name := range cr.Languages {
			if lang := parseLanguage(name); lang != types.LangUnknown {
				spec.Languages = append(spec.Languages, lang)
			}
		}
		specs = append(specs, spec)
	}
	return specs
}

// AITimeout returns the configured AI timeout or the default.
func (fc FileConfig) AITimeout() time.Duration {
	if fc.AI != nil && fc.AI.Timeout != nil {
		if d, err := time.ParseDuration(*fc.AI.Timeout); err == nil {
			return d
		}
	}
	return DefaultAITimeout
}

// AIEnabled reports whether the insight step should run.
func (fc FileConfig) AIEnabled() bool {
	return fc.AI != nil && fc.AI.Enabled != nil && *fc.AI.Enabled
}

func parseLanguage(name string) types.Language {
	switch name {
	case "python":
		return types.LangPython
	case "javascript":
		return types.LangJavaScript
	case "typescript":
		return types.LangTypeScript
	case "java":
		return types.LangJava
	default:
		return types.LangUnknown
	}
}
