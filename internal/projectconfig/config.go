// Package projectconfig provides the ProjectConfig struct and loader for
// .confmat.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up by Load.
const FileName = ".confmat.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultFormat  = "text"
	DefaultDigits  = 4
	DefaultSummary = true
	DefaultStrict  = false
)

// maxDigits bounds output.digits; float64 carries about 17 significant digits.
const maxDigits = 15

// OutputConfig holds report rendering settings.
type OutputConfig struct {
	Format  string `yaml:"format,omitempty"`
	Digits  int    `yaml:"digits,omitempty"`
	Summary *bool  `yaml:"summary,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .confmat.yaml.
type ProjectConfig struct {
	Output OutputConfig `yaml:"output,omitempty"`
	// Strict makes batch runs fail when any matrix errors or needs a
	// zero substitution.
	Strict *bool `yaml:"strict,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Output: OutputConfig{
			Format:  DefaultFormat,
			Digits:  DefaultDigits,
			Summary: boolPtr(DefaultSummary),
		},
		Strict: boolPtr(DefaultStrict),
	}
}

// Load finds .confmat.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	if d := fileCfg.Output.Digits; d < 0 || d > maxDigits {
		return nil, fmt.Errorf("parsing %s: output.digits must be between 1 and %d, got %d", FileName, maxDigits, d)
	}

	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for .confmat.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) ([]byte, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Output.Format != "" {
		dst.Output.Format = src.Output.Format
	}
	if src.Output.Digits != 0 {
		dst.Output.Digits = src.Output.Digits
	}
	if src.Output.Summary != nil {
		dst.Output.Summary = src.Output.Summary
	}
	if src.Strict != nil {
		dst.Strict = src.Strict
	}
}

// SummaryEnabled reports whether batch reports include the macro average.
func (c *ProjectConfig) SummaryEnabled() bool {
	return c.Output.Summary == nil || *c.Output.Summary
}

// StrictEnabled reports whether strict mode is on.
func (c *ProjectConfig) StrictEnabled() bool {
	return c.Strict != nil && *c.Strict
}

func boolPtr(b bool) *bool {
	return &b
}
