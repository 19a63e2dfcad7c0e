package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-paste2md/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid field value")
)

// Field limits for multi-tenant safety.
const (
	MaxDirLength        = 4096 // Filesystem path limit
	MaxFormatLength     = 10   // "auto", "html", "text"
	MaxPatternLength    = 1000 // Single regex pattern or replacement
	MaxReplacements     = 100  // Pairs per replacement list
	MaxPresets          = 20   // Preset names per config
	MaxPresetNameLength = 50   // Single preset name
)

// MaxHeadingDepth is the deepest Markdown heading level.
const MaxHeadingDepth = 6

// Config holds all configuration for paste transformation.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Transform TransformConfig `yaml:"transform"`
	Presets   []string        `yaml:"presets"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
	Format     string `yaml:"format"`     // "auto", "html", "text" (default: "auto")
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = stdout / same as source)
}

// TransformConfig defines the transformation switches. MaxHeadingLevel 0
// means unset, letting flags or library defaults decide.
type TransformConfig struct {
	MaxHeadingLevel      int                 `yaml:"maxHeadingLevel"` // 0 = unset, else 1-6
	CascadeHeadingLevels bool                `yaml:"cascadeHeadingLevels"`
	ContextualCascade    bool                `yaml:"contextualCascade"`
	StripLineBreaks      bool                `yaml:"stripLineBreaks"`
	RemoveEmptyElements  bool                `yaml:"removeEmptyElements"`
	RemoveEmptyLines     bool                `yaml:"removeEmptyLines"`
	SingleSpaced         bool                `yaml:"singleSpaced"`
	HTMLReplacements     []ReplacementConfig `yaml:"htmlReplacements"`
	MarkdownReplacements []ReplacementConfig `yaml:"markdownReplacements"`
}

// ReplacementConfig is one ordered regex substitution pair.
type ReplacementConfig struct {
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
}

// Validate checks field values and lengths to prevent abuse.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxDirLength); err != nil {
		return err
	}
	if err := validateFieldLength("input.format", c.Input.Format, MaxFormatLength); err != nil {
		return err
	}
	if c.Input.Format != "" {
		switch strings.ToLower(c.Input.Format) {
		case "auto", "html", "text":
			// valid
		default:
			return fmt.Errorf("%w: input.format %q (must be auto, html, or text)", ErrInvalidField, c.Input.Format)
		}
	}

	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxDirLength); err != nil {
		return err
	}

	if lvl := c.Transform.MaxHeadingLevel; lvl != 0 && (lvl < 1 || lvl > MaxHeadingDepth) {
		return fmt.Errorf("%w: transform.maxHeadingLevel %d (must be between 1 and %d)", ErrInvalidField, lvl, MaxHeadingDepth)
	}
	if err := validateReplacements("transform.htmlReplacements", c.Transform.HTMLReplacements); err != nil {
		return err
	}
	if err := validateReplacements("transform.markdownReplacements", c.Transform.MarkdownReplacements); err != nil {
		return err
	}

	if len(c.Presets) > MaxPresets {
		return fmt.Errorf("%w: presets (%d entries, max %d)", ErrFieldTooLong, len(c.Presets), MaxPresets)
	}
	for i, name := range c.Presets {
		if name == "" {
			return fmt.Errorf("%w: presets[%d] is empty", ErrInvalidField, i)
		}
		if err := validateFieldLength(fmt.Sprintf("presets[%d]", i), name, MaxPresetNameLength); err != nil {
			return err
		}
	}

	return nil
}

// validateReplacements checks one replacement list against count and
// length limits. Pattern syntax is not checked here; invalid patterns
// are skipped with a warning at transform time.
func validateReplacements(fieldName string, reps []ReplacementConfig) error {
	if len(reps) > MaxReplacements {
		return fmt.Errorf("%w: %s (%d pairs, max %d)", ErrFieldTooLong, fieldName, len(reps), MaxReplacements)
	}
	for i, rep := range reps {
		if err := validateFieldLength(fmt.Sprintf("%s[%d].pattern", fieldName, i), rep.Pattern, MaxPatternLength); err != nil {
			return err
		}
		if err := validateFieldLength(fmt.Sprintf("%s[%d].replacement", fieldName, i), rep.Replacement, MaxPatternLength); err != nil {
			return err
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration with every adjustment
// disabled and no presets applied.
func DefaultConfig() *Config {
	return &Config{
		Input:  InputConfig{DefaultDir: "", Format: ""},
		Output: OutputConfig{DefaultDir: ""},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-paste2md/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-paste2md", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
