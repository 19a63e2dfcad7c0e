package presets

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-paste2md/internal/yamlutil"
)

//go:embed rules/*.yaml
var rulesFS embed.FS

// Sentinel errors for preset operations.
var (
	// ErrPresetNotFound indicates the requested preset does not exist.
	ErrPresetNotFound = errors.New("preset not found")

	// ErrInvalidPresetName indicates the preset name contains invalid
	// characters such as path separators or traversal sequences.
	ErrInvalidPresetName = errors.New("invalid preset name")

	// ErrPresetParse indicates the preset file is not valid YAML.
	ErrPresetParse = errors.New("failed to parse preset")
)

// Preset is a named bundle of replacement pairs for one paste source.
type Preset struct {
	Description          string        `yaml:"description"`
	HTMLReplacements     []Replacement `yaml:"htmlReplacements"`
	MarkdownReplacements []Replacement `yaml:"markdownReplacements"`
}

// Replacement is one ordered regex substitution pair.
type Replacement struct {
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
}

// Names returns the embedded preset names in sorted order.
func Names() []string {
	entries, err := rulesFS.ReadDir("rules")
	if err != nil {
		// The directory is embedded at compile time; a read failure
		// means a broken build, not a runtime condition.
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".yaml"))
	}
	return names
}

// Load returns the named preset from the embedded rule files.
// The name should not include the .yaml extension.
func Load(name string) (*Preset, error) {
	if err := ValidatePresetName(name); err != nil {
		return nil, err
	}

	data, err := rulesFS.ReadFile("rules/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}

	var p Preset
	if err := yamlutil.UnmarshalStrict(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrPresetParse, name, err)
	}

	return &p, nil
}

// ValidatePresetName checks that a preset name is safe for use as a
// filename. Returns ErrInvalidPresetName if the name is empty or
// contains path separators, dots, or traversal characters.
func ValidatePresetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidPresetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidPresetName, name)
	}
	return nil
}
