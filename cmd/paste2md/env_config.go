package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-paste2md/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly defaults without requiring YAML files.
type envConfig struct {
	ConfigPath      string   // PASTE2MD_CONFIG: config file name or path
	InputDir        string   // PASTE2MD_INPUT_DIR: default input directory
	OutputDir       string   // PASTE2MD_OUTPUT_DIR: default output directory
	From            string   // PASTE2MD_FROM: auto, html, text
	Presets         []string // PASTE2MD_PRESETS: comma-separated preset names
	MaxHeadingLevel int      // PASTE2MD_MAX_HEADING_LEVEL: 1-6
	Workers         int      // PASTE2MD_WORKERS: parallel workers
}

// knownEnvVars lists valid PASTE2MD_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"PASTE2MD_CONFIG":            true,
	"PASTE2MD_INPUT_DIR":         true,
	"PASTE2MD_OUTPUT_DIR":        true,
	"PASTE2MD_FROM":              true,
	"PASTE2MD_PRESETS":           true,
	"PASTE2MD_MAX_HEADING_LEVEL": true,
	"PASTE2MD_WORKERS":           true,
}

// loadEnvConfig reads configuration from environment variables.
// Invalid numeric or enum values are ignored, not errors; the CLI keeps
// working and the config file or flags decide instead.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("PASTE2MD_CONFIG"),
		InputDir:   os.Getenv("PASTE2MD_INPUT_DIR"),
		OutputDir:  os.Getenv("PASTE2MD_OUTPUT_DIR"),
	}

	if from := strings.ToLower(os.Getenv("PASTE2MD_FROM")); from != "" {
		switch from {
		case "auto", "html", "text":
			cfg.From = from
		}
	}

	if raw := os.Getenv("PASTE2MD_PRESETS"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.Presets = append(cfg.Presets, name)
			}
		}
	}

	if lvl := os.Getenv("PASTE2MD_MAX_HEADING_LEVEL"); lvl != "" {
		if n, err := strconv.Atoi(lvl); err == nil && n >= 1 && n <= config.MaxHeadingDepth {
			cfg.MaxHeadingLevel = n
		}
	}

	if workers := os.Getenv("PASTE2MD_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized PASTE2MD_* variables.
// Helps catch typos like PASTE2MD_PRESET instead of PASTE2MD_PRESETS.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "PASTE2MD_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values the config file left empty/zero, so the resulting
// precedence is: CLI flags > config file > env vars > defaults.
// (CLI flags are applied later via mergeFlags.)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.From != "" && cfg.Input.Format == "" {
		cfg.Input.Format = env.From
	}
	if env.MaxHeadingLevel > 0 && cfg.Transform.MaxHeadingLevel == 0 {
		cfg.Transform.MaxHeadingLevel = env.MaxHeadingLevel
	}
	if len(env.Presets) > 0 && len(cfg.Presets) == 0 {
		cfg.Presets = env.Presets
	}
}
