package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	paste2md "github.com/alnah/go-paste2md"
	"github.com/alnah/go-paste2md/internal/config"
	"github.com/alnah/go-paste2md/internal/fileutil"
	"github.com/alnah/go-paste2md/internal/presets"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string       `json:"status"` // "ready", "warnings", "errors"
	Config   configInfo   `json:"config"`
	Presets  []presetInfo `json:"presets"`
	Pipeline pipelineInfo `json:"pipeline"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

// configInfo holds config resolution results.
type configInfo struct {
	Source       string   `json:"source"` // "flag", "env", "defaults"
	Name         string   `json:"name,omitempty"`
	Loaded       bool     `json:"loaded"`
	Presets      []string `json:"presets,omitempty"`
	Replacements int      `json:"replacements"`
}

// presetInfo holds embedded preset integrity results.
type presetInfo struct {
	Name     string `json:"name"`
	Loaded   bool   `json:"loaded"`
	Patterns int    `json:"patterns"`
	Invalid  int    `json:"invalid_patterns"`
}

// pipelineInfo holds the end-to-end pipeline check result.
type pipelineInfo struct {
	TransformOK bool `json:"transform_ok"`
	PreviewOK   bool `json:"preview_ok"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(flags *doctorFlags, env *Environment) int {
	result := runDoctor(flags.config)

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(configName string) *doctorResult {
	result := &doctorResult{Status: "ready"}

	checkConfig(result, configName)
	checkPresets(result)
	checkPipeline(result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkConfig resolves and validates the config file, mirroring what
// convert would load.
func checkConfig(result *doctorResult, configName string) {
	name := configName
	result.Config.Source = "flag"
	if name == "" {
		name = loadEnvConfig().ConfigPath
		result.Config.Source = "env"
	}
	if name == "" {
		result.Config.Source = "defaults"
		result.Config.Loaded = true
		return
	}
	result.Config.Name = name

	cfg, err := config.LoadConfig(name)
	if err != nil {
		kind := "name"
		if fileutil.IsFilePath(name) {
			kind = "path"
		}
		result.Errors = append(result.Errors,
			fmt.Sprintf("config %s %q: %v", kind, name, err))
		return
	}

	result.Config.Loaded = true
	result.Config.Presets = cfg.Presets
	result.Config.Replacements = len(cfg.Transform.HTMLReplacements) + len(cfg.Transform.MarkdownReplacements)

	// Invalid patterns are skipped at transform time with a logged
	// warning, so here they only warn.
	for _, r := range cfg.Transform.HTMLReplacements {
		if _, err := regexp.Compile(r.Pattern); err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("config html pattern %q will be skipped: %v", r.Pattern, err))
		}
	}
	for _, r := range cfg.Transform.MarkdownReplacements {
		if _, err := regexp.Compile(r.Pattern); err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("config markdown pattern %q will be skipped: %v", r.Pattern, err))
		}
	}

	for _, preset := range cfg.Presets {
		if _, err := presets.Load(preset); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("config preset %q: %v", preset, err))
		}
	}
}

// checkPresets verifies every embedded preset loads and compiles.
// Shipped presets must be flawless; a failure here is a build defect.
func checkPresets(result *doctorResult) {
	for _, name := range presets.Names() {
		info := presetInfo{Name: name}

		p, err := presets.Load(name)
		if err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("preset %q failed to load: %v", name, err))
			result.Presets = append(result.Presets, info)
			continue
		}

		info.Loaded = true
		for _, r := range append(p.HTMLReplacements, p.MarkdownReplacements...) {
			info.Patterns++
			if _, err := regexp.Compile(r.Pattern); err != nil {
				info.Invalid++
				result.Errors = append(result.Errors,
					fmt.Sprintf("preset %q pattern %q: %v", name, r.Pattern, err))
			}
		}

		result.Presets = append(result.Presets, info)
	}
}

// checkPipeline runs a tiny end-to-end transform and preview.
func checkPipeline(result *doctorResult) {
	svc, err := paste2md.New(paste2md.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("pipeline init failed: %v", err))
		return
	}

	ctx := context.Background()
	res, err := svc.Transform(ctx, paste2md.Input{HTML: "<h1>Doctor</h1><p>pipeline check</p>"})
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("transform check failed: %v", err))
		return
	}
	if !strings.Contains(res.Markdown, "# Doctor") {
		result.Errors = append(result.Errors,
			fmt.Sprintf("transform check produced unexpected output: %q", res.Markdown))
		return
	}
	result.Pipeline.TransformOK = true

	html, err := svc.Preview(ctx, res.Markdown)
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("preview check failed: %v", err))
		return
	}
	if !strings.Contains(html, "<h1") {
		result.Errors = append(result.Errors,
			fmt.Sprintf("preview check produced unexpected output: %q", html))
		return
	}
	result.Pipeline.PreviewOK = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "paste2md doctor")
	fmt.Fprintln(w)

	// Config section
	fmt.Fprintln(w, "Config")
	switch {
	case r.Config.Source == "defaults":
		fmt.Fprintln(w, "  [OK] Using built-in defaults (no config file)")
	case r.Config.Loaded:
		fmt.Fprintf(w, "  [OK] Loaded %q (source: %s)\n", r.Config.Name, r.Config.Source)
		if len(r.Config.Presets) > 0 {
			fmt.Fprintf(w, "  [OK] Presets: %s\n", strings.Join(r.Config.Presets, ", "))
		}
		fmt.Fprintf(w, "  [OK] Replacement pairs: %d\n", r.Config.Replacements)
	default:
		fmt.Fprintf(w, "  [ERROR] Failed to load %q\n", r.Config.Name)
	}
	fmt.Fprintln(w)

	// Presets section
	fmt.Fprintln(w, "Presets")
	for _, p := range r.Presets {
		switch {
		case !p.Loaded:
			fmt.Fprintf(w, "  [ERROR] %s: failed to load\n", p.Name)
		case p.Invalid > 0:
			fmt.Fprintf(w, "  [ERROR] %s: %d of %d patterns invalid\n", p.Name, p.Invalid, p.Patterns)
		default:
			fmt.Fprintf(w, "  [OK] %s: %d patterns\n", p.Name, p.Patterns)
		}
	}
	fmt.Fprintln(w)

	// Pipeline section
	fmt.Fprintln(w, "Pipeline")
	if r.Pipeline.TransformOK {
		fmt.Fprintln(w, "  [OK] Transform: HTML to Markdown")
	} else {
		fmt.Fprintln(w, "  [ERROR] Transform: failed")
	}
	if r.Pipeline.PreviewOK {
		fmt.Fprintln(w, "  [OK] Preview: Markdown to HTML")
	} else {
		fmt.Fprintln(w, "  [ERROR] Preview: failed")
	}
	fmt.Fprintln(w)

	// Warnings
	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	// Errors
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	// Final status
	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
