package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// headingFlags holds heading adjustment flags. Booleans come in
// enable/disable pairs so a flag can override a config file value in
// either direction; the disable form is applied last.
type headingFlags struct {
	maxLevel            int // 0 = not set, keep config or default
	cascade             bool
	noCascade           bool
	contextualCascade   bool
	noContextualCascade bool
	contextLevel        int // 0 = no destination context
}

// cleanupFlags holds whitespace and empty-element cleanup flags.
type cleanupFlags struct {
	stripLineBreaks       bool
	noStripLineBreaks     bool
	removeEmptyElements   bool
	noRemoveEmptyElements bool
	removeEmptyLines      bool
	noRemoveEmptyLines    bool
	singleSpaced          bool
	noSingleSpaced        bool
}

// replaceFlags holds repeatable replacement flags. Values accumulate in
// the order given on the command line.
type replaceFlags struct {
	presets  []string
	html     []string
	markdown []string
}

// docFlags holds destination-document flags for context resolution.
type docFlags struct {
	path       string
	cursorLine int
}

// convertFlags holds all flags for the convert and preview commands.
type convertFlags struct {
	common  commonFlags
	output  string
	from    string
	escape  bool
	workers int
	heading headingFlags
	cleanup cleanupFlags
	replace replaceFlags
	doc     docFlags
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	config string
	json   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing and pipeline warnings")
}

// addHeadingFlags adds heading adjustment flags to a FlagSet.
func addHeadingFlags(fs *flag.FlagSet, f *headingFlags) {
	fs.IntVar(&f.maxLevel, "max-heading-level", 0, "minimum heading level pasted headings may keep (1-6, 0 = config/default)")
	fs.BoolVar(&f.cascade, "cascade", false, "shift later headings by the first adjustment delta")
	fs.BoolVar(&f.noCascade, "no-cascade", false, "cap each heading independently")
	fs.BoolVar(&f.contextualCascade, "contextual-cascade", false, "derive the cascade from the destination context level")
	fs.BoolVar(&f.noContextualCascade, "no-contextual-cascade", false, "ignore the destination context level")
	fs.IntVar(&f.contextLevel, "context-level", 0, "destination heading level (1-6, 0 = none)")
}

// addCleanupFlags adds cleanup flags to a FlagSet.
func addCleanupFlags(fs *flag.FlagSet, f *cleanupFlags) {
	fs.BoolVar(&f.stripLineBreaks, "strip-line-breaks", false, "delete <br> elements instead of keeping line breaks")
	fs.BoolVar(&f.noStripLineBreaks, "no-strip-line-breaks", false, "keep <br> elements as line breaks")
	fs.BoolVar(&f.removeEmptyElements, "remove-empty-elements", false, "prune elements with no content")
	fs.BoolVar(&f.noRemoveEmptyElements, "no-remove-empty-elements", false, "keep empty elements")
	fs.BoolVar(&f.removeEmptyLines, "remove-empty-lines", false, "drop every blank line from the result")
	fs.BoolVar(&f.noRemoveEmptyLines, "no-remove-empty-lines", false, "keep blank lines")
	fs.BoolVar(&f.singleSpaced, "single-spaced", false, "collapse blank-line runs into one")
	fs.BoolVar(&f.noSingleSpaced, "no-single-spaced", false, "keep blank-line runs")
}

// addReplaceFlags adds replacement flags to a FlagSet.
// StringArray keeps commas inside patterns intact; StringSlice would
// split on them.
func addReplaceFlags(fs *flag.FlagSet, f *replaceFlags) {
	fs.StringArrayVar(&f.presets, "preset", nil, "cleanup preset to apply (repeatable; see doctor for names)")
	fs.StringArrayVar(&f.html, "html-replace", nil, "HTML replacement as pattern=>replacement (repeatable)")
	fs.StringArrayVar(&f.markdown, "md-replace", nil, "Markdown replacement as pattern=>replacement (repeatable)")
}

// addDocFlags adds destination-document flags to a FlagSet.
func addDocFlags(fs *flag.FlagSet, f *docFlags) {
	fs.StringVar(&f.path, "doc", "", "destination document for context resolution")
	fs.IntVar(&f.cursorLine, "cursor-line", 0, "cursor line in --doc (0-based)")
}

// parseConvertFlags parses convert command flags and returns positional args.
// The preview command shares the same flag surface.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVar(&f.from, "from", "", "input format: auto, html, text")
	fs.BoolVar(&f.escape, "escape", false, "escape Markdown constructs instead of adjusting headings")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers for directory input (0 = auto)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addHeadingFlags(fs, &f.heading)
	addCleanupFlags(fs, &f.cleanup)
	addReplaceFlags(fs, &f.replace)
	addDocFlags(fs, &f.doc)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string) (*doctorFlags, error) {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	f := &doctorFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVar(&f.json, "json", false, "output machine-readable JSON")

	fs.Usage = func() { printDoctorUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return f, nil
}
