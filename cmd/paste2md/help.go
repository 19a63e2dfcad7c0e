package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: paste2md <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Transform pasted HTML or text into Markdown")
	fmt.Fprintln(w, "  preview    Transform, then render the Markdown as HTML")
	fmt.Fprintln(w, "  doctor     Check config, presets, and the pipeline")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'paste2md help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: paste2md convert [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Transform pasted HTML or plain text into Markdown.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    File, directory, or \"-\" for stdin")
	fmt.Fprintln(w, "           (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>            Output file or directory (default stdout)")
	fmt.Fprintln(w, "  -c, --config <name>            Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>              Parallel workers for directories (0 = auto)")
	fmt.Fprintln(w, "      --from <s>                 Input format: auto, html, text")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Headings:")
	fmt.Fprintln(w, "      --max-heading-level <n>    Minimum level pasted headings keep (1-6)")
	fmt.Fprintln(w, "      --cascade                  Shift later headings by the same delta")
	fmt.Fprintln(w, "      --no-cascade               Cap each heading independently")
	fmt.Fprintln(w, "      --contextual-cascade       Derive the cascade from the context level")
	fmt.Fprintln(w, "      --no-contextual-cascade    Ignore the context level")
	fmt.Fprintln(w, "      --context-level <n>        Destination heading level (1-6, 0 = none)")
	fmt.Fprintln(w, "      --doc <path>               Destination document to resolve context from")
	fmt.Fprintln(w, "      --cursor-line <n>          Cursor line in --doc (0-based)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Cleanup:")
	fmt.Fprintln(w, "      --strip-line-breaks        Delete <br> elements")
	fmt.Fprintln(w, "      --no-strip-line-breaks     Keep <br> elements as line breaks")
	fmt.Fprintln(w, "      --remove-empty-elements    Prune elements with no content")
	fmt.Fprintln(w, "      --no-remove-empty-elements Keep empty elements")
	fmt.Fprintln(w, "      --remove-empty-lines       Drop every blank line")
	fmt.Fprintln(w, "      --no-remove-empty-lines    Keep blank lines")
	fmt.Fprintln(w, "      --single-spaced            Collapse blank-line runs into one")
	fmt.Fprintln(w, "      --no-single-spaced         Keep blank-line runs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Replacements:")
	fmt.Fprintln(w, "      --preset <name>            Cleanup preset: word, gdocs, web (repeatable)")
	fmt.Fprintln(w, "      --html-replace <p=>r>      HTML replacement pair (repeatable)")
	fmt.Fprintln(w, "      --md-replace <p=>r>        Markdown replacement pair (repeatable)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Escaping:")
	fmt.Fprintln(w, "      --escape                   Escape Markdown constructs so the paste")
	fmt.Fprintln(w, "                                 renders as literal text")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                    Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                  Show detailed timing and pipeline warnings")
}

// printPreviewUsage prints usage for the preview command.
func printPreviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: paste2md preview [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Transform a paste, then render the resulting Markdown as a standalone")
	fmt.Fprintln(w, "HTML document for inspection. Accepts a single file or \"-\" for stdin")
	fmt.Fprintln(w, "and the same flags as convert.")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: paste2md doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check config resolution, preset integrity, and the transformation")
	fmt.Fprintln(w, "pipeline, and report [OK]/[WARN]/[ERROR] lines per check.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>    Config file name or path to check")
	fmt.Fprintln(w, "      --json             Output machine-readable JSON")
}

// runHelp prints help for a specific command and returns an exit code.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "preview":
		printPreviewUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: paste2md version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: paste2md help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
