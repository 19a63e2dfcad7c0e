package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Configure GOMAXPROCS before any work starts. The adjustment
	// message only surfaces with --verbose; errors are ignored because
	// maxprocs.Set only fails on an invalid GOMAXPROCS env var, in
	// which case Go runtime defaults apply.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// hasVerboseFlag scans raw args for --verbose before flag parsing runs.
// Scanning stops at "--" so positional arguments are never mistaken
// for flags.
func hasVerboseFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if arg == "--verbose" {
			return true
		}
	}
	return false
}

// runMain dispatches commands and returns the process exit code.
// Separated from main so tests can exercise it with a fake Environment.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch args[1] {
	case "convert":
		return runConvertCmd(args[2:], env)
	case "preview":
		return runPreviewCmd(args[2:], env)
	case "doctor":
		flags, err := parseDoctorFlags(args[2:])
		if err != nil {
			return parseExitCode(err)
		}
		return runDoctorCmd(flags, env)
	case "version":
		fmt.Fprintf(env.Stdout, "paste2md %s\n", Version)
		return ExitSuccess
	case "help":
		return runHelp(args[2:], env)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", args[1])
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// runConvertCmd parses convert flags and runs the conversion.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		return parseExitCode(err)
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "Error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runPreviewCmd parses preview flags and renders the preview.
func runPreviewCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		return parseExitCode(err)
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runPreview(ctx, positional, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "Error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// parseExitCode maps a flag-parsing error to an exit code. pflag has
// already printed the message and usage by the time this runs.
func parseExitCode(err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	return ExitUsage
}
