package main

import (
	"io"
	"os"
)

// Environment holds injectable I/O for testability. Stdin carries the
// paste when the input argument is "-"; Stdout receives Markdown in
// stdout mode and status lines otherwise.
type Environment struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultEnv returns the production environment wired to the process
// streams.
func DefaultEnv() *Environment {
	return &Environment{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}
