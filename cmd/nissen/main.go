// Command nissen computes and displays Nissen forces in a blastocyst.
//
// Usage
//
// The run subcommand takes one optional argument:
//  nissen run [config_file]
// It is the path to a TOML config file.
// If no config file is specified, an interactive sweep
// with default parameters will run in an OpenGL window.
//
// The field subcommand records the force a probe cell would feel on a grid
// around the tissue. It requires Output to be set:
//  nissen field [config_file]
//
// The params subcommand prints the parameters of the configured force law
// in the tagged format of simulation parameter files:
//  nissen params [config_file]
//
// Config file
//
// The config file is written in TOML. Interaction strengths go in a
// [Parameters] table using the S_A_B names, e.g.
//  Force = "trophectoderm"
//  CutOffLength = 2.5
//  [Parameters]
//  S_TE_TE = -1.4
//
// Interactive mode
//
// In interactive mode, the sweep can be paused/resumed with space.
// While in pause, pressing right arrow will perform a single step.
// Tab and shift tab cycle through cells and log the focal one.
// Pressing R resets the zoom. Pressing Esc or closing the window will quit.
package main

import (
	"fmt"
	"os"
	"runtime"
)

func init() {
	// Most OpenGL functions have to run from the main thread.
	// This is needed to arrange that main() runs on main thread.
	// See https://github.com/golang/go/wiki/LockOSThread for more info.
	runtime.LockOSThread()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		Fatal(err)
	}
}

// Fatal prints an error on the standard error and exits with a non-zero status.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}
