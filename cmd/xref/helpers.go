package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/avullo/ensembl-xref/internal/config"
)

var (
	errMark  = color.New(color.FgRed)
	okMark   = color.New(color.FgGreen)
	infoText = color.New(color.FgCyan)
)

func colorEnabled() bool {
	return !noColor && os.Getenv("NO_COLOR") == ""
}

// Print error message in user-friendly format
func printError(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if colorEnabled() {
		fmt.Fprintf(os.Stderr, "%s %s\n", errMark.Sprint("✗"), msg)
		return
	}
	fmt.Fprintf(os.Stderr, "✗ %s\n", msg)
}

// Print success message
func printSuccess(format string, args ...interface{}) {
	if quiet {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if colorEnabled() {
		fmt.Printf("%s %s\n", okMark.Sprint("✓"), msg)
		return
	}
	fmt.Printf("✓ %s\n", msg)
}

// Print info message
func printInfo(format string, args ...interface{}) {
	if quiet {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if colorEnabled() {
		infoText.Println(msg)
		return
	}
	fmt.Println(msg)
}

// Print verbose message, shown only with --verbose
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Printf(format+"\n", args...)
	}
}

// loadConfig resolves the configuration: the --config file if given,
// defaults otherwise.
func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(cfgPath)
}
