package main

import (
	"fmt"
	"os"
	"strings"

	"sablec/common"
	"sablec/report"
)

const usage = `Usage: sable-lto [flags|options] <input summary files...>

Merges per-module summaries, computes cross-module liveness, and writes the
combined, live-annotated summary index.

Flags:
------
-h, --help          Displays usage information (ie. this text).
-v, --version       Displays the current toolchain version.
-e, --embed-names   Embeds function debug names in the output summary.

Options:
--------
-o,  --outpath     Sets the path to write the combined summary to (required).
-n,  --name        Sets the module name of the combined summary.  Defaults to
                   "combined" if unspecified.
-t,  --trace       Prints the liveness chain for any live function whose
                   debug name equals the given symbol.  Also spelled
                   --lto-print-live-trace.
-p,  --profile     Loads an LTO profile (TOML) supplying inputs and options.
                   Explicit command-line arguments take precedence.
-ll, --loglevel    Sets the tool's log-level.  Valid values are:
                     - "verbose" for outputting all messages (default)
                     - "warn" for outputting errors and warnings
                     - "error" for outputting errors only
                     - "silent" for no output
`

// Prints the usage message and exits the program with the given exit code.
func printUsage(exitCode int) {
	fmt.Print(usage, "\n")
	os.Exit(exitCode)
}

// config is the fully resolved configuration of one sable-lto invocation.
type config struct {
	// The input summary paths in command-line order.
	inputPaths []string

	// The path to write the combined summary to.
	outputPath string

	// The module name given to the combined summary.
	moduleName string

	// Whether to embed debug names in the output.
	embedNames bool

	// The symbol to print a liveness chain for, if any.
	traceSymbol string

	// The LTO profile to apply once all arguments are parsed, if any.
	profilePath string
}

// argParser is a command-line argument parser.
type argParser struct {
	// The arguments being parsed.
	args []string

	// The argument parser's position within those arguments.
	ndx int
}

// Set containing all the argument names that correspond to options.
var options = map[string]struct{}{
	"o":                     {},
	"n":                     {},
	"t":                     {},
	"p":                     {},
	"ll":                    {},
	"lto-print-live-trace":  {},
	"-outpath":              {},
	"-name":                 {},
	"-trace":                {},
	"-lto-print-live-trace": {},
	"-profile":              {},
	"-loglevel":             {},
}

// argumentError displays an argument error and exits the program.
func argumentError(message string, args ...interface{}) {
	fmt.Print("argument error: ", fmt.Sprintf(message, args...), "\n\n")
	printUsage(1)
}

// nextArg parses the next command-line argument if one exists.  The first
// value is the name of the argument.  If this argument is positional, this
// value is empty.  The second value is the value of the argument.  If this
// value is empty, the argument is a flag.  The final value indicates whether
// or not there was an argument to parse.
func (ap *argParser) nextArg() (string, string, bool) {
	if ap.ndx < len(ap.args) {
		arg := ap.args[ap.ndx]
		ap.ndx++

		if strings.HasPrefix(arg, "-") { // flag or option
			name := arg[1:]

			if _, ok := options[name]; ok { // option
				// Make sure the option value exists.
				if ap.ndx < len(ap.args) && !strings.HasPrefix(ap.args[ap.ndx], "-") {
					value := ap.args[ap.ndx]
					ap.ndx++
					return name, value, true
				}

				argumentError("option %s requires an argument", strings.TrimLeft(name, "-"))
			} else { // flag
				return name, "", true
			}
		} else { // positional
			return "", arg, true
		}
	}

	// No arguments to parse.
	return "", "", false
}

// useArg attempts to use a single command-line argument to initialize the
// tool configuration.  If the argument is invalid, the program will exit.
func useArg(c *config, name, value string) {
	switch name {
	case "h", "-help":
		printUsage(0)
	case "v", "-version":
		fmt.Println("sable-lto v" + common.SableVersion)
		os.Exit(0)
	case "e", "-embed-names":
		c.embedNames = true
	case "ll", "-loglevel":
		{
			var logLevel int
			switch value {
			case "silent":
				logLevel = report.LogLevelSilent
			case "error":
				logLevel = report.LogLevelError
			case "warn":
				logLevel = report.LogLevelWarn
			case "verbose":
				logLevel = report.LogLevelVerbose
			default:
				argumentError("invalid log level")
			}

			report.InitReporter(logLevel)
		}
	case "o", "-outpath":
		c.outputPath = value
	case "n", "-name":
		c.moduleName = value
	case "t", "-trace", "lto-print-live-trace", "-lto-print-live-trace":
		c.traceSymbol = value
	case "p", "-profile":
		c.profilePath = value
	case "":
		c.inputPaths = append(c.inputPaths, value)
	default:
		argumentError("unknown flag: %s", name)
	}
}

// newConfigFromArgs creates a new tool configuration based on the given
// command-line arguments if the arguments are valid.
func newConfigFromArgs() *config {
	c := &config{}

	ap := argParser{args: os.Args[1:], ndx: 0}

	// Parse all command line arguments.
	for {
		if name, value, ok := ap.nextArg(); ok {
			useArg(c, name, value)
		} else {
			break
		}
	}

	// Set default values for any optional unspecified arguments.
	report.InitReporter(report.LogLevelVerbose)

	if c.profilePath != "" {
		applyProfile(c, c.profilePath)
	}

	if c.moduleName == "" {
		c.moduleName = common.CombinedModuleName
	}

	// Check the configuration is complete.
	if len(c.inputPaths) == 0 {
		argumentError("at least one input summary must be specified")
	}

	if c.outputPath == "" {
		argumentError("an output path must be specified")
	}

	return c
}
