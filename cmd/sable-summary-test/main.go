// sable-summary-test converts module summaries between the binary container
// format and a YAML form for inspection and test authoring.
package main

import (
	"fmt"
	"os"
	"strings"

	"sablec/common"
	"sablec/report"
	"sablec/serialize"
	"sablec/summary"

	"gopkg.in/yaml.v3"
)

const usage = `Usage: sable-summary-test [flags|options] <input file>

Flags:
------
-h, --help       Displays usage information (ie. this text).
-v, --version    Displays the current toolchain version.
--to-yaml        Dumps a binary summary index as YAML.
--from-yaml      Parses a YAML summary dump back to the binary format.

Options:
--------
-o, --outpath    Sets the path to write output to (required).
`

// Enumeration of converter modes.
const (
	modeNone = iota
	modeToYAML
	modeFromYAML
)

func printUsage(exitCode int) {
	fmt.Print(usage, "\n")
	os.Exit(exitCode)
}

func argumentError(message string, args ...interface{}) {
	fmt.Print("argument error: ", fmt.Sprintf(message, args...), "\n\n")
	printUsage(1)
}

// config is the parsed command line of one converter invocation.
type config struct {
	inputPath  string
	outputPath string
	mode       int
}

// newConfigFromArgs parses the command line.
func newConfigFromArgs() *config {
	c := &config{mode: modeNone}

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "-h" || arg == "--help":
			printUsage(0)
		case arg == "-v" || arg == "--version":
			fmt.Println("sable-summary-test v" + common.SableVersion)
			os.Exit(0)
		case arg == "--to-yaml":
			c.mode = modeToYAML
		case arg == "--from-yaml":
			c.mode = modeFromYAML
		case arg == "-o" || arg == "--outpath":
			if i+1 >= len(args) {
				argumentError("option o requires an argument")
			}
			i++
			c.outputPath = args[i]
		case strings.HasPrefix(arg, "-"):
			argumentError("unknown flag: %s", arg)
		default:
			if c.inputPath != "" {
				argumentError("input path specified multiple times")
			}
			c.inputPath = arg
		}
	}

	report.InitReporter(report.LogLevelVerbose)

	if c.mode == modeNone {
		argumentError("a conversion mode is required")
	}

	if c.inputPath == "" {
		argumentError("an input path must be specified")
	}

	if c.outputPath == "" {
		argumentError("an output path must be specified")
	}

	return c
}

func main() {
	os.Exit(run())
}

func run() int {
	c := newConfigFromArgs()

	data, err := os.ReadFile(c.inputPath)
	if err != nil {
		report.ReportStdError("reading input", err)
		return 1
	}

	switch c.mode {
	case modeToYAML:
		index := summary.NewIndex("")
		if err := serialize.ReadIndex(data, index); err != nil {
			report.ReportStdError("parsing binary summary", err)
			return 1
		}

		out, err := yaml.Marshal(indexToYAML(index))
		if err != nil {
			report.ReportStdError("marshaling YAML", err)
			return 1
		}

		if err := os.WriteFile(c.outputPath, out, 0666); err != nil {
			report.ReportStdError("writing output", err)
			return 1
		}

	case modeFromYAML:
		y := &yamlIndex{}
		if err := yaml.Unmarshal(data, y); err != nil {
			report.ReportStdError("parsing YAML summary", err)
			return 1
		}

		index, err := indexFromYAML(y)
		if err != nil {
			report.ReportStdError("parsing YAML summary", err)
			return 1
		}

		opts := serialize.Options{EmbedDebugNames: true}
		if err := serialize.WriteIndexFile(c.outputPath, index, opts); err != nil {
			report.ReportStdError("writing binary summary", err)
			return 1
		}
	}

	return 0
}
