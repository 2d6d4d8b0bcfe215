package main

import (
	"os"

	"sablec/report"

	"github.com/pelletier/go-toml"
)

// tomlProfile represents an LTO profile as it is encoded in TOML.
type tomlProfile struct {
	Inputs          []string `toml:"inputs"`
	Output          string   `toml:"output"`
	ModuleName      string   `toml:"module-name"`
	EmbedDebugNames bool     `toml:"embed-debug-names"`
	LiveTrace       string   `toml:"live-trace"`
}

// applyProfile loads the LTO profile at the given path and applies it to the
// configuration.  Profile values never override values already set by
// explicit command-line arguments.
func applyProfile(c *config, path string) {
	buff, err := os.ReadFile(path)
	if err != nil {
		report.ReportFatal("unable to read LTO profile at `%s`: %s", path, err.Error())
	}

	profile := &tomlProfile{}
	if err := toml.Unmarshal(buff, profile); err != nil {
		report.ReportFatal("error parsing LTO profile at `%s`: %s", path, err.Error())
	}

	if len(c.inputPaths) == 0 {
		c.inputPaths = profile.Inputs
	}

	if c.outputPath == "" {
		c.outputPath = profile.Output
	}

	if c.moduleName == "" {
		c.moduleName = profile.ModuleName
	}

	if c.traceSymbol == "" {
		c.traceSymbol = profile.LiveTrace
	}

	c.embedNames = c.embedNames || profile.EmbedDebugNames
}
