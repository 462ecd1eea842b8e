// Package runner parses scangen's command-line flags, the same
// goflags.FlagSet/CreateGroup shape alterx's own runner uses.
package runner

import (
	"os"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
)

var version = "dev"

// Options holds the parsed scangen invocation.
type Options struct {
	Spec    string // token-spec YAML file to compile
	Mode    string // table, dot, or scan
	Input   string // input file to tokenize (mode=scan)
	Output  string // output file, stdout if empty
	Verbose bool
	Silent  bool
}

func ParseFlags() *Options {
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Compile declarative regex TokenSpecs into table-driven scanner automata.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.Spec, "spec", "s", "", "token-spec YAML file to compile (required)"),
		flagSet.StringVarP(&opts.Mode, "mode", "m", "table", "output mode: table, dot, scan"),
		flagSet.StringVarP(&opts.Input, "input", "i", "", "input file to tokenize (required for mode=scan)"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&opts.Output, "output", "o", "", "write output to this file instead of stdout"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display verbose output"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "display results only"),
		flagSet.CallbackVarP(printVersion, "version", "version", "display scangen version"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("could not read flags: %s\n", err)
	}

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}

	if opts.Spec == "" {
		gologger.Fatal().Msgf("scangen: no token-spec file provided (use -spec)")
	}

	switch opts.Mode {
	case "table", "dot", "scan":
	default:
		gologger.Fatal().Msgf("scangen: invalid mode %q (must be table, dot, or scan)", opts.Mode)
	}

	if opts.Mode == "scan" && opts.Input == "" {
		gologger.Fatal().Msgf("scangen: mode=scan requires -input")
	}

	return opts
}

func printVersion() {
	gologger.Info().Msgf("scangen %s", version)
	os.Exit(0)
}
