// Command scangen compiles a declarative TokenSpec into a table-driven
// scanner automaton, and can render or drive it directly for inspection.
package main

import (
	"fmt"
	"os"

	"github.com/projectdiscovery/gologger"

	"github.com/scangen/scangen/cmd/scangen/runner"
	"github.com/scangen/scangen/internal/dfa"
	"github.com/scangen/scangen/internal/emit"
	"github.com/scangen/scangen/internal/specfmt"
	"github.com/scangen/scangen/internal/unicodeprop"
)

func main() {
	opts := runner.ParseFlags()

	in, spec, err := specfmt.Load(opts.Spec, unicodeprop.Lookup)
	if err != nil {
		gologger.Fatal().Msgf("loading %s: %v", opts.Spec, err)
	}
	for _, w := range spec.Warnings {
		gologger.Warning().Msg(w.Error())
	}

	root, err := spec.Root(in)
	if err != nil {
		gologger.Fatal().Msgf("resolving tokens: %v", err)
	}
	gologger.Verbose().Msgf("resolved %d tokens from %s", len(spec.Names()), opts.Spec)

	d, err := dfa.Build(in, root, spec.Names())
	if err != nil {
		gologger.Fatal().Msgf("building DFA: %v", err)
	}
	gologger.Verbose().Msgf("built %d states", d.NumStates())

	out := os.Stdout
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			gologger.Fatal().Msgf("creating %s: %v", opts.Output, err)
		}
		defer f.Close()
		out = f
	}

	switch opts.Mode {
	case "table":
		if err := emit.Table(out, d); err != nil {
			gologger.Fatal().Msgf("rendering table: %v", err)
		}
	case "dot":
		if err := emit.Dot(out, d); err != nil {
			gologger.Fatal().Msgf("rendering dot: %v", err)
		}
	case "scan":
		runScan(out, d, spec.Names(), opts.Input)
	}
}

func runScan(out *os.File, d *dfa.DFA, names []string, inputPath string) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		gologger.Fatal().Msgf("reading %s: %v", inputPath, err)
	}

	matches, scanErr := d.Scan([]rune(string(data)))
	for _, m := range matches {
		name := fmt.Sprintf("%d", m.Token)
		if int(m.Token) < len(names) {
			name = names[m.Token]
		}
		fmt.Fprintf(out, "%d:%d\t%s\t%q\n", m.Pos.Line, m.Pos.Column, name, m.Lexeme)
	}
	if scanErr != nil {
		gologger.Error().Msg(scanErr.Error())
		os.Exit(1)
	}
}
