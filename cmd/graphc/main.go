// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"graphc/internal/compiler"
	"graphc/internal/config"
	"graphc/internal/emit"
	"graphc/internal/errors"
	"graphc/internal/graphtext"
)

func main() {
	configPath := flag.String("config", "", "path to graphc.hcl (default: ./graphc.hcl when present)")
	outPath := flag.String("o", "", "write generated code to this file instead of stdout")
	verbose := flag.Int("v", -1, "log verbosity, overrides the config file")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: graphc [-config graphc.hcl] [-o out.c] [-v level] <model.graph>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	startTime := time.Now()
	path := flag.Arg(0)

	cfg, err := config.Resolve(*configPath)
	if err != nil {
		color.Red("failed to load config: %s", err)
		os.Exit(1)
	}

	verbosity := cfg.Verbosity
	if *verbose >= 0 {
		verbosity = *verbose
	}
	commonlog.Configure(verbosity, nil)

	bindings, err := cfg.Bindings()
	if err != nil {
		color.Red("invalid config: %s", err)
		os.Exit(1)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
		os.Exit(1)
	}

	code, err := compile(path, string(source), bindings)
	duration := time.Since(startTime)

	if err != nil {
		reporter := errors.NewErrorReporter(path, string(source))
		fmt.Fprint(os.Stderr, reporter.FormatError(errors.FromError(err)))
		color.Red("Compilation failed after %s", formatDuration(duration))
		os.Exit(1)
	}

	if *outPath == "" {
		fmt.Print(code)
	} else if err := os.WriteFile(*outPath, []byte(code), 0o644); err != nil {
		color.Red("failed to write %s: %s", *outPath, err)
		os.Exit(1)
	}

	color.New(color.FgGreen).Fprintf(os.Stderr, "Successfully compiled %s in %s\n", path, formatDuration(duration))
}

func compile(path, source string, bindings []compiler.KindBinding) (string, error) {
	m, err := graphtext.LoadSource(path, source)
	if err != nil {
		return "", err
	}
	return emit.New(bindings).Compile(m)
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
