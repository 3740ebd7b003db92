package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/common/version"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/grafana/symbols-check/pkg/symbols"
)

var (
	consoleOutput = os.Stderr
	logger        = log.NewLogfmtLogger(consoleOutput)
)

func newApp(params *checkParams) *kingpin.Application {
	app := kingpin.New(filepath.Base(os.Args[0]), "Check the symbols exported by a shared library against a symbols file.").UsageWriter(os.Stdout)
	app.Version(version.Print("symbols-check"))
	app.HelpFlag.Short('h')
	app.Flag("verbose", "Enable verbose logging.").Short('v').Default("false").BoolVar(&params.verbose)
	addCheckParams(app, params)
	return app
}

func main() {
	params := &checkParams{}
	app := newApp(params)

	// parse command line arguments, a usage error exits with status 1
	kingpin.MustParse(app.Parse(os.Args[1:]))

	// enable verbose logging if requested
	if !params.verbose {
		logger = level.NewFilter(logger, level.AllowInfo())
	}

	ctx := context.Background()
	os.Exit(checkError(check(ctx, logger, params, newLister(logger, params), os.Stdout), os.Stdout))
}

func checkError(err error, w io.Writer) int {
	switch {
	case err == nil:
		return 0
	case err == errNotCompliant:
		// The report has already been printed.
	default:
		fmt.Fprintln(w, err)
	}
	return 1
}

func newLister(logger log.Logger, params *checkParams) symbols.SymbolLister {
	if params.lister == listerELF {
		return symbols.NewELFLister(logger)
	}
	return symbols.NewNMLister(logger, params.nm)
}
