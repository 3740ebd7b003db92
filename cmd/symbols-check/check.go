package main

import (
	"context"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/grafana/symbols-check/pkg/symbols"
)

const (
	listerNM  = "nm"
	listerELF = "elf"
)

var errNotCompliant = errors.New("library is not compliant with its symbols file")

type checkParams struct {
	verbose     bool
	symbolsFile string
	lib         string
	nm          string
	lister      string
	demangle    string
}

func addCheckParams(app *kingpin.Application, params *checkParams) {
	app.Flag("symbols-file", "Path to the file listing the symbols the library may export.").Required().Envar("SYMBOLS_CHECK_SYMBOLS_FILE").StringVar(&params.symbolsFile)
	app.Flag("lib", "Path to the shared library to check.").Required().Envar("SYMBOLS_CHECK_LIB").StringVar(&params.lib)
	app.Flag("nm", "Path to the nm binary, or its name in $PATH.").Required().Envar("SYMBOLS_CHECK_NM").StringVar(&params.nm)
	app.Flag("lister", "How to list the library symbols: run nm, or read the ELF dynamic symbol table directly.").Default(listerNM).Envar("SYMBOLS_CHECK_LISTER").EnumVar(&params.lister, listerNM, listerELF)
	app.Flag("demangle", "Demangling style of unknown symbols in verbose logs.").Default("full").Envar("SYMBOLS_CHECK_DEMANGLE").EnumVar(&params.demangle, symbols.DemangleStyles...)
}

// check audits params.lib and writes the report to out. It returns
// errNotCompliant when the report is not empty.
func check(ctx context.Context, logger log.Logger, params *checkParams, lister symbols.SymbolLister, out io.Writer) error {
	policy, err := symbols.LoadPolicy(params.symbolsFile)
	if err != nil {
		if symbols.IsFormatError(err) {
			return err
		}
		return errors.Wrap(err, "failed to load symbols file")
	}
	level.Debug(logger).Log("msg", "loaded symbols file", "path", params.symbolsFile, "mandatory", len(policy.Mandatory()), "optional", len(policy.Optional()))

	exported, err := lister.ListSymbols(ctx, params.lib)
	if err != nil {
		return err
	}

	report := symbols.Audit(params.lib, policy, exported)
	for _, sym := range report.Unknown {
		level.Debug(logger).Log("msg", "unknown symbol", "lib", params.lib, "symbol", sym, "demangled", symbols.Demangle(sym, params.demangle))
	}
	if _, err := report.WriteTo(out); err != nil {
		return errors.Wrap(err, "failed to write report")
	}

	if err := report.Err(); err != nil {
		level.Debug(logger).Log("msg", "check failed", "lib", params.lib, "unknown", len(report.Unknown), "missing", len(report.Missing))
		return errNotCompliant
	}
	level.Debug(logger).Log("msg", "check passed", "lib", params.lib, "exported", len(exported))
	return nil
}
