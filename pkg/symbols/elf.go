package symbols

import (
	"context"
	"debug/elf"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/samber/lo"
)

const elfToolName = "elf"

// ELFLister reads the .dynsym section of an ELF library directly instead of
// running an external tool.
type ELFLister struct {
	logger log.Logger
}

func NewELFLister(logger log.Logger) *ELFLister {
	return &ELFLister{logger: log.With(logger, "component", "elf-lister")}
}

func (l *ELFLister) ListSymbols(_ context.Context, library string) ([]string, error) {
	f, err := elf.Open(library)
	if err != nil {
		return nil, ToolInvocationError{Tool: elfToolName, Library: library, Err: err}
	}
	defer f.Close()

	syms, err := f.DynamicSymbols()
	if err == elf.ErrNoSymbols {
		level.Debug(l.logger).Log("msg", "library has no dynamic symbols", "library", library)
		return nil, nil
	}
	if err != nil {
		return nil, ToolInvocationError{Tool: elfToolName, Library: library, Err: err}
	}

	names := exportedDynamicSymbols(syms)
	level.Debug(l.logger).Log("msg", "listed symbols", "library", library, "count", len(names))
	return names, nil
}

// exportedDynamicSymbols keeps the symbols nm -D --defined-only would print.
func exportedDynamicSymbols(syms []elf.Symbol) []string {
	defined := lo.Filter(syms, func(sym elf.Symbol, _ int) bool {
		if sym.Name == "" || sym.Section == elf.SHN_UNDEF {
			return false
		}
		switch elf.ST_TYPE(sym.Info) {
		case elf.STT_SECTION, elf.STT_FILE:
			return false
		}
		switch elf.ST_BIND(sym.Info) {
		// STB_LOOS is STB_GNU_UNIQUE.
		case elf.STB_GLOBAL, elf.STB_WEAK, elf.STB_LOOS:
			return true
		}
		return false
	})
	return lo.Map(defined, func(sym elf.Symbol, _ int) string {
		return sym.Name
	})
}
