package symbols

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// SymbolLister lists the defined, dynamically exported symbols of a library.
type SymbolLister interface {
	ListSymbols(ctx context.Context, library string) ([]string, error)
}

// NMLister lists symbols by running an nm compatible tool:
//
//	nm --format=bsd -D --defined-only <library>
//
// Every line of its output must read "<address> <type> <name>".
type NMLister struct {
	logger log.Logger
	tool   string
}

// NewNMLister returns a lister running tool, which is either a path or a
// name looked up in $PATH.
func NewNMLister(logger log.Logger, tool string) *NMLister {
	return &NMLister{
		logger: log.With(logger, "component", "nm-lister"),
		tool:   tool,
	}
}

func (l *NMLister) ListSymbols(ctx context.Context, library string) ([]string, error) {
	path, err := exec.LookPath(l.tool)
	if err != nil {
		return nil, ToolInvocationError{Tool: l.tool, Library: library, Err: err}
	}

	args := []string{"--format=bsd", "-D", "--defined-only", library}
	level.Debug(l.logger).Log("msg", "listing symbols", "tool", path, "args", strings.Join(args, " "))

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &stdout
	// stderr is left nil and goes to the null device.
	if err := cmd.Run(); err != nil {
		return nil, ToolInvocationError{Tool: l.tool, Library: library, Err: err}
	}

	symbols, err := ParseNMOutput(&stdout)
	if err != nil {
		if oe, ok := err.(ToolOutputError); ok {
			oe.Tool = l.tool
			oe.Library = library
			return nil, oe
		}
		return nil, err
	}
	level.Debug(l.logger).Log("msg", "listed symbols", "library", library, "count", len(symbols))
	return symbols, nil
}

// ParseNMOutput extracts the symbol names from BSD formatted nm output.
// Blank lines are ignored; any other line must have exactly three fields.
// The returned ToolOutputError has only Line and Content set.
func ParseNMOutput(r io.Reader) ([]string, error) {
	var (
		symbols []string
		lineNo  int
		scanner = bufio.NewScanner(r)
	)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return nil, ToolOutputError{Line: lineNo, Content: line}
		}
		symbols = append(symbols, fields[2])
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return symbols, nil
}
