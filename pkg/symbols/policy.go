// Package symbols checks the dynamic symbols exported by a shared library
// against a symbols file.
//
// A symbols file lists one symbol per line, optionally prefixed with the
// "(optional)" qualifier. Everything after a '#' is a comment:
//
//	# public entry points
//	foo_init
//	(optional) foo_debug   # only in debug builds
package symbols

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
)

const qualifierOptional = "(optional)"

// Entry is a single declaration of a symbols file.
type Entry struct {
	Name     string
	Optional bool
}

// Policy is the parsed content of a symbols file. It must not be modified
// after it has been returned by ParsePolicy.
type Policy struct {
	Entries []Entry

	mandatory map[string]struct{}
	optional  map[string]struct{}
}

// NewPolicy builds a policy from a list of entries.
func NewPolicy(entries ...Entry) *Policy {
	p := &Policy{
		Entries:   entries,
		mandatory: make(map[string]struct{}),
		optional:  make(map[string]struct{}),
	}
	for _, e := range entries {
		if e.Optional {
			p.optional[e.Name] = struct{}{}
		} else {
			p.mandatory[e.Name] = struct{}{}
		}
	}
	return p
}

// Mandatory returns the mandatory symbols in declaration order.
func (p *Policy) Mandatory() []string {
	return p.names(false)
}

// Optional returns the optional symbols in declaration order.
func (p *Policy) Optional() []string {
	return p.names(true)
}

func (p *Policy) names(optional bool) []string {
	names := make([]string, 0, len(p.Entries))
	for _, e := range p.Entries {
		if e.Optional == optional {
			names = append(names, e.Name)
		}
	}
	return lo.Uniq(names)
}

func (p *Policy) IsMandatory(name string) bool {
	_, ok := p.mandatory[name]
	return ok
}

func (p *Policy) IsOptional(name string) bool {
	_, ok := p.optional[name]
	return ok
}

// Allows reports whether the policy declares name, either way.
func (p *Policy) Allows(name string) bool {
	return p.IsMandatory(name) || p.IsOptional(name)
}

// LoadPolicy reads and parses the symbols file at path.
func LoadPolicy(path string) (*Policy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParsePolicy(f, path)
}

// ParsePolicy parses a symbols file. The name is used in error messages.
func ParsePolicy(r io.Reader, name string) (*Policy, error) {
	var (
		entries []Entry
		lineNo  int
		scanner = bufio.NewScanner(r)
	)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		switch len(fields) {
		case 1:
			entries = append(entries, Entry{Name: fields[0]})
		case 2:
			if fields[0] != qualifierOptional {
				return nil, FormatError{Path: name, Line: lineNo, Content: line, Qualifier: fields[0]}
			}
			entries = append(entries, Entry{Name: fields[1], Optional: true})
		default:
			return nil, FormatError{Path: name, Line: lineNo, Content: line}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return NewPolicy(entries...), nil
}
