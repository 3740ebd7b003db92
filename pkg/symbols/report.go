package symbols

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
)

// Report is the outcome of an audit.
type Report struct {
	Library string
	Unknown []string
	Missing []string
}

// Compliant is true when nothing is unknown and nothing is missing.
func (r Report) Compliant() bool {
	return len(r.Unknown) == 0 && len(r.Missing) == 0
}

// WriteTo prints one line per unknown symbol followed by one line per missing
// symbol.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, v := range r.violations() {
		n, err := fmt.Fprintln(w, v.Error())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Err returns nil for a compliant report and a multierror with one
// ComplianceViolation per offending symbol otherwise.
func (r Report) Err() error {
	var result *multierror.Error
	for _, v := range r.violations() {
		result = multierror.Append(result, v)
	}
	return result.ErrorOrNil()
}

func (r Report) violations() []ComplianceViolation {
	vs := make([]ComplianceViolation, 0, len(r.Unknown)+len(r.Missing))
	for _, sym := range r.Unknown {
		vs = append(vs, ComplianceViolation{Library: r.Library, Symbol: sym})
	}
	for _, sym := range r.Missing {
		vs = append(vs, ComplianceViolation{Library: r.Library, Symbol: sym, Missing: true})
	}
	return vs
}
