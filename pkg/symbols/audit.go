package symbols

import (
	"github.com/samber/lo"
)

// PlatformSymbols are exported by some linkers and toolchains regardless of
// what the library declares. They are always allowed.
var PlatformSymbols = []string{
	"__bss_end__",
	"__bss_start__",
	"__bss_start",
	"__end__",
	"_bss_end__",
	"_edata",
	"_end",
	"_fini",
	"_init",
}

type AuditorOption func(*Auditor)

// WithPlatformSymbols replaces the list of always allowed symbols.
func WithPlatformSymbols(names ...string) AuditorOption {
	return func(a *Auditor) {
		a.platform = lo.SliceToMap(names, func(n string) (string, struct{}) {
			return n, struct{}{}
		})
	}
}

// Auditor classifies exported symbols against a Policy.
type Auditor struct {
	platform map[string]struct{}
}

func NewAuditor(opts ...AuditorOption) *Auditor {
	a := &Auditor{}
	WithPlatformSymbols(PlatformSymbols...)(a)
	for _, o := range opts {
		o(a)
	}
	return a
}

var defaultAuditor = NewAuditor()

// Audit checks exported against policy using the default platform symbols.
func Audit(library string, policy *Policy, exported []string) Report {
	return defaultAuditor.Audit(library, policy, exported)
}

// Audit returns the unknown symbols, in the order and multiplicity they
// appear in exported, and the missing mandatory symbols in declaration
// order. Neither input is modified.
func (a *Auditor) Audit(library string, policy *Policy, exported []string) Report {
	r := Report{Library: library}

	for _, sym := range exported {
		if policy.Allows(sym) || a.isPlatformSymbol(sym) {
			continue
		}
		r.Unknown = append(r.Unknown, sym)
	}

	present := lo.Keyify(exported)
	for _, sym := range policy.Mandatory() {
		if _, ok := present[sym]; !ok {
			r.Missing = append(r.Missing, sym)
		}
	}
	return r
}

func (a *Auditor) isPlatformSymbol(name string) bool {
	_, ok := a.platform[name]
	return ok
}
