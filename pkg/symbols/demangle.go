package symbols

import "github.com/ianlancetaylor/demangle"

var (
	demangleSimplified = []demangle.Option{demangle.NoParams, demangle.NoEnclosingParams, demangle.NoTemplateParams}
	demangleTemplates  = []demangle.Option{demangle.NoParams, demangle.NoEnclosingParams}
	demangleFull       = []demangle.Option{demangle.NoClones}
)

// DemangleStyles lists the values accepted by Demangle.
var DemangleStyles = []string{"none", "simplified", "templates", "full"}

// Demangle returns the human readable form of a C++ or Rust symbol. Names
// that are not mangled, and the "none" style, return name unchanged.
func Demangle(name, style string) string {
	switch style {
	case "simplified":
		return demangle.Filter(name, demangleSimplified...)
	case "templates":
		return demangle.Filter(name, demangleTemplates...)
	case "full":
		return demangle.Filter(name, demangleFull...)
	default:
		return name
	}
}
