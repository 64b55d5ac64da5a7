package scss

// Symbol describes a name exported by one of the shared library modules.
type Symbol struct {
	Module  string
	Alias   string
	IsMixin bool
}

// Symbols resolves names shared across files. Implementations must be safe for
// concurrent reads.
type Symbols interface {
	Constant(name string) (Symbol, bool)
	Mixin(name string) (Symbol, bool)
}

// Declaration is a single "name: value" pair produced by a PropertyRewriter.
type Declaration struct {
	Name  string
	Value string
}

// PropertyRewriter may replace the rendering of a declaration. It receives the
// rendered property name and the rendered value items and returns the
// declarations to emit instead, or false to leave the property alone.
type PropertyRewriter func(name string, values []string) ([]Declaration, bool)

// Options control a single conversion.
type Options struct {
	// Quote is used for generated strings (map keys, charset values).
	Quote string
	// Autoprefixer expands @keyframes into vendor prefixed copies.
	Autoprefixer bool
	// IndentVueStyleBlock is the number of spaces prepended to every non-blank
	// output line.
	IndentVueStyleBlock int
	// Module is the use path of the file being converted. Names the registry
	// attributes to this module are left unqualified.
	Module string

	Symbols         Symbols
	GlobalVariables []string
	GlobalMixins    []string
	Rewriters       []PropertyRewriter
}

// Use is a module import emitted at the top of the output.
type Use struct {
	Module string
	Alias  string
}

// Result of a single conversion.
type Result struct {
	Text string
	Uses []Use
	// Variables and Mixins declared at the top level of the file, in order.
	Variables []string
	Mixins    []string
	Functions []string
	Warnings  []string
}
