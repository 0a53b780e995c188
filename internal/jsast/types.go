// Package jsast parses a single JavaScript/TypeScript/Vue source file into
// ModuleFacts: the declared exports, imports, and re-exports a module graph
// builder needs, without resolving any specifier to a file on disk.
package jsast

// ExportKind distinguishes how an ExportRecord came to exist.
type ExportKind string

const (
	// ExportDeclared is a named export originating in this file.
	ExportDeclared ExportKind = "declared"
	// ExportDefault is the file's default export, always named "default".
	ExportDefault ExportKind = "default"
	// ExportNamedAggregate is the synthetic export record created for the
	// exposed name of `export * as ns from "..."`.
	ExportNamedAggregate ExportKind = "named_aggregate"
)

// ExportRecord is one exported name declared or aggregated by a file.
// Export records within a ModuleFacts are unique by Name.
type ExportRecord struct {
	Name string
	Kind ExportKind
}

// BindingKind distinguishes the four import forms.
type BindingKind string

const (
	BindingNamed      BindingKind = "named"
	BindingDefault    BindingKind = "default"
	BindingNamespace  BindingKind = "namespace"
	BindingSideEffect BindingKind = "side_effect"
)

// NamedBinding is one name bound by a named import, e.g. the `a` and
// `b as c` in `import { a, b as c } from "m"`.
type NamedBinding struct {
	ImportedName string
	LocalName    string
	TypeOnly     bool
}

// ImportRecord is one import declaration. A statement like
// `import x, { a } from "m"` produces two ImportRecords sharing the same
// Specifier: one BindingDefault, one BindingNamed.
type ImportRecord struct {
	Specifier string
	Kind      BindingKind
	// Named holds the bound names when Kind == BindingNamed.
	Named []NamedBinding
	// LocalName holds the bound identifier when Kind is BindingDefault or
	// BindingNamespace.
	LocalName string
}

// ReexportKind distinguishes the three `export ... from` forms.
type ReexportKind string

const (
	ReexportStar      ReexportKind = "star"
	ReexportNamed     ReexportKind = "named"
	ReexportNamespace ReexportKind = "namespace"
)

// ReexportItem is one `source_name` or `source_name as exposed_name` pair
// inside a named re-export.
type ReexportItem struct {
	SourceName  string
	ExposedName string
}

// ReexportRecord is one `export ... from "specifier"` declaration.
type ReexportRecord struct {
	Kind      ReexportKind
	Specifier string
	// Items holds the (source, exposed) pairs when Kind == ReexportNamed.
	Items []ReexportItem
	// ExposedName holds the `ns` in `export * as ns from "m"` when
	// Kind == ReexportNamespace.
	ExposedName string
}

// ModuleFacts is everything the graph builder needs from one parsed file,
// before any specifier has been resolved to a path on disk.
type ModuleFacts struct {
	Exports           []ExportRecord
	Imports           []ImportRecord
	Reexports         []ReexportRecord
	SideEffectImports []string
}

// Empty returns the zero-value ModuleFacts used for files that fail to
// read or parse: a file that contributes nothing to imports or exports
// but can still be reached if referenced.
func Empty() *ModuleFacts {
	return &ModuleFacts{}
}
