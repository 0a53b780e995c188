//go:build cgo

package jsast

import (
	"context"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Parse consumes a source file's text and extension and returns the
// ModuleFacts it declares. A Vue single-file-component source has its
// <script> block extracted first, using the block's lang attribute to
// pick the dialect beneath it.
func Parse(ctx context.Context, source []byte, ext string) (*ModuleFacts, error) {
	switch strings.ToLower(ext) {
	case ".vue":
		script, lang, ok := extractVueScript(source)
		if !ok {
			return Empty(), nil
		}
		return parseScript(ctx, script, vueLangExtension(lang))
	case ".ts", ".tsx", ".js", ".jsx":
		return parseScript(ctx, source, strings.ToLower(ext))
	default:
		return Empty(), nil
	}
}

func parseScript(ctx context.Context, source []byte, ext string) (*ModuleFacts, error) {
	lang, ok := languageFor(ext)
	if !ok {
		return Empty(), nil
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return Empty(), nil
	}

	facts := Empty()
	exportSeen := map[string]bool{}
	root := tree.RootNode()
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "import_statement":
			walkImport(child, source, facts)
		case "export_statement":
			walkExport(child, source, facts, exportSeen)
		}
	}
	return facts, nil
}

func languageFor(ext string) (*sitter.Language, bool) {
	switch ext {
	case ".ts":
		return typescript.GetLanguage(), true
	case ".tsx":
		return tsx.GetLanguage(), true
	case ".js", ".jsx":
		return javascript.GetLanguage(), true
	default:
		return nil, false
	}
}

func vueLangExtension(lang string) string {
	switch strings.ToLower(lang) {
	case "ts":
		return ".ts"
	case "tsx":
		return ".tsx"
	case "jsx":
		return ".jsx"
	default:
		return ".js"
	}
}

var (
	reScriptSetup = regexp.MustCompile(`(?s)<script\s+setup([^>]*)>(.*?)</script>`)
	reScriptPlain = regexp.MustCompile(`(?s)<script([^>]*)>(.*?)</script>`)
	reLangAttr    = regexp.MustCompile(`lang\s*=\s*["']([^"']+)["']`)
)

// extractVueScript locates the <script> block in a Vue single-file
// component, preferring <script setup> if both exist.
func extractVueScript(source []byte) (content []byte, lang string, ok bool) {
	if m := reScriptSetup.FindSubmatch(source); m != nil {
		return m[2], langFromAttrs(m[1]), true
	}
	if m := reScriptPlain.FindSubmatch(source); m != nil {
		return m[2], langFromAttrs(m[1]), true
	}
	return nil, "", false
}

func langFromAttrs(attrs []byte) string {
	if m := reLangAttr.FindSubmatch(attrs); m != nil {
		return string(m[1])
	}
	return "js"
}

func walkImport(node *sitter.Node, source []byte, facts *ModuleFacts) {
	typeOnly := false
	var clause, sourceNode *sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		c := node.Child(i)
		switch c.Type() {
		case "type":
			typeOnly = true
		case "import_clause":
			clause = c
		case "string":
			sourceNode = c
		}
	}
	specifier := stringText(sourceNode, source)
	if specifier == "" {
		return
	}
	if clause == nil {
		facts.SideEffectImports = append(facts.SideEffectImports, specifier)
		facts.Imports = append(facts.Imports, ImportRecord{Specifier: specifier, Kind: BindingSideEffect})
		return
	}

	for j := 0; j < int(clause.ChildCount()); j++ {
		cc := clause.Child(j)
		switch cc.Type() {
		case "identifier":
			facts.Imports = append(facts.Imports, ImportRecord{
				Specifier: specifier,
				Kind:      BindingDefault,
				LocalName: nodeText(cc, source),
			})
		case "namespace_import":
			if id := firstChildOfType(cc, "identifier"); id != nil {
				facts.Imports = append(facts.Imports, ImportRecord{
					Specifier: specifier,
					Kind:      BindingNamespace,
					LocalName: nodeText(id, source),
				})
			}
		case "named_imports":
			var bindings []NamedBinding
			for k := 0; k < int(cc.ChildCount()); k++ {
				spec := cc.Child(k)
				if spec.Type() != "import_specifier" {
					continue
				}
				nameNode := spec.ChildByFieldName("name")
				aliasNode := spec.ChildByFieldName("alias")
				if nameNode == nil {
					continue
				}
				imported := nodeText(nameNode, source)
				local := imported
				if aliasNode != nil {
					local = nodeText(aliasNode, source)
				}
				bindings = append(bindings, NamedBinding{
					ImportedName: imported,
					LocalName:    local,
					TypeOnly:     typeOnly || hasTypeKeywordChild(spec),
				})
			}
			facts.Imports = append(facts.Imports, ImportRecord{Specifier: specifier, Kind: BindingNamed, Named: bindings})
		}
	}
}

var (
	reStarReexport      = regexp.MustCompile(`^export\s*\*\s*from\s*["'](.+)["']\s*;?$`)
	reNamespaceReexport = regexp.MustCompile(`^export\s*\*\s*as\s+([A-Za-z_$][\w$]*)\s*from\s*["'](.+)["']\s*;?$`)
)

func walkExport(node *sitter.Node, source []byte, facts *ModuleFacts, seen map[string]bool) {
	declNode := node.ChildByFieldName("declaration")
	sourceNode := node.ChildByFieldName("source")

	var clauseNode *sitter.Node
	isDefault := false
	for i := 0; i < int(node.ChildCount()); i++ {
		c := node.Child(i)
		switch c.Type() {
		case "export_clause":
			clauseNode = c
		case "default":
			isDefault = true
		}
	}

	switch {
	case isDefault:
		// Covers both "export default <expr>;" and "export default function
		// Name() {}" / "export default class Name {}" — the declaration
		// keeps its own name in scope, but the export itself is always
		// named "default".
		addExport(facts, "default", ExportDefault, seen)
		return
	case declNode != nil:
		walkExportedDeclaration(declNode, source, facts, seen)
		return
	case clauseNode != nil && sourceNode == nil:
		for i := 0; i < int(clauseNode.ChildCount()); i++ {
			spec := clauseNode.Child(i)
			if spec.Type() != "export_specifier" {
				continue
			}
			nameNode := spec.ChildByFieldName("name")
			aliasNode := spec.ChildByFieldName("alias")
			if nameNode == nil {
				continue
			}
			exposed := nodeText(nameNode, source)
			if aliasNode != nil {
				exposed = nodeText(aliasNode, source)
			}
			addExport(facts, exposed, ExportDeclared, seen)
		}
		return
	case clauseNode != nil && sourceNode != nil:
		specifier := stringText(sourceNode, source)
		var items []ReexportItem
		for i := 0; i < int(clauseNode.ChildCount()); i++ {
			spec := clauseNode.Child(i)
			if spec.Type() != "export_specifier" {
				continue
			}
			nameNode := spec.ChildByFieldName("name")
			aliasNode := spec.ChildByFieldName("alias")
			if nameNode == nil {
				continue
			}
			sourceName := nodeText(nameNode, source)
			exposedName := sourceName
			if aliasNode != nil {
				exposedName = nodeText(aliasNode, source)
			}
			items = append(items, ReexportItem{SourceName: sourceName, ExposedName: exposedName})
		}
		facts.Reexports = append(facts.Reexports, ReexportRecord{Kind: ReexportNamed, Specifier: specifier, Items: items})
		return
	case sourceNode != nil:
		text := strings.TrimSpace(nodeText(node, source))
		if m := reNamespaceReexport.FindStringSubmatch(text); m != nil {
			facts.Reexports = append(facts.Reexports, ReexportRecord{
				Kind:        ReexportNamespace,
				Specifier:   m[2],
				ExposedName: m[1],
			})
			addExport(facts, m[1], ExportNamedAggregate, seen)
			return
		}
		if reStarReexport.MatchString(text) {
			facts.Reexports = append(facts.Reexports, ReexportRecord{
				Kind:      ReexportStar,
				Specifier: stringText(sourceNode, source),
			})
		}
	}
}

func walkExportedDeclaration(decl *sitter.Node, source []byte, facts *ModuleFacts, seen map[string]bool) {
	switch decl.Type() {
	case "lexical_declaration", "variable_declaration":
		for i := 0; i < int(decl.ChildCount()); i++ {
			declarator := decl.Child(i)
			if declarator.Type() != "variable_declarator" {
				continue
			}
			nameNode := declarator.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			for _, name := range extractPatternNames(nameNode, source) {
				addExport(facts, name, ExportDeclared, seen)
			}
		}
	default:
		if name := declName(decl, source); name != "" {
			addExport(facts, name, ExportDeclared, seen)
		}
	}
}

// extractPatternNames returns every bound identifier in a binding pattern,
// recursing through object/array destructuring so that
// `export const { a, b } = ...` contributes one record per name.
func extractPatternNames(node *sitter.Node, source []byte) []string {
	switch node.Type() {
	case "identifier":
		return []string{nodeText(node, source)}
	case "object_pattern":
		var names []string
		for i := 0; i < int(node.ChildCount()); i++ {
			c := node.Child(i)
			switch c.Type() {
			case "shorthand_property_identifier_pattern":
				names = append(names, nodeText(c, source))
			case "pair_pattern":
				if v := c.ChildByFieldName("value"); v != nil {
					names = append(names, extractPatternNames(v, source)...)
				}
			case "rest_pattern":
				if a := c.ChildByFieldName("argument"); a != nil {
					names = append(names, extractPatternNames(a, source)...)
				} else if int(c.ChildCount()) > 0 {
					names = append(names, extractPatternNames(c.Child(int(c.ChildCount())-1), source)...)
				}
			}
		}
		return names
	case "array_pattern":
		var names []string
		for i := 0; i < int(node.ChildCount()); i++ {
			c := node.Child(i)
			switch c.Type() {
			case "identifier", "object_pattern", "array_pattern":
				names = append(names, extractPatternNames(c, source)...)
			case "assignment_pattern":
				if left := c.ChildByFieldName("left"); left != nil {
					names = append(names, extractPatternNames(left, source)...)
				}
			}
		}
		return names
	case "assignment_pattern":
		if left := node.ChildByFieldName("left"); left != nil {
			return extractPatternNames(left, source)
		}
	}
	return nil
}

// declName extracts the bound name from a function/class/interface/type
// alias/enum (or ambient/namespace wrapper) declaration node.
func declName(node *sitter.Node, source []byte) string {
	if name := node.ChildByFieldName("name"); name != nil {
		return nodeText(name, source)
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		c := node.Child(i)
		switch c.Type() {
		case "identifier", "type_identifier":
			return nodeText(c, source)
		}
	}
	// Ambient/declare wrappers nest the real declaration one level down.
	for i := 0; i < int(node.ChildCount()); i++ {
		c := node.Child(i)
		if n := declName(c, source); n != "" {
			return n
		}
	}
	return ""
}

func hasTypeKeywordChild(node *sitter.Node) bool {
	if node.ChildCount() == 0 {
		return false
	}
	return node.Child(0).Type() == "type"
}

func firstChildOfType(node *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(node.ChildCount()); i++ {
		if c := node.Child(i); c.Type() == typ {
			return c
		}
	}
	return nil
}

func stringText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	if frag := firstChildOfType(node, "string_fragment"); frag != nil {
		return nodeText(frag, source)
	}
	raw := nodeText(node, source)
	return strings.Trim(raw, `"'`)
}

func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

func addExport(facts *ModuleFacts, name string, kind ExportKind, seen map[string]bool) {
	if name == "" || seen[name] {
		return
	}
	seen[name] = true
	facts.Exports = append(facts.Exports, ExportRecord{Name: name, Kind: kind})
}
