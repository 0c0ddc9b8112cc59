package classdoc

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mvp-joe/pmdo-query/internal/srcfile"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// typeKinds maps declaration node kinds to the kind reported on descriptors.
var typeKinds = map[string]string{
	"class_declaration":         "class",
	"struct_declaration":        "struct",
	"interface_declaration":     "interface",
	"record_declaration":        "record",
	"record_struct_declaration": "record",
	"enum_declaration":          "enum",
}

// Indexer builds ClassDescriptors from C# source files.
type Indexer struct {
	grammar GrammarFunc
}

// NewIndexer creates an indexer backed by the shared C# grammar.
func NewIndexer() *Indexer {
	return &Indexer{grammar: Grammar}
}

// NewIndexerWithGrammar creates an indexer with a custom grammar source.
func NewIndexerWithGrammar(grammar GrammarFunc) *Indexer {
	return &Indexer{grammar: grammar}
}

// ParseFile returns every type declared in the file at path.
//
// Unreadable or unparseable files yield an empty list and an operator
// diagnostic. The only error returned is a grammar initialization failure.
func (ix *Indexer) ParseFile(ctx context.Context, path string) ([]ClassDescriptor, error) {
	if _, err := ix.grammar(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	source, err := srcfile.ReadFile(path)
	if err != nil {
		log.Printf("classdoc: skipping %s: %v", path, err)
		return nil, nil
	}
	return ix.ParseSource(ctx, path, source)
}

// ParseSource is ParseFile over in-memory source; path is only recorded on
// the descriptors.
func (ix *Indexer) ParseSource(ctx context.Context, path string, source []byte) ([]ClassDescriptor, error) {
	lang, err := ix.grammar()
	if err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGrammarUnavailable, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		log.Printf("classdoc: failed to parse %s", path)
		return nil, nil
	}
	defer tree.Close()

	root := tree.RootNode()
	fallbackNamespace := fileScopedNamespace(root, source)

	results := []ClassDescriptor{}
	walkTree(root, func(n *sitter.Node) bool {
		kind, ok := typeKinds[n.Kind()]
		if !ok {
			return true
		}
		if desc, ok := describeType(n, kind, source); ok {
			desc.FilePath = path
			if desc.Namespace == "" {
				desc.Namespace = fallbackNamespace
			}
			results = append(results, desc)
		}
		// Keep walking: nested types get their own descriptors.
		return true
	})

	return results, nil
}

func describeType(node *sitter.Node, kind string, source []byte) (ClassDescriptor, bool) {
	name := fieldText(node, "name", source)
	if name == "" {
		return ClassDescriptor{}, false
	}

	doc := ParseDocComment(precedingComments(node, source))
	desc := ClassDescriptor{
		Name:        name,
		Kind:        kind,
		Namespace:   enclosingNamespace(node, source),
		BaseType:    firstBaseType(node, source),
		IsPartial:   hasModifier(node, source, "partial"),
		Summary:     doc.Summary,
		Remarks:     doc.Remarks,
		InheritsDoc: doc.InheritsDoc,
		Fields:      []FieldDoc{},
		Methods:     []MethodDoc{},
		Line:        int(node.StartPosition().Row) + 1,
	}

	if kind == "enum" {
		return desc, true
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		body = findChildByType(node, "declaration_list")
	}
	if body == nil {
		// Positional records may have no body at all.
		return desc, true
	}
	implicitPublic := kind == "interface"

	for i := 0; i < int(body.ChildCount()); i++ {
		member := body.Child(uint(i))
		if member == nil {
			continue
		}

		switch member.Kind() {
		case "field_declaration", "property_declaration", "method_declaration":
		default:
			continue
		}

		public := hasModifier(member, source, "public") || (implicitPublic && !hasAccessModifier(member, source))
		if !public {
			continue
		}

		summary := memberSummary(member, source)
		switch member.Kind() {
		case "field_declaration":
			desc.Fields = append(desc.Fields, describeFields(member, source, summary)...)
		case "property_declaration":
			desc.Fields = append(desc.Fields, FieldDoc{
				Name:    fieldText(member, "name", source),
				Type:    fieldText(member, "type", source),
				Summary: summary,
			})
		case "method_declaration":
			desc.Methods = append(desc.Methods, describeMethod(member, source, summary))
		}
	}

	return desc, true
}

func memberSummary(member *sitter.Node, source []byte) string {
	doc := ParseDocComment(precedingComments(member, source))
	if doc.InheritsDoc {
		return InheritedDocumentation
	}
	return doc.Summary
}

// describeFields yields one FieldDoc per declarator: `public int A, B;` is two fields.
func describeFields(field *sitter.Node, source []byte, summary string) []FieldDoc {
	decl := findChildByType(field, "variable_declaration")
	if decl == nil {
		return nil
	}

	fieldType := fieldText(decl, "type", source)
	if fieldType == "" {
		for i := 0; i < int(decl.NamedChildCount()); i++ {
			child := decl.NamedChild(uint(i))
			if child != nil && child.Kind() != "variable_declarator" {
				fieldType = nodeText(child, source)
				break
			}
		}
	}
	if fieldType == "" {
		fieldType = "unknown"
	}

	var fields []FieldDoc
	for _, declarator := range findChildrenByType(decl, "variable_declarator") {
		name := fieldText(declarator, "name", source)
		if name == "" {
			if ident := findChildByType(declarator, "identifier"); ident != nil {
				name = nodeText(ident, source)
			} else {
				name = strings.TrimSpace(strings.SplitN(nodeText(declarator, source), "=", 2)[0])
			}
		}
		fields = append(fields, FieldDoc{Name: name, Type: fieldType, Summary: summary})
	}
	return fields
}

func describeMethod(method *sitter.Node, source []byte, summary string) MethodDoc {
	name := fieldText(method, "name", source)

	returns := fieldText(method, "returns", source)
	if returns == "" {
		returns = fieldText(method, "type", source)
	}
	if returns == "" {
		returns = "void"
	}

	params := collapseSpace(fieldText(method, "parameters", source))
	if params == "" {
		params = "()"
	}

	return MethodDoc{
		Name:      name,
		Signature: fmt.Sprintf("%s %s%s", returns, name, params),
		Summary:   summary,
	}
}

// firstBaseType returns the first entry of the declaration's own base list.
func firstBaseType(node *sitter.Node, source []byte) string {
	bases := findChildByType(node, "base_list")
	if bases == nil {
		return ""
	}
	for i := 0; i < int(bases.NamedChildCount()); i++ {
		if child := bases.NamedChild(uint(i)); child != nil {
			return strings.TrimSpace(strings.SplitN(nodeText(child, source), ",", 2)[0])
		}
	}
	return ""
}

// enclosingNamespace joins the names of every namespace around node, outermost first.
func enclosingNamespace(node *sitter.Node, source []byte) string {
	var parts []string
	for p := node.Parent(); p != nil; p = p.Parent() {
		switch p.Kind() {
		case "namespace_declaration", "file_scoped_namespace_declaration":
			parts = append([]string{fieldText(p, "name", source)}, parts...)
		}
	}
	return strings.Join(parts, ".")
}

// fileScopedNamespace finds a `namespace X;` declaration at the top level.
func fileScopedNamespace(root *sitter.Node, source []byte) string {
	if ns := findChildByType(root, "file_scoped_namespace_declaration"); ns != nil {
		return fieldText(ns, "name", source)
	}
	return ""
}
