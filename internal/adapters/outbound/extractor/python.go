package extractor

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/archlint/archlint/internal/domain"
)

const maxFileSize = 10 * 1024 * 1024

// PythonExtractor implements domain.ModuleExtractor with tree-sitter.
// Safe for concurrent use: each Extract call creates its own parser.
type PythonExtractor struct{}

func New() *PythonExtractor {
	return &PythonExtractor{}
}

// Extract parses one Python file into its module descriptor. Files that
// cannot be parsed come back as degraded descriptors together with a
// *domain.ParseError, so the scan can index them and keep going.
func (e *PythonExtractor) Extract(ctx context.Context, file domain.SourceFile) (*domain.ModuleDescriptor, error) {
	content, err := os.ReadFile(file.AbsPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file.RelPath, err)
	}
	if len(content) > maxFileSize {
		return domain.DegradedDescriptor(file.RelPath, content),
			&domain.ParseError{File: file.RelPath, Message: fmt.Sprintf("file exceeds %d bytes", maxFileSize)}
	}
	if !utf8.Valid(content) {
		return domain.DegradedDescriptor(file.RelPath, content),
			&domain.ParseError{File: file.RelPath, Message: "content is not valid UTF-8"}
	}

	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", file.RelPath, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.HasError() {
		return domain.DegradedDescriptor(file.RelPath, content),
			&domain.ParseError{File: file.RelPath, Message: "syntax error"}
	}

	modulePath := domain.ModulePathFor(file.RelPath)
	desc := &domain.ModuleDescriptor{
		Path:     modulePath,
		File:     file.RelPath,
		Checksum: domain.ContentChecksum(content),
	}

	// Relative imports resolve against the containing package. For a package
	// __init__ the package is the module itself, so resolution runs against
	// the full dunder module name, the same name Python resolves against.
	resolveFrom := modulePath
	if strings.HasSuffix(file.RelPath, "__init__.py") {
		if modulePath == "" {
			resolveFrom = "__init__"
		} else {
			resolveFrom = modulePath + ".__init__"
		}
	}

	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		switch child.Type() {
		case "import_statement":
			desc.Imports = append(desc.Imports, importStatement(child, content)...)
		case "import_from_statement":
			if ref, ok := importFromStatement(child, content, resolveFrom); ok {
				desc.Imports = append(desc.Imports, ref)
			}
		case "class_definition":
			desc.Classes = append(desc.Classes, classDefinition(child, content, nil))
		case "decorated_definition":
			if cls, ok := decoratedClass(child, content); ok {
				desc.Classes = append(desc.Classes, cls)
			}
		}
	}
	return desc, nil
}

// importStatement handles `import foo` and `import foo as bar`, possibly
// comma-separated.
func importStatement(node *sitter.Node, content []byte) []domain.ImportRef {
	var refs []domain.ImportRef
	line := int(node.StartPoint().Row + 1)
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "dotted_name":
			refs = append(refs, domain.ImportRef{
				Target: text(child, content), Kind: domain.ImportAbsolute, Line: line,
			})
		case "aliased_import":
			for j := 0; j < int(child.ChildCount()); j++ {
				if gc := child.Child(j); gc.Type() == "dotted_name" {
					refs = append(refs, domain.ImportRef{
						Target: text(gc, content), Kind: domain.ImportAbsolute, Line: line,
					})
					break
				}
			}
		}
	}
	return refs
}

// importFromStatement handles `from x import y`, including relative and
// wildcard forms. The recorded target is the source module, not the
// imported names.
func importFromStatement(node *sitter.Node, content []byte, fromModule string) (domain.ImportRef, bool) {
	var (
		target    string
		kind      = domain.ImportAbsolute
		relative  bool
		sawImport bool
	)
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "relative_import":
			relative = true
			var prefix, name string
			for j := 0; j < int(child.ChildCount()); j++ {
				gc := child.Child(j)
				switch gc.Type() {
				case "import_prefix":
					prefix = text(gc, content)
				case "dotted_name":
					name = text(gc, content)
				}
			}
			target = domain.ResolveRelativeImport(fromModule, prefix+name)
		case "import":
			sawImport = true
		case "dotted_name":
			// Names after the import keyword are irrelevant at module
			// granularity; only the source module matters.
			if !sawImport && target == "" && !relative {
				target = text(child, content)
			}
		case "wildcard_import":
			kind = domain.ImportWildcard
		}
	}
	if relative && kind != domain.ImportWildcard {
		kind = domain.ImportRelative
	}
	if target == "" {
		// Relative reference climbing past the project root.
		return domain.ImportRef{}, false
	}
	return domain.ImportRef{Target: target, Kind: kind, Line: int(node.StartPoint().Row + 1)}, true
}

func classDefinition(node *sitter.Node, content []byte, decorators []string) domain.ClassDescriptor {
	cls := domain.ClassDescriptor{
		Decorators: decorators,
		Line:       int(node.StartPoint().Row + 1),
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "identifier":
			if cls.Name == "" {
				cls.Name = text(child, content)
			}
		case "argument_list":
			for j := 0; j < int(child.ChildCount()); j++ {
				arg := child.Child(j)
				if arg.Type() == "identifier" || arg.Type() == "attribute" {
					cls.Bases = append(cls.Bases, text(arg, content))
				}
			}
		}
	}
	return cls
}

func decoratedClass(node *sitter.Node, content []byte) (domain.ClassDescriptor, bool) {
	decorators := extractDecorators(node, content)
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "class_definition" {
			cls := classDefinition(child, content, decorators)
			// The class line is where the first decorator starts, matching
			// how editors jump to the declaration.
			cls.Line = int(node.StartPoint().Row + 1)
			return cls, true
		}
	}
	return domain.ClassDescriptor{}, false
}

func extractDecorators(node *sitter.Node, content []byte) []string {
	var decorators []string
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() != "decorator" {
			continue
		}
		for j := 0; j < int(child.ChildCount()); j++ {
			gc := child.Child(j)
			switch gc.Type() {
			case "identifier", "attribute":
				decorators = append(decorators, text(gc, content))
			case "call":
				for k := 0; k < int(gc.ChildCount()); k++ {
					ggc := gc.Child(k)
					if ggc.Type() == "identifier" || ggc.Type() == "attribute" {
						decorators = append(decorators, text(ggc, content))
						break
					}
				}
			}
		}
	}
	return decorators
}

func text(node *sitter.Node, content []byte) string {
	return string(content[node.StartByte():node.EndByte()])
}

var _ domain.ModuleExtractor = (*PythonExtractor)(nil)
