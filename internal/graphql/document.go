package graphql

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// Kind is the operation type of a document
type Kind string

const (
	KindQuery    Kind = "query"
	KindMutation Kind = "mutation"
)

// Document is a named GraphQL operation with a fixed field selection.
// Documents are declared once as package-level values and never modified.
type Document struct {
	Name   string
	Kind   Kind
	Source string
}

// Field is one node of a document's selection tree
type Field struct {
	Name     string
	Alias    string
	Children []Field
}

// Variable is a declared operation variable and its GraphQL type
type Variable struct {
	Name string
	Type string
}

// NewDocument parses source and builds a Document from its single named
// query or mutation.
func NewDocument(source string) (Document, error) {
	op, err := parseOperation(source)
	if err != nil {
		return Document{}, err
	}

	var kind Kind
	switch op.Operation {
	case ast.Query:
		kind = KindQuery
	case ast.Mutation:
		kind = KindMutation
	default:
		return Document{}, fmt.Errorf("graphql: unsupported operation type %q", op.Operation)
	}

	return Document{Name: op.Name, Kind: kind, Source: source}, nil
}

// MustDocument is NewDocument for package-level declarations; it panics on
// malformed source.
func MustDocument(source string) Document {
	doc, err := NewDocument(source)
	if err != nil {
		panic(err)
	}
	return doc
}

// Parse returns the operation definition of doc
func Parse(doc Document) (*ast.OperationDefinition, error) {
	return parseOperation(doc.Source)
}

// Selection returns the field tree selected by doc
func Selection(doc Document) ([]Field, error) {
	op, err := Parse(doc)
	if err != nil {
		return nil, err
	}
	return fields(op.SelectionSet)
}

// Variables returns the variables declared by doc in declaration order
func Variables(doc Document) ([]Variable, error) {
	op, err := Parse(doc)
	if err != nil {
		return nil, err
	}

	vars := make([]Variable, 0, len(op.VariableDefinitions))
	for _, def := range op.VariableDefinitions {
		vars = append(vars, Variable{Name: def.Variable, Type: def.Type.String()})
	}
	return vars, nil
}

func parseOperation(source string) (*ast.OperationDefinition, error) {
	query, err := parser.ParseQuery(&ast.Source{Input: source})
	if err != nil {
		return nil, fmt.Errorf("graphql: parse document: %w", err)
	}
	if len(query.Fragments) > 0 {
		return nil, fmt.Errorf("graphql: fragments are not supported")
	}
	if len(query.Operations) != 1 {
		return nil, fmt.Errorf("graphql: expected exactly one operation, got %d", len(query.Operations))
	}

	op := query.Operations[0]
	if op.Name == "" {
		return nil, fmt.Errorf("graphql: operation must be named")
	}
	return op, nil
}

func fields(set ast.SelectionSet) ([]Field, error) {
	if len(set) == 0 {
		return nil, nil
	}

	out := make([]Field, 0, len(set))
	for _, sel := range set {
		f, ok := sel.(*ast.Field)
		if !ok {
			return nil, fmt.Errorf("graphql: unsupported selection %T", sel)
		}

		children, err := fields(f.SelectionSet)
		if err != nil {
			return nil, err
		}

		field := Field{Name: f.Name, Children: children}
		if f.Alias != f.Name {
			field.Alias = f.Alias
		}
		out = append(out, field)
	}
	return out, nil
}
