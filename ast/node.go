// Package ast defines the SequenceScript syntax tree.
//
// Every category is a closed set: Declaration, Statement and Expression are
// implemented only by the types of this package (enforced by unexported
// marker methods), so a type switch over them can be exhaustive. Parts that
// may be absent use optional.Value; parse errors are represented by
// BogusExpression, never by nil.
package ast

import (
	"github.com/viant/sequencescript/diag"
)

// Node is implemented by every syntax tree node
type Node interface {
	Location() diag.CodeLocation
}

// Declaration is a top level construct of a file
type Declaration interface {
	Node
	declarationNode()
}

// Statement is a construct allowed inside a procedure body
type Statement interface {
	Node
	statementNode()
}

// Expression is a node producing a value; every expression is also a statement
type Expression interface {
	Statement
	expressionNode()
	String() string
}

// ProgramRootNode is the root of one parsed file
type ProgramRootNode struct {
	File  string
	Nodes []Declaration
}

func (p *ProgramRootNode) Location() diag.CodeLocation { return diag.NewLocation(p.File) }

// Imports returns import declarations in source order
func (p *ProgramRootNode) Imports() []*ImportNode {
	var result []*ImportNode
	for _, node := range p.Nodes {
		if importNode, ok := node.(*ImportNode); ok {
			result = append(result, importNode)
		}
	}
	return result
}

// BodyNode is an ordered list of statements
type BodyNode struct {
	Start diag.CodeLocation
	Nodes []Statement
}

func (b *BodyNode) Location() diag.CodeLocation { return b.Start }
