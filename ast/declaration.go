package ast

import (
	"github.com/viant/sequencescript/diag"
	"github.com/viant/sequencescript/lexer"
	"github.com/viant/sequencescript/optional"
)

// ImportNode is `import "path";`
type ImportNode struct {
	Keyword lexer.Token
	Target  lexer.Token // string literal, lexeme is the requested path
}

// GlobalStatement is `global [const] type name [= value];`
type GlobalStatement struct {
	Keyword      lexer.Token
	Constant     bool
	Type         lexer.Token
	Identifier   lexer.Token
	DefaultValue optional.Value[Expression]
}

// ProcedureDefinitionNode is `proc type name(params) body`, or a body-less
// `extern proc` prototype
type ProcedureDefinitionNode struct {
	Keyword    lexer.Token
	ReturnType lexer.Token // VoidKw for procedures without a value
	Identifier lexer.Token
	Parameters []*ParameterDefinitionNode
	Extern     bool
	Body       *BodyNode // empty for extern prototypes
}

// ParameterDefinitionNode is a single `type name` parameter
type ParameterDefinitionNode struct {
	Type       lexer.Token
	Identifier lexer.Token
}

// MetaStatement is a `#key value` directive
type MetaStatement struct {
	Marker lexer.Token
	Key    lexer.Token
	Value  lexer.Token
}

func (n *ImportNode) Location() diag.CodeLocation              { return n.Keyword.Location }
func (n *GlobalStatement) Location() diag.CodeLocation         { return n.Keyword.Location }
func (n *ProcedureDefinitionNode) Location() diag.CodeLocation { return n.Keyword.Location }
func (n *ParameterDefinitionNode) Location() diag.CodeLocation { return n.Type.Location }
func (n *MetaStatement) Location() diag.CodeLocation           { return n.Marker.Location }

func (*ImportNode) declarationNode()              {}
func (*GlobalStatement) declarationNode()         {}
func (*ProcedureDefinitionNode) declarationNode() {}
func (*MetaStatement) declarationNode()           {}
