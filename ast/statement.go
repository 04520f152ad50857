package ast

import (
	"github.com/viant/sequencescript/diag"
	"github.com/viant/sequencescript/lexer"
	"github.com/viant/sequencescript/optional"
)

// LocalVariableDefinition declares a local, e.g.
//
//	int x = 1;
//	string[] names = ["a", "b"];
type LocalVariableDefinition struct {
	Type         lexer.Token
	IsArray      bool
	Identifier   lexer.Token
	DefaultValue optional.Value[Expression] // *ArrayConstantNode when IsArray
}

// IfStatement is one link of an if / else if / else chain. The terminal
// else link has no condition.
type IfStatement struct {
	Keyword   lexer.Token
	Condition optional.Value[Expression]
	Body      *BodyNode
	Next      optional.Value[*IfStatement]
}

// SwitchCase is a `case (expr) body` arm
type SwitchCase struct {
	Expression Expression
	Body       *BodyNode
}

// SwitchStatement holds ordered cases and at most one default body
type SwitchStatement struct {
	Keyword    lexer.Token
	Expression Expression
	Cases      []SwitchCase
	Default    optional.Value[*BodyNode]
}

// ForStatement is `for ([init]; condition; increment) body`
type ForStatement struct {
	Keyword     lexer.Token
	Initializer optional.Value[Statement]
	Condition   Expression
	Incrementor Statement
	Body        *BodyNode
}

// WhileStatement is `while (condition) body`
type WhileStatement struct {
	Keyword   lexer.Token
	Condition Expression
	Body      *BodyNode
}

// ReturnStatement is `return [value];`
type ReturnStatement struct {
	Keyword lexer.Token
	Value   optional.Value[Expression]
}

type BreakStatement struct {
	Keyword lexer.Token
}

type ContinueStatement struct {
	Keyword lexer.Token
}

func (s *LocalVariableDefinition) Location() diag.CodeLocation { return s.Type.Location }
func (s *IfStatement) Location() diag.CodeLocation             { return s.Keyword.Location }
func (s *SwitchStatement) Location() diag.CodeLocation         { return s.Keyword.Location }
func (s *ForStatement) Location() diag.CodeLocation            { return s.Keyword.Location }
func (s *WhileStatement) Location() diag.CodeLocation          { return s.Keyword.Location }
func (s *ReturnStatement) Location() diag.CodeLocation         { return s.Keyword.Location }
func (s *BreakStatement) Location() diag.CodeLocation          { return s.Keyword.Location }
func (s *ContinueStatement) Location() diag.CodeLocation       { return s.Keyword.Location }

func (*LocalVariableDefinition) statementNode() {}
func (*IfStatement) statementNode()             {}
func (*SwitchStatement) statementNode()         {}
func (*ForStatement) statementNode()            {}
func (*WhileStatement) statementNode()          {}
func (*ReturnStatement) statementNode()         {}
func (*BreakStatement) statementNode()          {}
func (*ContinueStatement) statementNode()       {}
