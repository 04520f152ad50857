package ast

import (
	"github.com/viant/sequencescript/diag"
	"github.com/viant/sequencescript/lexer"
	"strconv"
	"strings"
)

// ConstantNode is a literal: numeric, string, true, false or null
type ConstantNode struct {
	Value lexer.Token
}

// VariableExpression is a read of a named variable
type VariableExpression struct {
	Name lexer.Token
}

// UnaryExpressionNode is a prefix operation: -x, +x, !x
type UnaryExpressionNode struct {
	Operator lexer.Token
	Operand  Expression
}

// BinaryExpressionNode represents Left Operator Right
//
//	x + 1
//	^ ^ ^
//	| | Right
//	| Operator
//	Left
type BinaryExpressionNode struct {
	Left     Expression
	Operator lexer.Token
	Right    Expression
}

// ProcedureCallExpressionNode is name(arguments)
type ProcedureCallExpressionNode struct {
	Identifier lexer.Token
	Arguments  []Expression
}

// VariableAssignmentExpression is x = value
type VariableAssignmentExpression struct {
	Variable lexer.Token
	Value    Expression
}

// VariableEditorExpression is x op= value. x++ and x-- are stored as
// x += 1 and x -= 1.
type VariableEditorExpression struct {
	Variable lexer.Token
	Operator lexer.Token
	Value    Expression
}

// ArrayConstantNode is [a, b, c]
type ArrayConstantNode struct {
	Start  diag.CodeLocation
	Values []Expression
}

// BogusExpression stands in for an expression that failed to parse
type BogusExpression struct {
	At diag.CodeLocation
}

func (e *ConstantNode) Location() diag.CodeLocation                 { return e.Value.Location }
func (e *VariableExpression) Location() diag.CodeLocation           { return e.Name.Location }
func (e *UnaryExpressionNode) Location() diag.CodeLocation          { return e.Operator.Location }
func (e *BinaryExpressionNode) Location() diag.CodeLocation         { return e.Left.Location() }
func (e *ProcedureCallExpressionNode) Location() diag.CodeLocation  { return e.Identifier.Location }
func (e *VariableAssignmentExpression) Location() diag.CodeLocation { return e.Variable.Location }
func (e *VariableEditorExpression) Location() diag.CodeLocation     { return e.Variable.Location }
func (e *ArrayConstantNode) Location() diag.CodeLocation            { return e.Start }
func (e *BogusExpression) Location() diag.CodeLocation              { return e.At }

func (e *ConstantNode) String() string {
	if e.Value.Kind == lexer.String {
		return strconv.Quote(e.Value.Lexeme)
	}
	return e.Value.Lexeme
}

func (e *VariableExpression) String() string { return e.Name.Lexeme }

func (e *UnaryExpressionNode) String() string {
	return "(" + e.Operator.Lexeme + e.Operand.String() + ")"
}

func (e *BinaryExpressionNode) String() string {
	return "(" + e.Left.String() + " " + e.Operator.Lexeme + " " + e.Right.String() + ")"
}

func (e *ProcedureCallExpressionNode) String() string {
	return e.Identifier.Lexeme + "(" + join(e.Arguments) + ")"
}

func (e *VariableAssignmentExpression) String() string {
	return "(" + e.Variable.Lexeme + " = " + e.Value.String() + ")"
}

func (e *VariableEditorExpression) String() string {
	return "(" + e.Variable.Lexeme + " " + e.Operator.Lexeme + "= " + e.Value.String() + ")"
}

func (e *ArrayConstantNode) String() string { return "[" + join(e.Values) + "]" }

func (e *BogusExpression) String() string { return "<bogus>" }

func join(expressions []Expression) string {
	parts := make([]string, len(expressions))
	for i, expression := range expressions {
		parts[i] = expression.String()
	}
	return strings.Join(parts, ", ")
}

func (*ConstantNode) statementNode()                 {}
func (*VariableExpression) statementNode()           {}
func (*UnaryExpressionNode) statementNode()          {}
func (*BinaryExpressionNode) statementNode()         {}
func (*ProcedureCallExpressionNode) statementNode()  {}
func (*VariableAssignmentExpression) statementNode() {}
func (*VariableEditorExpression) statementNode()     {}
func (*ArrayConstantNode) statementNode()            {}
func (*BogusExpression) statementNode()              {}

func (*ConstantNode) expressionNode()                 {}
func (*VariableExpression) expressionNode()           {}
func (*UnaryExpressionNode) expressionNode()          {}
func (*BinaryExpressionNode) expressionNode()         {}
func (*ProcedureCallExpressionNode) expressionNode()  {}
func (*VariableAssignmentExpression) expressionNode() {}
func (*VariableEditorExpression) expressionNode()     {}
func (*ArrayConstantNode) expressionNode()            {}
func (*BogusExpression) expressionNode()              {}
