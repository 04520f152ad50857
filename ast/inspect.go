package ast

import (
	"fmt"
	"github.com/viant/sequencescript/optional"
)

// Inspect traverses the tree rooted at node in depth-first order. It calls
// fn for each node; when fn returns false the children of that node are
// skipped.
func Inspect(node Node, fn func(Node) bool) {
	if !fn(node) {
		return
	}
	switch n := node.(type) {
	case *ProgramRootNode:
		for _, child := range n.Nodes {
			Inspect(child, fn)
		}
	case *BodyNode:
		for _, child := range n.Nodes {
			Inspect(child, fn)
		}

	case *ImportNode, *MetaStatement, *ParameterDefinitionNode:
	case *GlobalStatement:
		inspectOptional(n.DefaultValue, fn)
	case *ProcedureDefinitionNode:
		for _, parameter := range n.Parameters {
			Inspect(parameter, fn)
		}
		Inspect(n.Body, fn)

	case *LocalVariableDefinition:
		inspectOptional(n.DefaultValue, fn)
	case *IfStatement:
		inspectOptional(n.Condition, fn)
		Inspect(n.Body, fn)
		if next, ok := n.Next.Get(); ok {
			Inspect(next, fn)
		}
	case *SwitchStatement:
		Inspect(n.Expression, fn)
		for _, switchCase := range n.Cases {
			Inspect(switchCase.Expression, fn)
			Inspect(switchCase.Body, fn)
		}
		if body, ok := n.Default.Get(); ok {
			Inspect(body, fn)
		}
	case *ForStatement:
		if initializer, ok := n.Initializer.Get(); ok {
			Inspect(initializer, fn)
		}
		Inspect(n.Condition, fn)
		Inspect(n.Incrementor, fn)
		Inspect(n.Body, fn)
	case *WhileStatement:
		Inspect(n.Condition, fn)
		Inspect(n.Body, fn)
	case *ReturnStatement:
		inspectOptional(n.Value, fn)
	case *BreakStatement, *ContinueStatement:

	case *ConstantNode, *VariableExpression, *BogusExpression:
	case *UnaryExpressionNode:
		Inspect(n.Operand, fn)
	case *BinaryExpressionNode:
		Inspect(n.Left, fn)
		Inspect(n.Right, fn)
	case *ProcedureCallExpressionNode:
		for _, argument := range n.Arguments {
			Inspect(argument, fn)
		}
	case *VariableAssignmentExpression:
		Inspect(n.Value, fn)
	case *VariableEditorExpression:
		Inspect(n.Value, fn)
	case *ArrayConstantNode:
		for _, value := range n.Values {
			Inspect(value, fn)
		}
	default:
		panic(fmt.Sprintf("ast.Inspect: unexpected node type %T", node))
	}
}

func inspectOptional(value optional.Value[Expression], fn func(Node) bool) {
	if expression, ok := value.Get(); ok {
		Inspect(expression, fn)
	}
}
