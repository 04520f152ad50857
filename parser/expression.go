package parser

import (
	"github.com/viant/sequencescript/ast"
	"github.com/viant/sequencescript/diag"
	"github.com/viant/sequencescript/lexer"
)

func (p *Parser) parseExpression() ast.Expression {
	if p.kind() == lexer.Identifier {
		next := p.peek(1)
		if BinaryPrecedence(next.Kind) != 0 && !next.TrailingWhitespace && p.peek(2).Kind == lexer.Assign {
			return p.parseEditor()
		}
		if next.Kind == lexer.Assign {
			node := &ast.VariableAssignmentExpression{Variable: p.consume(lexer.Identifier)}
			p.consume(lexer.Assign)
			node.Value = p.parseExpression()
			return node
		}
	}
	return p.parseBinary(1)
}

// parseEditor parses `x op= value`
func (p *Parser) parseEditor() *ast.VariableEditorExpression {
	node := &ast.VariableEditorExpression{Variable: p.consume(lexer.Identifier)}
	node.Operator = p.current()
	p.step()
	p.consume(lexer.Assign)
	node.Value = p.parseExpression()
	return node
}

// parseBinary climbs operators binding at least as tight as minPrecedence.
// The right operand only takes strictly tighter operators, which makes every
// operator left associative.
func (p *Parser) parseBinary(minPrecedence int) ast.Expression {
	left := p.parseUnary()
	for !p.eof() {
		kind := p.kind()
		precedence := BinaryPrecedence(kind)
		if precedence == 0 || precedence < minPrecedence || isPostfix(kind) {
			break
		}
		operator := p.current()
		p.step()
		right := p.parseBinary(precedence + 1)
		left = &ast.BinaryExpressionNode{Left: left, Operator: operator, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	if UnaryPrecedence(p.kind()) == 0 {
		return p.parsePrimary()
	}
	operator := p.current()
	p.step()
	return &ast.UnaryExpressionNode{Operator: operator, Operand: p.parseUnary()}
}

func (p *Parser) parsePrimary() ast.Expression {
	token := p.current()
	switch token.Kind {
	case lexer.String, lexer.Numeric, lexer.TrueKw, lexer.FalseKw, lexer.NullKw:
		p.step()
		return &ast.ConstantNode{Value: token}
	case lexer.OpenParenthesis:
		return p.parseParenthesised()
	case lexer.Identifier:
		next := p.peek(1).Kind
		switch {
		case isPostfix(next):
			return p.parsePostfix()
		case next == lexer.OpenParenthesis:
			return p.parseCall()
		}
		p.step()
		return &ast.VariableExpression{Name: token}
	}
	p.unexpected(diag.CodeUnexpectedToken)
	p.step()
	return &ast.BogusExpression{At: token.Location}
}

// parsePostfix rewrites x++ and x-- as x += 1 and x -= 1
func (p *Parser) parsePostfix() *ast.VariableEditorExpression {
	variable := p.consume(lexer.Identifier)
	postfix := p.current()
	p.step()
	operator := lexer.Token{Location: postfix.Location, Kind: lexer.Plus, Lexeme: "+", TrailingWhitespace: postfix.TrailingWhitespace}
	if postfix.Kind == lexer.Decrement {
		operator.Kind, operator.Lexeme = lexer.Minus, "-"
	}
	one := lexer.Token{Location: postfix.Location, Kind: lexer.Numeric, Lexeme: "1", TrailingWhitespace: postfix.TrailingWhitespace}
	return &ast.VariableEditorExpression{
		Variable: variable,
		Operator: operator,
		Value:    &ast.ConstantNode{Value: one},
	}
}

func (p *Parser) parseCall() *ast.ProcedureCallExpressionNode {
	node := &ast.ProcedureCallExpressionNode{Identifier: p.consume(lexer.Identifier)}
	p.consume(lexer.OpenParenthesis)
	if p.kind() != lexer.CloseParenthesis {
		for !p.eof() {
			node.Arguments = append(node.Arguments, p.parseExpression())
			if p.kind() != lexer.Comma {
				break
			}
			p.consume(lexer.Comma)
		}
	}
	p.consume(lexer.CloseParenthesis)
	return node
}

func (p *Parser) parseParenthesised() ast.Expression {
	p.consume(lexer.OpenParenthesis)
	expression := p.parseExpression()
	p.consume(lexer.CloseParenthesis)
	return expression
}
