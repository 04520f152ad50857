package parser

import (
	"github.com/viant/sequencescript/ast"
	"github.com/viant/sequencescript/diag"
	"github.com/viant/sequencescript/lexer"
	"github.com/viant/sequencescript/optional"
)

func (p *Parser) parseBody() *ast.BodyNode {
	body := &ast.BodyNode{Start: p.location()}
	if p.kind() != lexer.OpenBraces {
		body.Nodes = []ast.Statement{p.parseStatement(true)}
		return body
	}
	p.consume(lexer.OpenBraces)
	for !p.eof() && p.kind() != lexer.CloseBraces {
		if p.tryConsume(lexer.EndStatement) {
			continue
		}
		body.Nodes = append(body.Nodes, p.parseStatement(true))
	}
	p.consume(lexer.CloseBraces)
	return body
}

// parseStatement parses one statement; requireEnd controls whether a bare
// expression must be terminated by ';' (false for a for-loop incrementor).
func (p *Parser) parseStatement(requireEnd bool) ast.Statement {
	for p.kind() == lexer.EndStatement {
		p.step()
	}
	switch kind := p.kind(); {
	case IsValueType(kind):
		return p.parseLocalVariable()
	case kind == lexer.IfKw:
		return p.parseIf()
	case kind == lexer.SwitchKw:
		return p.parseSwitch()
	case kind == lexer.ForKw:
		return p.parseFor()
	case kind == lexer.WhileKw:
		return p.parseWhile()
	case kind == lexer.ReturnKw:
		return p.parseReturn()
	case kind == lexer.BreakKw:
		statement := &ast.BreakStatement{Keyword: p.consume(lexer.BreakKw)}
		p.consume(lexer.EndStatement)
		return statement
	case kind == lexer.ContinueKw:
		statement := &ast.ContinueStatement{Keyword: p.consume(lexer.ContinueKw)}
		p.consume(lexer.EndStatement)
		return statement
	}
	expression := p.parseExpression()
	if requireEnd {
		p.consume(lexer.EndStatement)
	}
	return expression
}

func (p *Parser) parseLocalVariable() *ast.LocalVariableDefinition {
	node := &ast.LocalVariableDefinition{Type: p.consume(valueTypes...)}
	if p.tryConsume(lexer.OpenBrackets) {
		p.consume(lexer.CloseBrackets)
		node.IsArray = true
	}
	node.Identifier = p.consume(lexer.Identifier)
	if p.tryConsume(lexer.Assign) {
		if node.IsArray {
			node.DefaultValue = optional.Of[ast.Expression](p.parseArrayConstant())
		} else {
			node.DefaultValue = optional.Of(p.parseExpression())
		}
	}
	p.consume(lexer.EndStatement)
	return node
}

func (p *Parser) parseArrayConstant() *ast.ArrayConstantNode {
	node := &ast.ArrayConstantNode{Start: p.location()}
	p.consume(lexer.OpenBrackets)
	if p.kind() != lexer.CloseBrackets {
		for !p.eof() {
			node.Values = append(node.Values, p.parseExpression())
			if p.kind() != lexer.Comma {
				break
			}
			p.consume(lexer.Comma)
		}
	}
	p.consume(lexer.CloseBrackets)
	return node
}

// parseIf parses an if statement and its else if / else continuation.
func (p *Parser) parseIf() *ast.IfStatement {
	node := &ast.IfStatement{Keyword: p.consume(lexer.IfKw)}
	node.Condition = optional.Of(p.parseParenthesised())
	node.Body = p.parseBody()
	if p.kind() != lexer.ElseKw {
		return node
	}
	elseKeyword := p.consume(lexer.ElseKw)
	if p.kind() == lexer.IfKw {
		node.Next = optional.Of(p.parseIf())
		return node
	}
	node.Next = optional.Of(&ast.IfStatement{Keyword: elseKeyword, Body: p.parseBody()})
	return node
}

func (p *Parser) parseSwitch() *ast.SwitchStatement {
	node := &ast.SwitchStatement{Keyword: p.consume(lexer.SwitchKw)}
	node.Expression = p.parseParenthesised()
	p.consume(lexer.OpenBraces)
	for !p.eof() && p.kind() != lexer.CloseBraces {
		switch p.kind() {
		case lexer.CaseKw:
			p.consume(lexer.CaseKw)
			switchCase := ast.SwitchCase{Expression: p.parseParenthesised()}
			p.tryConsume(lexer.Colon)
			switchCase.Body = p.parseBody()
			node.Cases = append(node.Cases, switchCase)
		case lexer.DefaultKw:
			keyword := p.consume(lexer.DefaultKw)
			p.tryConsume(lexer.Colon)
			body := p.parseBody()
			if node.Default.IsPresent() {
				p.sink.Error(keyword.Location, diag.CodeDuplicateDefault, "Switch statement contains more than one default case!")
				continue
			}
			node.Default = optional.Of(body)
		case lexer.EndStatement:
			p.step()
		default:
			p.unexpected(diag.CodeUnexpectedToken)
			p.step()
		}
	}
	p.consume(lexer.CloseBraces)
	return node
}

func (p *Parser) parseFor() *ast.ForStatement {
	node := &ast.ForStatement{Keyword: p.consume(lexer.ForKw)}
	p.consume(lexer.OpenParenthesis)
	if !p.tryConsume(lexer.EndStatement) {
		node.Initializer = optional.Of(p.parseStatement(true))
	}
	node.Condition = p.parseExpression()
	p.consume(lexer.EndStatement)
	node.Incrementor = p.parseStatement(false)
	p.consume(lexer.CloseParenthesis)
	node.Body = p.parseBody()
	return node
}

func (p *Parser) parseWhile() *ast.WhileStatement {
	node := &ast.WhileStatement{Keyword: p.consume(lexer.WhileKw)}
	node.Condition = p.parseParenthesised()
	node.Body = p.parseBody()
	return node
}

func (p *Parser) parseReturn() *ast.ReturnStatement {
	node := &ast.ReturnStatement{Keyword: p.consume(lexer.ReturnKw)}
	if p.kind() != lexer.EndStatement {
		node.Value = optional.Of(p.parseExpression())
	}
	p.consume(lexer.EndStatement)
	return node
}
