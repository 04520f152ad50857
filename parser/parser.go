package parser

import (
	"github.com/viant/sequencescript/ast"
	"github.com/viant/sequencescript/diag"
	"github.com/viant/sequencescript/lexer"
	"github.com/viant/sequencescript/optional"
	"strings"
)

// Parser consumes the flat token slice produced by the lexer and builds an AST.
//
// Grammar:
//
//	program    = (import | global | extern | proc | meta)*
//	import     = "import" ( STRING | "(" STRING ")" ) ";"
//	global     = "global" ["const"] type IDENT ["=" expression] ";"
//	extern     = "extern" "proc" (type | "void") IDENT "(" params ")" ";"
//	proc       = "proc" (type | "void") IDENT "(" params ")" body
//	meta       = "#" IDENT (STRING | NUMERIC | IDENT | "true" | "false")
//	body       = "{" statement* "}" | statement
//	statement  = local | if | switch | for | while | return | break | continue | expression ";"
//	expression = IDENT op "=" expression | IDENT "=" expression | binary
//	binary     = unary (op binary)*      precedence climbing
//	unary      = ("-" | "+" | "!") unary | primary
//	primary    = literal | IDENT ("++" | "--") | IDENT "(" args ")" | IDENT | "(" expression ")"
//
// The parser never stops on an error. A mismatched token is reported,
// replaced by an Unknown placeholder and skipped, so every call consumes
// at least one token and parsing terminates on any input.
type Parser struct {
	tokens []lexer.Token
	index  int
	sink   diag.Sink
	file   string
}

// New creates a parser over tokens
func New(tokens []lexer.Token, sink diag.Sink) *Parser {
	p := &Parser{tokens: tokens, sink: sink}
	if len(tokens) > 0 {
		p.file = tokens[0].Location.File
	}
	return p
}

// Parse parses tokens into a program
func Parse(tokens []lexer.Token, sink diag.Sink) *ast.ProgramRootNode {
	return New(tokens, sink).Parse()
}

// Parse parses all top level declarations
func (p *Parser) Parse() *ast.ProgramRootNode {
	p.index = 0
	root := &ast.ProgramRootNode{File: p.file}
	for !p.eof() {
		switch p.kind() {
		case lexer.ImportKw:
			root.Nodes = append(root.Nodes, p.parseImport())
		case lexer.GlobalKw:
			root.Nodes = append(root.Nodes, p.parseGlobal())
		case lexer.ProcKw:
			root.Nodes = append(root.Nodes, p.parseProcedure(false))
		case lexer.ExternKw:
			root.Nodes = append(root.Nodes, p.parseProcedure(true))
		case lexer.MetaCharacter:
			root.Nodes = append(root.Nodes, p.parseMeta())
		default:
			p.unexpected(diag.CodeUnexpectedTopLevel)
			p.step()
		}
	}
	return root
}

func (p *Parser) parseImport() *ast.ImportNode {
	node := &ast.ImportNode{Keyword: p.consume(lexer.ImportKw)}
	paren := p.tryConsume(lexer.OpenParenthesis)
	node.Target = p.consume(lexer.String)
	if paren {
		p.consume(lexer.CloseParenthesis)
	}
	p.consume(lexer.EndStatement)
	return node
}

func (p *Parser) parseGlobal() *ast.GlobalStatement {
	node := &ast.GlobalStatement{Keyword: p.consume(lexer.GlobalKw)}
	node.Constant = p.tryConsume(lexer.ConstKw)
	node.Type = p.consume(valueTypes...)
	node.Identifier = p.consume(lexer.Identifier)
	if p.kind() == lexer.Assign {
		p.consume(lexer.Assign)
		node.DefaultValue = optional.Of(p.parseExpression())
	}
	p.consume(lexer.EndStatement)
	return node
}

func (p *Parser) parseProcedure(extern bool) *ast.ProcedureDefinitionNode {
	node := &ast.ProcedureDefinitionNode{Extern: extern}
	if extern {
		node.Keyword = p.consume(lexer.ExternKw)
		p.consume(lexer.ProcKw)
	} else {
		node.Keyword = p.consume(lexer.ProcKw)
	}
	node.ReturnType = p.consume(returnTypes...)
	node.Identifier = p.consume(lexer.Identifier)

	p.consume(lexer.OpenParenthesis)
	if p.kind() != lexer.CloseParenthesis {
		for !p.eof() {
			parameter := &ast.ParameterDefinitionNode{}
			parameter.Type = p.consume(valueTypes...)
			parameter.Identifier = p.consume(lexer.Identifier)
			node.Parameters = append(node.Parameters, parameter)
			if p.kind() == lexer.CloseParenthesis {
				break
			}
			p.consume(lexer.Comma)
		}
	}
	p.consume(lexer.CloseParenthesis)

	if extern {
		node.Body = &ast.BodyNode{Start: p.location()}
		p.consume(lexer.EndStatement)
		return node
	}
	node.Body = p.parseBody()
	return node
}

func (p *Parser) parseMeta() *ast.MetaStatement {
	node := &ast.MetaStatement{Marker: p.consume(lexer.MetaCharacter)}
	node.Key = p.consume(lexer.Identifier)
	node.Value = p.consume(lexer.String, lexer.Numeric, lexer.Identifier, lexer.TrueKw, lexer.FalseKw)
	p.tryConsume(lexer.EndStatement)
	return node
}

// iteration

func (p *Parser) eof() bool {
	return p.index >= len(p.tokens)
}

// peek returns the token amount positions ahead; past the end it returns a
// synthetic EOF token located at the last real token.
func (p *Parser) peek(amount int) lexer.Token {
	if p.index+amount < len(p.tokens) {
		return p.tokens[p.index+amount]
	}
	location := diag.NewLocation(p.file)
	if len(p.tokens) > 0 {
		location = p.tokens[len(p.tokens)-1].Location
	}
	return lexer.Token{Location: location, Kind: lexer.EOF}
}

func (p *Parser) current() lexer.Token {
	return p.peek(0)
}

func (p *Parser) kind() lexer.Kind {
	return p.peek(0).Kind
}

func (p *Parser) location() diag.CodeLocation {
	return p.peek(0).Location
}

func (p *Parser) step() {
	p.index++
}

// consume returns the current token when it is one of kinds. Otherwise it
// reports the mismatch, skips the offending token and returns an Unknown
// placeholder.
func (p *Parser) consume(kinds ...lexer.Kind) lexer.Token {
	token := p.current()
	for _, kind := range kinds {
		if token.Kind == kind {
			p.step()
			return token
		}
	}
	expected := "Expected " + kinds[0].String()
	if len(kinds) > 1 {
		names := make([]string, len(kinds))
		for i, kind := range kinds {
			names[i] = kind.String()
		}
		expected = "Expected one of " + strings.Join(names, ", ")
	}
	p.sink.Error(token.Location, diag.CodeExpectedToken, describe(token)+": "+expected)
	p.step()
	return lexer.Token{Location: token.Location, Kind: lexer.Unknown, Lexeme: "INVALID", TrailingWhitespace: token.TrailingWhitespace}
}

func (p *Parser) tryConsume(kind lexer.Kind) bool {
	if p.kind() == kind {
		p.step()
		return true
	}
	return false
}

// unexpected reports the current token without consuming it
func (p *Parser) unexpected(code string) {
	token := p.current()
	p.sink.Error(token.Location, code, describe(token)+"!")
}

func describe(token lexer.Token) string {
	if token.Lexeme != "" {
		return "Unexpected token '" + token.Lexeme + "' (" + token.Kind.String() + ")"
	}
	return "Unexpected token type " + token.Kind.String()
}
