package lexer

import (
	"fmt"
	"github.com/viant/sequencescript/diag"
	"golang.org/x/text/encoding"
	textunicode "golang.org/x/text/encoding/unicode"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

type operator struct {
	text string
	kind Kind
}

// operators is tried in order; a multi-character operator must come before
// any operator that is its prefix, otherwise "==" would lex as two "=".
var operators = []operator{
	{";", EndStatement},
	{",", Comma},

	{"(", OpenParenthesis},
	{")", CloseParenthesis},
	{"[", OpenBrackets},
	{"]", CloseBrackets},
	{"{", OpenBraces},
	{"}", CloseBraces},

	{"++", Increment},
	{"--", Decrement},

	{"==", Equals},
	{"!=", NotEquals},
	{">=", GreaterEquals},
	{"<=", LessEquals},

	{"&&", And},
	{"||", Or},

	{"+", Plus},
	{"-", Minus},
	{"*", Star},
	{"/", Slash},
	{"%", Modulus},

	{"!", Not},

	{"<", LessThan},
	{">", GreaterThan},

	{"=", Assign},
	{":", Colon},
	{"#", MetaCharacter},
}

// Lexer holds all mutable state for a single scanning pass over one file.
type Lexer struct {
	*reader
	tokens []Token
	sink   diag.Sink
}

// New creates a lexer over already decoded text
func New(path string, text string, sink diag.Sink) *Lexer {
	return &Lexer{reader: newReader(path, text), sink: sink}
}

// Tokenize decodes r with enc (UTF-8 when nil) and returns its tokens.
// Lexical problems go to sink; the returned error only reports read failures.
func Tokenize(path string, r io.Reader, enc encoding.Encoding, sink diag.Sink) ([]Token, error) {
	if enc == nil {
		enc = textunicode.UTF8BOM
	}
	data, err := io.ReadAll(enc.NewDecoder().Reader(r))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return TokenizeString(path, string(data), sink), nil
}

// TokenizeString tokenizes in-memory text
func TokenizeString(path string, text string, sink diag.Sink) []Token {
	lexer := New(path, text, sink)
	lexer.Process()
	return lexer.Tokens()
}

// Tokens returns the tokens produced so far
func (l *Lexer) Tokens() []Token {
	return l.tokens
}

// Process scans the whole buffer. Every iteration consumes at least one
// character, so malformed input always terminates.
func (l *Lexer) Process() {
	for !l.eof() {
		c := l.current()
		if unicode.IsSpace(c) || unicode.IsControl(c) {
			l.step(1)
		} else if c == '/' && l.peek(1) == '/' {
			l.skipLineComment()
		} else if c == '/' && l.peek(1) == '*' {
			l.skipBlockComment()
		} else if l.scanOperator() {
			continue
		} else if isIdentifierRune(c, true) {
			l.scanIdentifier()
		} else if c == '"' {
			l.scanString()
		} else if isDigit(c) || (c == '.' && isDigit(l.peek(1))) {
			l.scanNumeric()
		} else {
			l.sink.Error(l.location, diag.CodeUnexpectedCharacter, "Unexpected character '"+FormatCharacter(c)+"'")
			l.step(1)
		}
	}
}

func (l *Lexer) push(location diag.CodeLocation, kind Kind, lexeme string) {
	l.tokens = append(l.tokens, Token{
		Location:           location,
		Kind:               kind,
		Lexeme:             lexeme,
		TrailingWhitespace: unicode.IsSpace(l.current()),
	})
}

func (l *Lexer) scanOperator() bool {
	for _, op := range operators {
		if !l.matches(op.text) {
			continue
		}
		location := l.location
		l.step(utf8.RuneCountInString(op.text))
		l.push(location, op.kind, op.text)
		return true
	}
	return false
}

func (l *Lexer) scanIdentifier() {
	location := l.location
	builder := strings.Builder{}
	for isIdentifierRune(l.current(), false) {
		builder.WriteRune(l.current())
		l.step(1)
	}
	text := builder.String()
	l.push(location, Keyword(text), text)
}

func (l *Lexer) scanString() {
	location := l.location
	builder := strings.Builder{}
	escaped := false
	l.step(1)
	for {
		if l.eof() {
			l.sink.Error(l.location, diag.CodeUnterminatedString, "Reached end of file whilst parsing string!")
			break
		}
		c := l.current()
		if escaped {
			builder.WriteRune(l.escape(c))
			escaped = false
		} else if c == '\\' {
			escaped = true
		} else if c == '"' {
			l.step(1)
			break
		} else {
			builder.WriteRune(c)
		}
		l.step(1)
	}
	l.push(location, String, builder.String())
}

// escape resolves the character after a backslash. Unknown escapes are
// reported and the character itself is kept.
func (l *Lexer) escape(c rune) rune {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '\\':
		return '\\'
	case '"':
		return '"'
	}
	l.sink.Error(l.location, diag.CodeUnknownEscape, "Unrecognized escape code \\'"+FormatCharacter(c)+"'")
	return c
}

// scanNumeric reads digits with at most one '.', dropping '_' separators.
// A trailing 'f' on a whole number turns it into a float literal.
func (l *Lexer) scanNumeric() {
	location := l.location
	builder := strings.Builder{}
	hasDecimal := false
	for {
		c := l.current()
		if c == '.' && !hasDecimal {
			builder.WriteRune(c)
			hasDecimal = true
		} else if isDigit(c) {
			builder.WriteRune(c)
		} else if c != '_' {
			break
		}
		l.step(1)
	}
	if l.current() == 'f' && !hasDecimal {
		builder.WriteString(".0")
		l.step(1)
	}
	l.push(location, Numeric, builder.String())
}

func (l *Lexer) skipLineComment() {
	l.step(2)
	for !l.eof() && l.current() != '\n' {
		l.step(1)
	}
}

func (l *Lexer) skipBlockComment() {
	location := l.location
	l.step(2)
	for !l.eof() && !l.matches("*/") {
		l.step(1)
	}
	if l.eof() {
		l.sink.Error(location, diag.CodeUnterminatedComment, "Reached end of file whilst parsing block comment!")
		return
	}
	l.step(2)
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isIdentifierRune(c rune, start bool) bool {
	if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' {
		return true
	}
	return !start && isDigit(c)
}

// FormatCharacter renders c for diagnostics
func FormatCharacter(c rune) string {
	switch c {
	case '\n':
		return "[newline]"
	case '\r':
		return "[carriage return]"
	case '\t':
		return "[tab]"
	}
	if unicode.IsControl(c) {
		return "CONTROL CHAR"
	}
	return string(c)
}
