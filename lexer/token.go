package lexer

import (
	"fmt"
	"github.com/viant/sequencescript/diag"
)

// Kind identifies the category of a lexed token.
type Kind int

const (
	Unknown Kind = iota // placeholder substituted by the parser on errors
	EOF                 // synthetic end of input

	// Literals
	Identifier
	Numeric
	String
	EndStatement // ;

	// Paired delimiters
	OpenParenthesis  // (
	CloseParenthesis // )
	OpenBraces       // {
	CloseBraces      // }
	OpenBrackets     // [
	CloseBrackets    // ]

	// Punctuation
	Comma // ,
	Colon // :

	// Arithmetic operators
	Star    // *
	Slash   // /
	Modulus // %
	Plus    // +
	Minus   // -

	// Comparison
	Equals        // ==
	NotEquals     // !=
	LessThan      // <
	GreaterThan   // >
	LessEquals    // <=
	GreaterEquals // >=

	// Logical
	And // &&
	Or  // ||
	Not // !

	Increment // ++
	Decrement // --

	Assign // =

	// Keywords
	ImportKw
	SwitchKw
	CaseKw
	DefaultKw

	ReturnKw
	ContinueKw
	BreakKw

	IfKw
	ElseKw

	ForKw
	WhileKw

	TrueKw
	FalseKw

	NullKw

	VoidKw
	IntKw
	FloatKw
	BoolKw
	StringKw
	HandleKw

	GlobalKw
	ConstKw
	ExternKw

	ProcKw

	MetaCharacter // #
)

var kindNames = [...]string{
	Unknown:          "Unknown",
	EOF:              "EOF",
	Identifier:       "Identifier",
	Numeric:          "Numeric",
	String:           "String",
	EndStatement:     "EndStatement",
	OpenParenthesis:  "OpenParenthesis",
	CloseParenthesis: "CloseParenthesis",
	OpenBraces:       "OpenBraces",
	CloseBraces:      "CloseBraces",
	OpenBrackets:     "OpenBrackets",
	CloseBrackets:    "CloseBrackets",
	Comma:            "Comma",
	Colon:            "Colon",
	Star:             "Star",
	Slash:            "Slash",
	Modulus:          "Modulus",
	Plus:             "Plus",
	Minus:            "Minus",
	Equals:           "Equals",
	NotEquals:        "NotEquals",
	LessThan:         "LessThan",
	GreaterThan:      "GreaterThan",
	LessEquals:       "LessEquals",
	GreaterEquals:    "GreaterEquals",
	And:              "And",
	Or:               "Or",
	Not:              "Not",
	Increment:        "Increment",
	Decrement:        "Decrement",
	Assign:           "Assign",
	ImportKw:         "ImportKw",
	SwitchKw:         "SwitchKw",
	CaseKw:           "CaseKw",
	DefaultKw:        "DefaultKw",
	ReturnKw:         "ReturnKw",
	ContinueKw:       "ContinueKw",
	BreakKw:          "BreakKw",
	IfKw:             "IfKw",
	ElseKw:           "ElseKw",
	ForKw:            "ForKw",
	WhileKw:          "WhileKw",
	TrueKw:           "TrueKw",
	FalseKw:          "FalseKw",
	NullKw:           "NullKw",
	VoidKw:           "VoidKw",
	IntKw:            "IntKw",
	FloatKw:          "FloatKw",
	BoolKw:           "BoolKw",
	StringKw:         "StringKw",
	HandleKw:         "HandleKw",
	GlobalKw:         "GlobalKw",
	ConstKw:          "ConstKw",
	ExternKw:         "ExternKw",
	ProcKw:           "ProcKw",
	MetaCharacter:    "MetaCharacter",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// keywords maps identifier text to its keyword kind.
var keywords = map[string]Kind{
	"import":  ImportKw,
	"switch":  SwitchKw,
	"case":    CaseKw,
	"default": DefaultKw,

	"break":    BreakKw,
	"return":   ReturnKw,
	"continue": ContinueKw,

	"if":   IfKw,
	"else": ElseKw,

	"for":   ForKw,
	"while": WhileKw,

	"void":   VoidKw,
	"int":    IntKw,
	"float":  FloatKw,
	"bool":   BoolKw,
	"string": StringKw,
	"handle": HandleKw,

	"true":  TrueKw,
	"false": FalseKw,

	"global": GlobalKw,
	"const":  ConstKw,
	"extern": ExternKw,

	"proc": ProcKw,

	"null": NullKw,
}

// Keyword returns the keyword kind for text, or Identifier
func Keyword(text string) Kind {
	if kind, ok := keywords[text]; ok {
		return kind
	}
	return Identifier
}

// Token is a single lexical unit produced by the lexer.
type Token struct {
	Location diag.CodeLocation
	Kind     Kind
	Lexeme   string // source text; escapes resolved for strings, '_' removed for numerics
	// TrailingWhitespace is set when the character following the token is whitespace
	TrailingWhitespace bool
}

func (t Token) String() string {
	return fmt.Sprintf("%s: %s %q (ws: %v)", t.Location, t.Kind, t.Lexeme, t.TrailingWhitespace)
}
