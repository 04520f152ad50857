package parser

import "github.com/viant/sequencescript/lexer"

// BinaryPrecedence returns the binding strength of a binary operator, or 0
// when kind is not one. Increment and decrement rank highest; they are
// consumed as postfix forms on identifiers and never as infix operators.
func BinaryPrecedence(kind lexer.Kind) int {
	switch kind {
	case lexer.Increment, lexer.Decrement:
		return 6
	case lexer.Star, lexer.Slash, lexer.Modulus:
		return 5
	case lexer.Plus, lexer.Minus:
		return 4
	case lexer.Equals, lexer.NotEquals, lexer.LessThan, lexer.GreaterThan, lexer.LessEquals, lexer.GreaterEquals:
		return 3
	case lexer.And:
		return 2
	case lexer.Or:
		return 1
	}
	return 0
}

// UnaryPrecedence returns the binding strength of a prefix operator, or 0.
// Prefix operators bind tighter than every binary operator.
func UnaryPrecedence(kind lexer.Kind) int {
	switch kind {
	case lexer.Minus, lexer.Plus, lexer.Not:
		return 7
	}
	return 0
}

func isPostfix(kind lexer.Kind) bool {
	return kind == lexer.Increment || kind == lexer.Decrement
}

// valueTypes are the keywords that can type a variable or parameter
var valueTypes = []lexer.Kind{
	lexer.IntKw,
	lexer.FloatKw,
	lexer.StringKw,
	lexer.HandleKw,
	lexer.BoolKw,
}

// returnTypes additionally allow void
var returnTypes = append([]lexer.Kind{lexer.VoidKw}, valueTypes...)

// IsValueType reports whether kind is a variable type keyword
func IsValueType(kind lexer.Kind) bool {
	for _, candidate := range valueTypes {
		if candidate == kind {
			return true
		}
	}
	return false
}
