package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/sequencescript/lexer"
)

func TestBinaryPrecedence(t *testing.T) {
	var testCases = []struct {
		kind   lexer.Kind
		expect int
	}{
		{kind: lexer.Increment, expect: 6},
		{kind: lexer.Decrement, expect: 6},
		{kind: lexer.Star, expect: 5},
		{kind: lexer.Slash, expect: 5},
		{kind: lexer.Modulus, expect: 5},
		{kind: lexer.Plus, expect: 4},
		{kind: lexer.Minus, expect: 4},
		{kind: lexer.Equals, expect: 3},
		{kind: lexer.GreaterEquals, expect: 3},
		{kind: lexer.And, expect: 2},
		{kind: lexer.Or, expect: 1},
		{kind: lexer.Assign, expect: 0},
		{kind: lexer.Not, expect: 0},
		{kind: lexer.Identifier, expect: 0},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, BinaryPrecedence(testCase.kind), testCase.kind.String())
	}
}

func TestUnaryPrecedence(t *testing.T) {
	for _, kind := range []lexer.Kind{lexer.Minus, lexer.Plus, lexer.Not} {
		assert.Greater(t, UnaryPrecedence(kind), BinaryPrecedence(lexer.Increment), kind.String())
	}
	assert.Zero(t, UnaryPrecedence(lexer.Star))
}

func TestIsValueType(t *testing.T) {
	assert.True(t, IsValueType(lexer.HandleKw))
	assert.False(t, IsValueType(lexer.VoidKw))
	assert.Contains(t, returnTypes, lexer.VoidKw)
}
