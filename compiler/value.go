package compiler

import (
	"fmt"
	"github.com/viant/sequencescript/lexer"
	"github.com/viant/sequencescript/optional"
)

// ValueType is the static type of a variable, parameter or return value
type ValueType int

const (
	Integer ValueType = iota
	Floating
	Boolean
	String
	Handle
)

var valueTypeNames = [...]string{
	Integer:  "int",
	Floating: "float",
	Boolean:  "bool",
	String:   "string",
	Handle:   "handle",
}

func (v ValueType) String() string {
	if int(v) >= 0 && int(v) < len(valueTypeNames) {
		return valueTypeNames[v]
	}
	return fmt.Sprintf("ValueType(%d)", int(v))
}

// MarshalYAML renders the keyword form
func (v ValueType) MarshalYAML() (interface{}, error) {
	return v.String(), nil
}

// KeywordToValueType maps a type keyword to its value type
func KeywordToValueType(kind lexer.Kind) (ValueType, bool) {
	switch kind {
	case lexer.IntKw:
		return Integer, true
	case lexer.FloatKw:
		return Floating, true
	case lexer.BoolKw:
		return Boolean, true
	case lexer.StringKw:
		return String, true
	case lexer.HandleKw:
		return Handle, true
	}
	return 0, false
}

// KeywordToReturnType maps a return type keyword; void yields an absent type
func KeywordToReturnType(kind lexer.Kind) (optional.Value[ValueType], bool) {
	if kind == lexer.VoidKw {
		return optional.None[ValueType](), true
	}
	valueType, ok := KeywordToValueType(kind)
	if !ok {
		return optional.None[ValueType](), false
	}
	return optional.Of(valueType), true
}
