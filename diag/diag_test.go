package diag_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/sequencescript/diag"
)

func TestCompileError_String(t *testing.T) {
	err := diag.CompileError{
		Location: diag.CodeLocation{File: "scripts/a.ss", Line: 3, Column: 8},
		Code:     diag.CodeUnexpectedCharacter,
		Message:  "Unexpected character '$'",
	}
	assert.Equal(t, "scripts/a.ss (3,8): error SS1001: Unexpected character '$'", err.String())
}

func TestList(t *testing.T) {
	list := &diag.List{}
	list.Error(diag.NewLocation("a.ss"), diag.CodeExpectedToken, "first")
	list.Error(diag.CodeLocation{File: "a.ss", Line: 2}, diag.CodeDuplicateDefault, "second")

	assert.Equal(t, 2, list.Len())
	assert.Equal(t, []string{"SS2001", "SS2007"}, list.Codes())

	buffer := &bytes.Buffer{}
	assert.NoError(t, diag.Write(buffer, list.Errors()))
	assert.Equal(t, "a.ss (1,0): error SS2001: first\na.ss (2,0): error SS2007: second\n", buffer.String())
}

func TestFailure_Error(t *testing.T) {
	one := &diag.Failure{Errors: []diag.CompileError{{Location: diag.NewLocation("x.ss"), Code: "SS1000", Message: "eof"}}}
	assert.Equal(t, "compilation failed: x.ss (1,0): error SS1000: eof", one.Error())

	many := &diag.Failure{Errors: make([]diag.CompileError, 3)}
	assert.Equal(t, "compilation failed with 3 errors", many.Error())
}
