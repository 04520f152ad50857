package diag

import "fmt"

// Lexical error codes
const (
	CodeUnterminatedString  = "SS1000"
	CodeUnexpectedCharacter = "SS1001"
	CodeUnknownEscape       = "SS1002"
	CodeUnterminatedComment = "SS1003"
)

// Syntax error codes
const (
	CodeExpectedToken      = "SS2001"
	CodeUnexpectedToken    = "SS2002"
	CodeDuplicateDefault   = "SS2007"
	CodeUnexpectedTopLevel = "SS2010"
)

// Resolution error codes
const (
	CodeUnresolvedImport = "SS3100"
)

// CompileError is a single diagnostic produced while compiling a file
type CompileError struct {
	Location CodeLocation `yaml:"location"`
	Code     string       `yaml:"code"`
	Message  string       `yaml:"message"`
}

func (e CompileError) String() string {
	return fmt.Sprintf("%s: error %s: %s", e.Location, e.Code, e.Message)
}

// Error implements error
func (e CompileError) Error() string {
	return e.String()
}

// Failure is returned once a compilation run has recorded any diagnostic
type Failure struct {
	Errors []CompileError
}

func (f *Failure) Error() string {
	if len(f.Errors) == 1 {
		return "compilation failed: " + f.Errors[0].String()
	}
	return fmt.Sprintf("compilation failed with %d errors", len(f.Errors))
}
