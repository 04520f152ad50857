package compiler

import (
	"github.com/viant/sequencescript/ast"
	"github.com/viant/sequencescript/diag"
	"github.com/viant/sequencescript/lexer"
	"github.com/viant/sequencescript/optional"
)

// StandardLibraryPath is the resolve path of the standard library unit
const StandardLibraryPath = "<stdlib>"

// Function is a procedure signature
type Function struct {
	Name           string
	ReturnType     optional.Value[ValueType]
	ParameterTypes []ValueType
	Extern         bool
	System         bool
}

// File is one compilation unit with its signature tables
type File struct {
	ResolvePath string
	InputPath   string
	OutputPath  string
	Tokens      []lexer.Token
	AST         *ast.ProgramRootNode
	Functions   map[string]*Function
	Globals     map[string]ValueType
	// Imports holds resolved paths of imported units, deduplicated in source order
	Imports     []string
	Diagnostics *diag.List
}

func newFile(resolvePath, inputPath, outputPath string) *File {
	return &File{
		ResolvePath: resolvePath,
		InputPath:   inputPath,
		OutputPath:  outputPath,
		Functions:   map[string]*Function{},
		Globals:     map[string]ValueType{},
		Diagnostics: &diag.List{},
	}
}

// declare fills the signature tables from top level declarations
func (f *File) declare(system bool) {
	for _, node := range f.AST.Nodes {
		switch actual := node.(type) {
		case *ast.GlobalStatement:
			if valueType, ok := KeywordToValueType(actual.Type.Kind); ok {
				f.Globals[actual.Identifier.Lexeme] = valueType
			}
		case *ast.ProcedureDefinitionNode:
			if function, ok := newFunction(actual, system); ok {
				f.Functions[function.Name] = function
			}
		}
	}
}

// newFunction builds a signature; a procedure whose return or parameter type
// failed to parse has no signature, so ParameterTypes always lines up with
// the declared parameters.
func newFunction(node *ast.ProcedureDefinitionNode, system bool) (*Function, bool) {
	returnType, ok := KeywordToReturnType(node.ReturnType.Kind)
	if !ok || node.Identifier.Kind != lexer.Identifier {
		return nil, false
	}
	function := &Function{
		Name:           node.Identifier.Lexeme,
		ReturnType:     returnType,
		ParameterTypes: make([]ValueType, 0, len(node.Parameters)),
		Extern:         node.Extern,
		System:         system,
	}
	for _, parameter := range node.Parameters {
		valueType, ok := KeywordToValueType(parameter.Type.Kind)
		if !ok {
			return nil, false
		}
		function.ParameterTypes = append(function.ParameterTypes, valueType)
	}
	return function, true
}

// Meta returns #key value directives, nil when there are none
func (f *File) Meta() map[string]string {
	if f.AST == nil {
		return nil
	}
	var result map[string]string
	for _, node := range f.AST.Nodes {
		if meta, ok := node.(*ast.MetaStatement); ok {
			if result == nil {
				result = map[string]string{}
			}
			result[meta.Key.Lexeme] = meta.Value.Lexeme
		}
	}
	return result
}

func (f *File) addImport(resolvePath string) {
	for _, candidate := range f.Imports {
		if candidate == resolvePath {
			return
		}
	}
	f.Imports = append(f.Imports, resolvePath)
}
