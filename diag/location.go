package diag

import "fmt"

// CodeLocation represents a position in a source file
type CodeLocation struct {
	File   string `yaml:"file"`   // File path
	Line   int    `yaml:"line"`   // 1-based line number
	Column int    `yaml:"column"` // 0-based column, tabs count as 4
}

// NewLocation returns the location of the first character of file
func NewLocation(file string) CodeLocation {
	return CodeLocation{File: file, Line: 1, Column: 0}
}

func (l CodeLocation) String() string {
	return fmt.Sprintf("%s (%d,%d)", l.File, l.Line, l.Column)
}
