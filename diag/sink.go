package diag

import (
	"io"
	"sync"
)

// Sink receives diagnostics. Lexer and parser never stop on an error, they
// report it here and recover.
type Sink interface {
	Error(location CodeLocation, code, message string)
}

// List collects diagnostics in the order they were reported
type List struct {
	mux    sync.Mutex
	errors []CompileError
}

// Error implements Sink
func (l *List) Error(location CodeLocation, code, message string) {
	l.mux.Lock()
	defer l.mux.Unlock()
	l.errors = append(l.errors, CompileError{Location: location, Code: code, Message: message})
}

// Errors returns a copy of collected diagnostics
func (l *List) Errors() []CompileError {
	l.mux.Lock()
	defer l.mux.Unlock()
	result := make([]CompileError, len(l.errors))
	copy(result, l.errors)
	return result
}

// Len returns the number of collected diagnostics
func (l *List) Len() int {
	l.mux.Lock()
	defer l.mux.Unlock()
	return len(l.errors)
}

// Codes returns diagnostic codes in report order
func (l *List) Codes() []string {
	var result []string
	for _, e := range l.Errors() {
		result = append(result, e.Code)
	}
	return result
}

// Write renders errors one per line
func Write(w io.Writer, errors []CompileError) error {
	for _, e := range errors {
		if _, err := io.WriteString(w, e.String()+"\n"); err != nil {
			return err
		}
	}
	return nil
}
