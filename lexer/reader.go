package lexer

import "github.com/viant/sequencescript/diag"

// tabWidth is the column advance of a tab character
const tabWidth = 4

// reader walks a fully decoded buffer and tracks the source location
type reader struct {
	buffer   []rune
	index    int
	location diag.CodeLocation
}

func newReader(path string, text string) *reader {
	return &reader{buffer: []rune(text), location: diag.NewLocation(path)}
}

// peek returns the rune amount positions ahead, or 0 past the end
func (r *reader) peek(amount int) rune {
	if r.index+amount >= len(r.buffer) {
		return 0
	}
	return r.buffer[r.index+amount]
}

func (r *reader) current() rune {
	return r.peek(0)
}

func (r *reader) eof() bool {
	return r.index >= len(r.buffer)
}

// step consumes amount runes, advancing the location
func (r *reader) step(amount int) {
	for i := 0; i < amount && !r.eof(); i++ {
		switch r.current() {
		case '\n':
			r.location.Line++
			r.location.Column = 0
		case '\t':
			r.location.Column += tabWidth
		default:
			r.location.Column++
		}
		r.index++
	}
}

// matches reports whether the buffer continues with text at the current position
func (r *reader) matches(text string) bool {
	i := 0
	for _, c := range text {
		if r.peek(i) != c {
			return false
		}
		i++
	}
	return true
}
