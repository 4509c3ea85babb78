package structurizr

import (
	"strings"

	"github.com/ciarant/structurizr-completion/grammar"
)

// lexer is a byte scanner over DSL source. It never fails: stray characters
// are skipped, unterminated strings end at the line break.
type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

// lex tokenizes source. Comments (#, //, /* */) and spaces are dropped from
// the stream; newlines are tokens because the grammar is line-oriented.
func lex(source string) []grammar.Token {
	l := &lexer{src: source}
	var toks []grammar.Token
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n' || c == '\r':
			toks = append(toks, l.newline())
		case c == ' ' || c == '\t':
			l.advance(1)
		case c == '#':
			l.skipLine()
		case c == '/' && l.peek(1) == '/':
			l.skipLine()
		case c == '/' && l.peek(1) == '*':
			l.skipBlockComment()
		case c == '"':
			toks = append(toks, l.str())
		case c == '{':
			toks = append(toks, l.emit(tokLBrace, 1))
		case c == '}':
			toks = append(toks, l.emit(tokRBrace, 1))
		case c == '=':
			toks = append(toks, l.emit(tokAssign, 1))
		case c == '-' && l.peek(1) == '>':
			toks = append(toks, l.emit(tokArrow, 2))
		case isWordStart(c):
			toks = append(toks, l.word())
		default:
			l.advance(1)
		}
	}
	return toks
}

func (l *lexer) peek(n int) byte {
	if l.pos+n >= len(l.src) {
		return 0
	}
	return l.src[l.pos+n]
}

func (l *lexer) advance(n int) {
	for i := 0; i < n && l.pos < len(l.src); i++ {
		if l.src[l.pos] == '\n' {
			l.line++
			l.col = 0
		} else {
			l.col++
		}
		l.pos++
	}
}

func (l *lexer) emit(tt grammar.TokenType, width int) grammar.Token {
	tok := grammar.Token{Type: tt, Text: l.src[l.pos : l.pos+width], Line: l.line, Column: l.col, Offset: l.pos}
	l.advance(width)
	return tok
}

func (l *lexer) newline() grammar.Token {
	width := 1
	if l.src[l.pos] == '\r' && l.peek(1) == '\n' {
		width = 2
	}
	return l.emit(tokNewline, width)
}

func (l *lexer) skipLine() {
	for l.pos < len(l.src) && l.src[l.pos] != '\n' && l.src[l.pos] != '\r' {
		l.advance(1)
	}
}

func (l *lexer) skipBlockComment() {
	l.advance(2)
	for l.pos < len(l.src) {
		if l.src[l.pos] == '*' && l.peek(1) == '/' {
			l.advance(2)
			return
		}
		l.advance(1)
	}
}

// str consumes a quoted string, closing quote included when present. A line
// break ends an unterminated string.
func (l *lexer) str() grammar.Token {
	start := l.pos
	line, col := l.line, l.col
	l.advance(1)
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '\n' || c == '\r' {
			break
		}
		if c == '\\' && l.peek(1) == '"' {
			l.advance(2)
			continue
		}
		if c == '"' {
			l.advance(1)
			break
		}
		l.advance(1)
	}
	return grammar.Token{Type: tokString, Text: l.src[start:l.pos], Line: line, Column: col, Offset: start}
}

func (l *lexer) word() grammar.Token {
	start := l.pos
	line, col := l.line, l.col
	for l.pos < len(l.src) && isWordChar(l.src[l.pos]) {
		l.advance(1)
	}
	text := l.src[start:l.pos]
	tt := tokIdentifier
	if kw, ok := keywords[strings.ToLower(text)]; ok {
		tt = kw
	}
	return grammar.Token{Type: tt, Text: text, Line: line, Column: col, Offset: start}
}

func isWordStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isWordChar(c byte) bool {
	return isWordStart(c) || c == '.' || (c >= '0' && c <= '9')
}
