package kotlin

import (
	"strings"

	"github.com/ciarant/structurizr-completion/grammar"
)

// lexer is a byte scanner over script source. It never fails: stray
// characters are skipped, unterminated strings and comments end at the line
// break or EOF. Comments, string pieces and labels stay in the stream so a
// caret inside them maps onto a token the ignore-set can veto.
type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

var op2 = map[string]grammar.TokenType{
	"->": tokArrow,
	"++": tokIncr,
	"--": tokDecr,
	"&&": tokConj,
	"||": tokDisj,
	"==": tokEqEq,
	"!=": tokNotEq,
	"<=": tokLessEq,
	">=": tokGreaterEq,
	"..": tokRange,
	"?:": tokElvis,
}

var op1 = map[byte]grammar.TokenType{
	'(': tokLParen,
	')': tokRParen,
	'{': tokLBrace,
	'}': tokRBrace,
	'[': tokLBracket,
	']': tokRBracket,
	'.': tokDot,
	',': tokComma,
	':': tokColon,
	';': tokSemicolon,
	'=': tokAssign,
	'+': tokAdd,
	'-': tokSub,
	'*': tokMult,
	'/': tokDiv,
	'%': tokMod,
	'!': tokExcl,
	'<': tokLess,
	'>': tokGreater,
	'?': tokQuest,
}

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
		case c == '/' && l.peek(1) == '/':
			toks = append(toks, l.lineComment())
		case c == '/' && l.peek(1) == '*':
			toks = append(toks, l.blockComment())
		case c == '"':
			toks = l.str(toks)
		case c == '\'':
			toks = append(toks, l.char())
		case isDigit(c):
			toks = append(toks, l.number())
		case c == '!' && l.wordAhead(1, "in"):
			toks = append(toks, l.emit(tokNotIn, 3))
		case c == '!' && l.wordAhead(1, "is"):
			toks = append(toks, l.emit(tokNotIs, 3))
		case c == '@' && isWordStart(l.peek(1)):
			toks = append(toks, l.labelRef())
		case isWordStart(c):
			toks = append(toks, l.word())
		default:
			if tt, ok := op2[l.pair()]; ok {
				toks = append(toks, l.emit(tt, 2))
			} else if tt, ok := op1[c]; ok {
				toks = append(toks, l.emit(tt, 1))
			} else {
				l.advance(1)
			}
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

// pair returns the two bytes at the scan position, for the op2 lookup.
func (l *lexer) pair() string {
	if l.pos+2 > len(l.src) {
		return ""
	}
	return l.src[l.pos : l.pos+2]
}

// wordAhead reports whether the word w starts n bytes ahead and ends on a
// word boundary. Distinguishes !in from !inner.
func (l *lexer) wordAhead(n int, w string) bool {
	if !strings.HasPrefix(l.src[l.pos+n:], w) {
		return false
	}
	after := l.pos + n + len(w)
	return after >= len(l.src) || !isWordChar(l.src[after])
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

func (l *lexer) take(tt grammar.TokenType, start, line, col int) grammar.Token {
	return grammar.Token{Type: tt, Text: l.src[start:l.pos], Line: line, Column: col, Offset: start}
}

func (l *lexer) newline() grammar.Token {
	width := 1
	if l.src[l.pos] == '\r' && l.peek(1) == '\n' {
		width = 2
	}
	return l.emit(tokNewline, width)
}

func (l *lexer) lineComment() grammar.Token {
	start, line, col := l.pos, l.line, l.col
	for l.pos < len(l.src) && l.src[l.pos] != '\n' && l.src[l.pos] != '\r' {
		l.advance(1)
	}
	return l.take(tokLineComment, start, line, col)
}

// blockComment consumes a /* */ comment, nesting included.
func (l *lexer) blockComment() grammar.Token {
	start, line, col := l.pos, l.line, l.col
	l.advance(2)
	depth := 1
	for l.pos < len(l.src) && depth > 0 {
		switch {
		case l.src[l.pos] == '/' && l.peek(1) == '*':
			depth++
			l.advance(2)
		case l.src[l.pos] == '*' && l.peek(1) == '/':
			depth--
			l.advance(2)
		default:
			l.advance(1)
		}
	}
	return l.take(tokBlockComment, start, line, col)
}

// str lexes a string as separate open-quote, text and close-quote tokens.
// Triple-quoted strings may span lines; single-quoted ones end at the line
// break when unterminated.
func (l *lexer) str(toks []grammar.Token) []grammar.Token {
	if strings.HasPrefix(l.src[l.pos:], `"""`) {
		toks = append(toks, l.emit(tokTripleQuoteOpen, 3))
		start, line, col := l.pos, l.line, l.col
		for l.pos < len(l.src) && !strings.HasPrefix(l.src[l.pos:], `"""`) {
			l.advance(1)
		}
		if l.pos > start {
			toks = append(toks, l.take(tokStringText, start, line, col))
		}
		if strings.HasPrefix(l.src[l.pos:], `"""`) {
			toks = append(toks, l.emit(tokTripleQuoteClose, 3))
		}
		return toks
	}
	toks = append(toks, l.emit(tokQuoteOpen, 1))
	start, line, col := l.pos, l.line, l.col
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '"' || c == '\n' || c == '\r' {
			break
		}
		if c == '\\' {
			l.advance(2)
			continue
		}
		l.advance(1)
	}
	if l.pos > start {
		toks = append(toks, l.take(tokStringText, start, line, col))
	}
	if l.pos < len(l.src) && l.src[l.pos] == '"' {
		toks = append(toks, l.emit(tokQuoteClose, 1))
	}
	return toks
}

func (l *lexer) char() grammar.Token {
	start, line, col := l.pos, l.line, l.col
	l.advance(1)
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '\n' || c == '\r' {
			break
		}
		if c == '\\' {
			l.advance(2)
			continue
		}
		if c == '\'' {
			l.advance(1)
			break
		}
		l.advance(1)
	}
	return l.take(tokCharacterLiteral, start, line, col)
}

func (l *lexer) number() grammar.Token {
	start, line, col := l.pos, l.line, l.col
	tt := tokIntegerLiteral
	switch {
	case l.src[l.pos] == '0' && (l.peek(1) == 'x' || l.peek(1) == 'X'):
		l.advance(2)
		for l.pos < len(l.src) && isHexDigit(l.src[l.pos]) {
			l.advance(1)
		}
		tt = tokHexLiteral
	case l.src[l.pos] == '0' && (l.peek(1) == 'b' || l.peek(1) == 'B'):
		l.advance(2)
		for l.pos < len(l.src) && (l.src[l.pos] == '0' || l.src[l.pos] == '1' || l.src[l.pos] == '_') {
			l.advance(1)
		}
		tt = tokBinLiteral
	default:
		l.digits()
		if l.pos < len(l.src) && l.src[l.pos] == '.' && isDigit(l.peek(1)) {
			l.advance(1)
			l.digits()
			tt = tokDoubleLiteral
		}
		switch {
		case l.pos < len(l.src) && (l.src[l.pos] == 'f' || l.src[l.pos] == 'F'):
			l.advance(1)
			tt = tokRealLiteral
		case l.pos < len(l.src) && l.src[l.pos] == 'L' && tt == tokIntegerLiteral:
			l.advance(1)
			tt = tokLongLiteral
		}
	}
	return l.take(tt, start, line, col)
}

func (l *lexer) digits() {
	for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
		l.advance(1)
	}
}

func (l *lexer) labelRef() grammar.Token {
	start, line, col := l.pos, l.line, l.col
	l.advance(1)
	for l.pos < len(l.src) && isWordChar(l.src[l.pos]) {
		l.advance(1)
	}
	return l.take(tokLabelReference, start, line, col)
}

func (l *lexer) word() grammar.Token {
	start, line, col := l.pos, l.line, l.col
	for l.pos < len(l.src) && isWordChar(l.src[l.pos]) {
		l.advance(1)
	}
	text := l.src[start:l.pos]
	switch text {
	case "true", "false":
		return l.take(tokBooleanLiteral, start, line, col)
	case "null":
		return l.take(tokNullLiteral, start, line, col)
	}
	if kw, ok := keywords[text]; ok {
		return l.take(kw, start, line, col)
	}
	if l.pos < len(l.src) && l.src[l.pos] == '@' {
		l.advance(1)
		return l.take(tokLabelDefinition, start, line, col)
	}
	return l.take(tokIdentifier, start, line, col)
}

func isWordStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isWordChar(c byte) bool {
	return isWordStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || c == '_' || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
