package internal

import (
	"strconv"
	"unicode/utf8"
)

type lexer struct {
	source  string
	start   int
	current int
	line    int

	state *interpreterState
}

var keywords = map[string]tokenType{
	"and":      tkAnd,
	"break":    tkBreak,
	"class":    tkClass,
	"continue": tkContinue,
	"else":     tkElse,
	"false":    tkFalse,
	"fun":      tkFun,
	"for":      tkFor,
	"if":       tkIf,
	"nil":      tkNil,
	"or":       tkOr,
	"print":    tkPrint,
	"return":   tkReturn,
	"super":    tkSuper,
	"this":     tkThis,
	"true":     tkTrue,
	"var":      tkVar,
	"while":    tkWhile,
}

func newLexer(state *interpreterState) *lexer {
	return &lexer{
		source: state.source,
		line:   1,
		state:  state,
	}
}

// scan fills state.tokens. The token list always ends with tkEOF.
func (l *lexer) scan() {
	for !l.isAtEnd() {
		l.start = l.current
		l.scanToken()
	}
	l.state.tokens = append(l.state.tokens, token{
		token: tkEOF,
		line:  l.line,
	})
}

func (l *lexer) scanToken() {
	c := l.advance()
	switch c {
	case '(':
		l.emit(tkLeftParen, nil)
	case ')':
		l.emit(tkRightParen, nil)
	case '{':
		l.emit(tkLeftBrace, nil)
	case '}':
		l.emit(tkRightBrace, nil)
	case ',':
		l.emit(tkComma, nil)
	case '.':
		l.emit(tkDot, nil)
	case '-':
		l.emit(tkMinus, nil)
	case '+':
		l.emit(tkPlus, nil)
	case ';':
		l.emit(tkSemicolon, nil)
	case '*':
		l.emit(tkStar, nil)
	case '!':
		if l.match('=') {
			l.emit(tkBangEqual, nil)
		} else {
			l.emit(tkBang, nil)
		}
	case '=':
		if l.match('=') {
			l.emit(tkEqualEqual, nil)
		} else {
			l.emit(tkEqual, nil)
		}
	case '<':
		if l.match('=') {
			l.emit(tkLessEqual, nil)
		} else {
			l.emit(tkLess, nil)
		}
	case '>':
		if l.match('=') {
			l.emit(tkGreaterEqual, nil)
		} else {
			l.emit(tkGreater, nil)
		}
	case '/':
		if l.match('/') {
			for !l.isAtEnd() && l.peek() != '\n' {
				l.advance()
			}
		} else if l.match('*') {
			l.blockComment()
		} else {
			l.emit(tkSlash, nil)
		}

	// Ignore whitespace
	case ' ':
	case '\r':
	case '\t':

	case '\n':
		l.line++

	case '"':
		l.string()

	default:
		if isDigit(c) {
			l.number()
		} else if isAlpha(c) {
			l.identifier()
		} else {
			l.skipRune()
			l.state.lineError(errUnexpectedChar, l.line)
		}
	}
}

// blockComment consumes a /* ... */ comment. Comments do not nest.
func (l *lexer) blockComment() {
	for !l.isAtEnd() {
		if l.peek() == '*' && l.peekNext() == '/' {
			l.advance()
			l.advance()
			return
		}
		if l.advance() == '\n' {
			l.line++
		}
	}
	l.state.lineError(errUnclosedComment, l.line)
}

func (l *lexer) string() {
	for !l.isAtEnd() && l.peek() != '"' {
		if l.peek() == '\n' {
			l.line++
		}
		l.advance()
	}

	if l.isAtEnd() {
		l.state.lineError(errUnterminatedString, l.line)
		return
	}

	// Consume ending "
	l.advance()

	l.emit(tkString, ternString(l.source[l.start+1:l.current-1]))
}

func (l *lexer) number() {
	for isDigit(l.peek()) {
		l.advance()
	}

	// A fractional part needs at least one digit after the dot.
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	literal, _ := strconv.ParseFloat(l.source[l.start:l.current], 64)

	l.emit(tkNumber, ternNumber(literal))
}

func (l *lexer) identifier() {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}

	tokenType, ok := keywords[l.source[l.start:l.current]]
	if !ok {
		tokenType = tkIdentifier
	}

	l.emit(tokenType, nil)
}

// skipRune moves past the continuation bytes of a multi-byte character
// so it is reported only once.
func (l *lexer) skipRune() {
	_, size := utf8.DecodeRuneInString(l.source[l.start:])
	if size > 1 {
		l.current = l.start + size
	}
}

func (l *lexer) advance() byte {
	current := l.source[l.current]
	l.current++
	return current
}

func (l *lexer) match(c byte) bool {
	if l.isAtEnd() || l.source[l.current] != c {
		return false
	}
	l.current++
	return true
}

func (l *lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.current]
}

func (l *lexer) peekNext() byte {
	if l.current+1 >= len(l.source) {
		return 0
	}
	return l.source[l.current+1]
}

func (l *lexer) emit(tk tokenType, literal ternValue) {
	l.state.tokens = append(l.state.tokens, token{
		token:   tk,
		lexeme:  l.source[l.start:l.current],
		literal: literal,
		line:    l.line,
	})
}

func (l *lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
