// Package formula finds cell references inside formula text and rewrites
// them across structural edits without touching anything else.
package formula

import (
	"strconv"
	"strings"

	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/ref"
	"github.com/xuri/excelize/v2"
)

// TokenKind distinguishes references from everything else.
type TokenKind int

const (
	// TokenLiteral is any text that is not a cell reference: operators,
	// function names, numbers, strings, sheet qualifiers, whitespace.
	TokenLiteral TokenKind = iota
	// TokenReference is a cell reference or a cell range reference.
	TokenReference
)

// CellRef is one endpoint of a reference token.
type CellRef struct {
	Col    int
	Row    int
	ColAbs bool
	RowAbs bool
}

// String formats the endpoint, keeping its absolute markers.
func (c CellRef) String() string {
	var b strings.Builder
	if c.ColAbs {
		b.WriteByte('$')
	}
	name, _ := excelize.ColumnNumberToName(c.Col)
	b.WriteString(name)
	if c.RowAbs {
		b.WriteByte('$')
	}
	b.WriteString(strconv.Itoa(c.Row))
	return b.String()
}

// Token is a slice of formula text.
type Token struct {
	Kind TokenKind
	// Text is the exact source text of the token.
	Text string
	// Pos is the byte offset of the token in the formula.
	Pos int
	// Sheet is the sheet qualifier of a reference ("" when unqualified).
	Sheet string
	// Start and End are the endpoints; End equals Start for single cells.
	Start, End CellRef
	// IsRange reports whether the reference was written as "A1:B2".
	IsRange bool
}

// character classes
const (
	charQuote      = '"'
	charApostrophe = '\''
	charDollar     = '$'
	charColon      = ':'
	charExclaim    = '!'
	charLParen     = '('
	charLBracket   = '['
	charRBracket   = ']'
	charUnderscore = '_'
	charPeriod     = '.'
	charBackslash  = '\\'
)

type lexState int

const (
	stateLiteral lexState = iota
	stateString
	stateQuotedSheet
	stateBracket
	stateWord
)

// lexer splits formula text into literal and reference tokens.
type lexer struct {
	input   string
	pos     int
	state   lexState
	litFrom int
	sheet   string // pending sheet qualifier for the next reference
	tokens  []Token
}

// Tokenize splits a formula into literal and reference tokens. Joining the
// Text of every token reproduces the input exactly.
func Tokenize(formula string) []Token {
	l := &lexer{input: formula}
	l.run()
	return l.tokens
}

func (l *lexer) run() {
	for l.pos < len(l.input) {
		switch l.state {
		case stateLiteral:
			l.scanLiteral()
		case stateString:
			l.scanQuoted(charQuote)
			l.state = stateLiteral
		case stateQuotedSheet:
			name := l.scanQuoted(charApostrophe)
			if l.pos < len(l.input) && l.input[l.pos] == charExclaim {
				l.pos++
				l.sheet = name
			}
			l.state = stateLiteral
		case stateBracket:
			l.scanBracket()
			l.state = stateLiteral
		case stateWord:
			l.scanWord()
			l.state = stateLiteral
		}
	}
	l.flushLiteral(l.pos)
}

func (l *lexer) scanLiteral() {
	ch := l.input[l.pos]
	switch {
	case ch == charQuote:
		l.sheet = ""
		l.state = stateString
	case ch == charApostrophe:
		l.state = stateQuotedSheet
	case ch == charLBracket:
		l.sheet = ""
		l.state = stateBracket
	case isWordChar(ch):
		l.state = stateWord
	default:
		l.sheet = ""
		l.pos++
	}
}

// scanQuoted consumes a quoted run whose quote is escaped by doubling and
// returns the unescaped content.
func (l *lexer) scanQuoted(quote byte) string {
	l.pos++ // opening quote
	var b strings.Builder
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		l.pos++
		if ch != quote {
			b.WriteByte(ch)
			continue
		}
		if l.pos < len(l.input) && l.input[l.pos] == quote {
			b.WriteByte(quote)
			l.pos++
			continue
		}
		break
	}
	return b.String()
}

// scanBracket skips structured and external references such as Table1[Col].
func (l *lexer) scanBracket() {
	depth := 0
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case charLBracket:
			depth++
		case charRBracket:
			depth--
		}
		l.pos++
		if depth == 0 {
			return
		}
	}
}

func (l *lexer) scanWord() {
	start := l.pos
	end := wordEnd(l.input, start)
	word := l.input[start:end]
	next := byteAt(l.input, end)

	if next == charExclaim {
		l.sheet = word
		l.pos = end + 1
		return
	}
	first, ok := parseCellWord(word)
	if !ok || isCallOrTable(next) || startsDigit(word) {
		l.sheet = ""
		l.pos = end
		return
	}

	tok := Token{Kind: TokenReference, Pos: start, Sheet: l.sheet, Start: first, End: first}
	if next == charColon && isWordChar(byteAt(l.input, end+1)) {
		end2 := wordEnd(l.input, end+1)
		if second, ok := parseCellWord(l.input[end+1 : end2]); ok && !isCallOrTable(byteAt(l.input, end2)) {
			tok.End = second
			tok.IsRange = true
			end = end2
		}
	}
	tok.Text = l.input[start:end]

	l.flushLiteral(start)
	l.tokens = append(l.tokens, tok)
	l.litFrom = end
	l.pos = end
	l.sheet = ""
}

func (l *lexer) flushLiteral(to int) {
	if to > l.litFrom {
		l.tokens = append(l.tokens, Token{Kind: TokenLiteral, Text: l.input[l.litFrom:to], Pos: l.litFrom})
	}
	l.litFrom = to
}

// parseCellWord accepts exactly $?letters$?digits within sheet limits.
func parseCellWord(word string) (CellRef, bool) {
	var c CellRef
	i := 0
	if i < len(word) && word[i] == charDollar {
		c.ColAbs = true
		i++
	}
	letters := i
	for i < len(word) && isLetter(word[i]) {
		i++
	}
	if i == letters || i-letters > 3 {
		return c, false
	}
	col, err := ref.ColumnToNumber(word[letters:i])
	if err != nil {
		return c, false
	}
	if i < len(word) && word[i] == charDollar {
		c.RowAbs = true
		i++
	}
	digits := i
	for i < len(word) && isDigit(word[i]) {
		i++
	}
	if i == digits || i != len(word) {
		return c, false
	}
	row, err := strconv.Atoi(word[digits:])
	if err != nil || row < 1 || row > excelize.TotalRows {
		return c, false
	}
	c.Col, c.Row = col, row
	return c, true
}

func wordEnd(s string, i int) int {
	for i < len(s) && isWordChar(s[i]) {
		i++
	}
	return i
}

func byteAt(s string, i int) byte {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}

// isCallOrTable reports whether the byte after a word makes it a function
// or table name.
func isCallOrTable(next byte) bool {
	return next == charLParen || next == charLBracket
}

func startsDigit(word string) bool {
	return len(word) > 0 && isDigit(word[0])
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// isWordChar covers identifiers, numbers, absolute markers and non-ASCII
// sheet or name characters.
func isWordChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == charDollar || ch == charUnderscore ||
		ch == charPeriod || ch == charBackslash || ch >= 0x80
}
