// Package lexer tokenizes Dosato source text into the flat token stream
// consumed by internal/parser. It works in claim-based phases: strings
// and comments are carved out first, then keywords, then brackets,
// then separators, numbers, operators, and finally identifiers — each
// phase only considering byte positions no earlier phase has claimed.
package lexer

import (
	"sort"

	"github.com/Robotnik08/dosato/internal/diag"
	"github.com/Robotnik08/dosato/internal/token"
)

// Lex tokenizes src in full, returning the final sorted, comment-stripped
// token stream, or the first lexical error encountered.
func Lex(src string) ([]token.Token, error) {
	l := &lexer{src: src, claimed: make([]bool, len(src))}

	if err := l.lexStringsAndComments(); err != nil {
		return nil, err
	}
	l.lexWords(token.MasterKeywords, token.MasterKeyword)
	l.lexWords(token.VarTypes, token.VarType)
	l.lexWords(token.ExtensionKeywords, token.Extension)
	l.lexParens()
	l.lexSeparators()
	l.lexNumbers()
	l.lexOperators()
	l.lexIdentifiers()

	sort.SliceStable(l.tokens, func(i, j int) bool { return l.tokens[i].Start < l.tokens[j].Start })

	out := l.tokens[:0]
	for _, t := range l.tokens {
		if t.Kind != token.Comment {
			out = append(out, t)
		}
	}
	return out, nil
}

type lexer struct {
	src     string
	claimed []bool
	tokens  []token.Token
}

func (l *lexer) claim(start, end int) {
	for i := start; i < end; i++ {
		l.claimed[i] = true
	}
}

func (l *lexer) isFree(start, end int) bool {
	for i := start; i < end; i++ {
		if l.claimed[i] {
			return false
		}
	}
	return true
}

func isIdentChar(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// lexStringsAndComments is phase 1: it scans left to right for unclaimed
// `"`, `'`, or `//` starts and claims the whole literal/comment span.
func (l *lexer) lexStringsAndComments() error {
	src := l.src
	for i := 0; i < len(src); i++ {
		if l.claimed[i] {
			continue
		}
		switch {
		case src[i] == '"' || src[i] == '\'':
			quote := src[i]
			j := i + 1
			escaped := false
			closed := false
			for j < len(src) {
				if escaped {
					escaped = false
					j++
					continue
				}
				if src[j] == '\\' {
					escaped = true
					j++
					continue
				}
				if src[j] == quote {
					j++
					closed = true
					break
				}
				j++
			}
			if !closed {
				return diag.New(diag.UnterminatedString, i, "unterminated string literal")
			}
			l.claim(i, j)
			l.tokens = append(l.tokens, token.Token{Start: i, End: j, Kind: token.String})
			i = j - 1
		case i+1 < len(src) && src[i] == '/' && src[i+1] == '/':
			j := i
			for j < len(src) && src[j] != '\n' {
				j++
			}
			l.claim(i, j)
			l.tokens = append(l.tokens, token.Token{Start: i, End: j, Kind: token.Comment})
			i = j - 1
		}
	}
	return nil
}

// lexWords is phases 2-4: whole-word matching of a fixed keyword table.
func (l *lexer) lexWords(words []string, kind token.Kind) {
	src := l.src
	for i := 0; i < len(src); i++ {
		if l.claimed[i] {
			continue
		}
		for idx, w := range words {
			end := i + len(w)
			if end > len(src) || src[i:end] != w {
				continue
			}
			if !l.isFree(i, end) {
				continue
			}
			if i > 0 && isIdentChar(src[i-1]) {
				continue
			}
			if end < len(src) && isIdentChar(src[end]) {
				continue
			}
			l.claim(i, end)
			l.tokens = append(l.tokens, token.Token{Start: i, End: end, Kind: kind, Carry: idx})
			break
		}
	}
}

// lexParens is phase 5. A single running tier is shared by all three
// bracket shapes; a closer whose shape doesn't match the innermost open
// bracket carries -1 instead of popping anything.
func (l *lexer) lexParens() {
	type frame struct {
		shape int
		tier  int
	}
	var stack []frame
	tier := 0

	shapeOf := func(b byte) int {
		switch b {
		case '(', ')':
			return token.BracketRound
		case '[', ']':
			return token.BracketSquare
		case '{', '}':
			return token.BracketCurly
		}
		return 0
	}
	isOpener := func(b byte) bool { return b == '(' || b == '[' || b == '{' }
	isCloser := func(b byte) bool { return b == ')' || b == ']' || b == '}' }

	src := l.src
	for i := 0; i < len(src); i++ {
		if l.claimed[i] {
			continue
		}
		b := src[i]
		switch {
		case isOpener(b):
			tier++
			shape := shapeOf(b)
			stack = append(stack, frame{shape: shape, tier: tier})
			l.claim(i, i+1)
			l.tokens = append(l.tokens, token.Token{Start: i, End: i + 1, Kind: token.Parenthesis, Carry: shape | tier})
		case isCloser(b):
			shape := shapeOf(b)
			l.claim(i, i+1)
			if len(stack) > 0 && stack[len(stack)-1].shape == shape {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				tier--
				l.tokens = append(l.tokens, token.Token{Start: i, End: i + 1, Kind: token.Parenthesis, Carry: shape | top.tier})
			} else {
				l.tokens = append(l.tokens, token.Token{Start: i, End: i + 1, Kind: token.Parenthesis, Carry: -1})
			}
		}
	}
}

// lexSeparators is phase 6.
func (l *lexer) lexSeparators() {
	src := l.src
	for i := 0; i < len(src); i++ {
		if l.claimed[i] {
			continue
		}
		for _, sep := range token.Separators {
			if src[i] == sep {
				l.claim(i, i+1)
				l.tokens = append(l.tokens, token.Token{Start: i, End: i + 1, Kind: token.Separator})
			}
		}
	}
}

// lexNumbers is phase 7: an optional leading '.', a digit run with at
// most one '.', an optional trailing 'F'. A number cannot immediately
// follow an identifier character (so `x.5` keeps `.` as an operator
// position, not as a decimal point owned by a fresh number).
func (l *lexer) lexNumbers() {
	src := l.src
	for i := 0; i < len(src); i++ {
		if l.claimed[i] {
			continue
		}
		if !isDigit(src[i]) && !(src[i] == '.' && i+1 < len(src) && isDigit(src[i+1])) {
			continue
		}
		if i > 0 && isIdentChar(src[i-1]) {
			continue
		}
		j := i
		sawDot := false
		for j < len(src) {
			if isDigit(src[j]) {
				j++
				continue
			}
			if src[j] == '.' && !sawDot && j+1 < len(src) && isDigit(src[j+1]) {
				sawDot = true
				j++
				continue
			}
			break
		}
		if j < len(src) && (src[j] == 'F') {
			j++
		}
		l.claim(i, j)
		l.tokens = append(l.tokens, token.Token{Start: i, End: j, Kind: token.Number})
		i = j - 1
	}
}

// lexOperators is phase 8: two-character forms are tried before their
// one-character prefixes.
func (l *lexer) lexOperators() {
	src := l.src
	for i := 0; i < len(src); i++ {
		if l.claimed[i] {
			continue
		}
		matched := -1
		matchLen := 0
		for idx, op := range token.Operators {
			if len(op) != 2 {
				continue
			}
			if i+2 <= len(src) && src[i:i+2] == op {
				matched = idx
				matchLen = 2
				break
			}
		}
		if matched == -1 {
			for idx, op := range token.Operators {
				if len(op) != 1 {
					continue
				}
				if src[i:i+1] == op {
					matched = idx
					matchLen = 1
					break
				}
			}
		}
		if matched == -1 {
			continue
		}
		l.claim(i, i+matchLen)
		l.tokens = append(l.tokens, token.Token{Start: i, End: i + matchLen, Kind: token.Operator, Carry: matched})
		i += matchLen - 1
	}
}

// lexIdentifiers is phase 9: maximal runs of ident chars.
func (l *lexer) lexIdentifiers() {
	src := l.src
	for i := 0; i < len(src); i++ {
		if l.claimed[i] {
			continue
		}
		if !isIdentStart(src[i]) && !isDigit(src[i]) {
			continue
		}
		j := i
		for j < len(src) && isIdentChar(src[j]) {
			j++
		}
		l.claim(i, j)
		l.tokens = append(l.tokens, token.Token{Start: i, End: j, Kind: token.Identifier})
		i = j - 1
	}
}
