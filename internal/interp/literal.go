package interp

import (
	"strconv"
	"strings"

	"github.com/Robotnik08/dosato/internal/ast"
	"github.com/Robotnik08/dosato/internal/diag"
	"github.com/Robotnik08/dosato/internal/types"
	"github.com/Robotnik08/dosato/internal/value"
)

// evalLiteral parses a Literal node's lexeme per spec §4.6.2: a quoted
// string or char with C-style escapes, or a number with an optional `F`
// (Float) or `.` (Double) marker, defaulting to an unsigned long.
func (p *Process) evalLiteral(node ast.Node) (*value.Variable, error) {
	text := p.tokenText(node.Carry)
	if len(text) >= 2 && (text[0] == '"' || text[0] == '\'') {
		decoded, err := decodeEscapes(text[1 : len(text)-1])
		if err != nil {
			return nil, p.errAt(node, diag.InvalidLiteral, "%s", err.Error())
		}
		if text[0] == '"' {
			return value.NewString(value.LiteralName, decoded), nil
		}
		if len(decoded) != 1 {
			return nil, p.errAt(node, diag.InvalidChar, "char literal must decode to exactly one byte")
		}
		return &value.Variable{Name: value.LiteralName, Type: types.Scalar(types.Char), I: int64(int8(decoded[0]))}, nil
	}
	return evalNumber(p, node, text)
}

func evalNumber(p *Process, node ast.Node, text string) (*value.Variable, error) {
	switch {
	case strings.HasSuffix(text, "F"):
		f, err := strconv.ParseFloat(text[:len(text)-1], 32)
		if err != nil {
			return nil, p.errAt(node, diag.InvalidNumber, "invalid float literal %q", text)
		}
		return &value.Variable{Name: value.LiteralName, Type: types.Scalar(types.Float), F: float64(float32(f))}, nil
	case strings.Contains(text, "."):
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, p.errAt(node, diag.InvalidNumber, "invalid double literal %q", text)
		}
		return &value.Variable{Name: value.LiteralName, Type: types.Scalar(types.Double), F: f}, nil
	default:
		u, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return nil, p.errAt(node, diag.InvalidNumber, "invalid integer literal %q", text)
		}
		return &value.Variable{Name: value.LiteralName, Type: types.Scalar(types.Ulong), I: int64(u)}, nil
	}
}

// decodeEscapes resolves the C-style escapes spec §4.6.2 names, leaving
// every other byte untouched.
func decodeEscapes(s string) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			sb.WriteByte(s[i])
			continue
		}
		i++
		if i >= len(s) {
			return "", strconv.ErrSyntax
		}
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '\\':
			sb.WriteByte('\\')
		case '"':
			sb.WriteByte('"')
		case '\'':
			sb.WriteByte('\'')
		case 'a':
			sb.WriteByte('\a')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		case '0':
			sb.WriteByte(0)
		default:
			return "", strconv.ErrSyntax
		}
	}
	return sb.String(), nil
}
