package token

// Master keywords. A statement must begin with one of these; the index
// doubles as the Token.Carry value and as the dispatch key the parser
// uses to choose FunctionCall (0), MakeVar (1), or SetVar (2).
const (
	MasterDo = iota
	MasterMake
	MasterSet
)

var MasterKeywords = []string{"DO", "MAKE", "SET"}

// Extension keywords. They attach a modifier to the immediately preceding
// call in a call chain.
const (
	ExtWhen = iota
	ExtWhile
	ExtElse
	ExtCatch
	ExtInto
	ExtThen
)

var ExtensionKeywords = []string{"WHEN", "WHILE", "ELSE", "CATCH", "INTO", "THEN"}

// Var-type keywords. The index is the Type.DataType carried by the token.
const (
	TypeInt = iota
	TypeBool
	TypeString
	TypeFloat
	TypeDouble
	TypeChar
	TypeShort
	TypeLong
	TypeByte
	TypeVoid
	TypeArray
	TypeFunc
	TypeUint
	TypeUshort
	TypeUlong
	TypeUbyte
	TypeStruct
)

var VarTypes = []string{
	"INT", "BOOL", "STRING", "FLOAT", "DOUBLE", "CHAR", "SHORT", "LONG",
	"BYTE", "VOID", "ARRAY", "FUNC", "UINT", "USHORT", "ULONG", "UBYTE", "STRUCT",
}

// Bracket shapes. A Parenthesis token's Carry is ShapeBit | tier for a
// matched bracket, or exactly -1 for an unmatched closer.
const (
	BracketRound  = 1 << 13
	BracketSquare = 1 << 14
	BracketCurly  = 1 << 15
)

// BracketShape masks out the shape bits of a matched Parenthesis carry.
func BracketShape(carry int) int {
	return carry & (BracketRound | BracketSquare | BracketCurly)
}

// BracketTier masks out the nesting tier of a matched Parenthesis carry.
func BracketTier(carry int) int {
	return carry &^ (BracketRound | BracketSquare | BracketCurly)
}

// Separators. Only one today but kept as a table to mirror the lexer's
// phase-based matching.
var Separators = []byte{';'}

// Operator indices, in the exact order of the Operators/Precedence tables
// below (and of the original implementation's OperatorType enum).
const (
	OpAdd = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
	OpAssign
	OpGreater
	OpLess
	OpNot
	OpAnd
	OpXor
	OpOr
	OpNotBitwise
	OpQuestion
	OpColon
	OpDot
	OpComma
	OpHash
	OpAddAssign
	OpSubtractAssign
	OpMultiplyAssign
	OpDivideAssign
	OpModuloAssign
	OpIncrement
	OpDecrement
	OpEqual
	OpNotEqual
	OpGreaterEqual
	OpLessEqual
	OpAndAnd
	OpOrOr
	OpShiftLeft
	OpShiftRight
	OpAndAssign
	OpOrAssign
	OpXorAssign
	OpNotNot
)

// Operators lists the 37 operator lexemes in match order: two-character
// forms must be attempted before their one-character prefixes, which this
// table's ordering (single-char entries first, then all two-char entries)
// does NOT by itself guarantee — the lexer tries two-char forms first
// regardless of table order (see lexer.lexOperators).
var Operators = []string{
	"+", "-", "*", "/", "%", "=", ">", "<", "!", "&", "^", "|", "~", "?", ":", ".", ",", "#",
	"+=", "-=", "*=", "/=", "%=", "++", "--", "==", "!=", ">=", "<=", "&&", "||", "<<", ">>", "&=", "|=", "^=",
	"~~",
}

// Precedence gives the binding strength of each operator, 1 (tightest,
// e.g. `.` member access) through 15 (loosest, comma). Borrowed verbatim
// from the original C implementation's OPERATOR_PRECEDENCE table, which
// in turn borrows from C's own operator precedence.
var Precedence = []int{
	4, 4, 3, 3, 3, 14, 6, 6, 2, 8, 9, 10, 2, 13, 13, 1, 15, 1,
	14, 14, 14, 14, 14, 2, 2, 7, 7, 6, 6, 11, 12, 5, 5, 14, 14, 14,
	14,
}

// IsAssignmentOperator reports whether op is one of the 12 assignment
// operators (plain or compound).
func IsAssignmentOperator(op int) bool {
	switch op {
	case OpAssign, OpAddAssign, OpSubtractAssign, OpMultiplyAssign, OpDivideAssign, OpModuloAssign,
		OpAndAssign, OpOrAssign, OpXorAssign, OpIncrement, OpDecrement, OpNotNot:
		return true
	}
	return false
}

// MaxPrecedence is the lowest-binding precedence value present in the
// table; the expression parser scans from MaxPrecedence down to 1.
const MaxPrecedence = 15
