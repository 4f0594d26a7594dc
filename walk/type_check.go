package walk

import (
	"ngs/common"
	"ngs/token"
)

// binaryResultType returns the type of applying a binary operator to operands
// of the given types.  Combinations with no defined result yield `unknown`.
func binaryResultType(op token.Kind, lhs, rhs common.TypeInfo) common.TypeInfo {
	if lhs.IsUnknown() || rhs.IsUnknown() {
		return common.TypeUnknown
	}

	switch op {
	case token.PLUS, token.MINUS, token.MULT, token.DIV, token.MOD, token.POW:
		// `+` concatenates as soon as either side is textual
		if op == token.PLUS && (lhs.IsTextual() || rhs.IsTextual()) {
			return common.TypeString
		}

		if lhs.IsNumeric() && rhs.IsNumeric() {
			return common.TypeInt
		}
	case token.EQ, token.NE, token.LT, token.GT, token.LE, token.GE:
		return common.TypeBool
	case token.AND, token.OR:
		return common.TypeBool
	case token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.MULT_ASSIGN, token.DIV_ASSIGN:
		return lhs
	}

	return common.TypeUnknown
}

// typeCompatible returns whether a value of type actual can be used where a
// value of type expected is required in the context of the given operator:
// ASSIGN for initialization and plain assignment, a compound assignment
// operator, PLUS, or any other kind (eg. RETURN) for no operator specific
// rules.
func typeCompatible(expected, actual common.TypeInfo, op token.Kind) bool {
	if expected.IsUnknown() || actual.IsUnknown() {
		return false
	}

	if expected.IsNumeric() && actual.IsNumeric() {
		return true
	}

	switch op {
	case token.PLUS:
		if expected == common.TypeString || actual == common.TypeString {
			return true
		}
	case token.PLUS_ASSIGN:
		if expected == common.TypeString {
			return true
		}
	case token.ASSIGN:
		if expected.IsTextual() && actual.IsTextual() {
			return true
		}
	}

	return expected.Name == actual.Name
}
