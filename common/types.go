package common

import "ngs/token"

// TypeInfo describes a primitive type of the language.  Types are compared by
// name only: the target representation is carried along for the code
// generator and plays no part in type checking.
type TypeInfo struct {
	// The source-level name of the type: eg. `unsigned int`.
	Name string

	// Whether the type is one of the language's builtin types.  Only the
	// `unknown` sentinel is not.
	IsBuiltin bool

	// The name of the corresponding type in the target scripting language.
	Target string
}

// Enumeration of the primitive types.
var (
	TypeInt         = TypeInfo{Name: "int", IsBuiltin: true, Target: "number"}
	TypeUnsignedInt = TypeInfo{Name: "unsigned int", IsBuiltin: true, Target: "number"}
	TypeTimeT       = TypeInfo{Name: "time_t", IsBuiltin: true, Target: "number"}
	TypeBool        = TypeInfo{Name: "bool", IsBuiltin: true, Target: "boolean"}
	TypeString      = TypeInfo{Name: "string", IsBuiltin: true, Target: "string"}
	TypeSymb        = TypeInfo{Name: "symb", IsBuiltin: true, Target: "string"}
	TypeVoid        = TypeInfo{Name: "void", IsBuiltin: true, Target: "undefined"}
	TypeUnknown     = TypeInfo{Name: "unknown", IsBuiltin: false, Target: "any"}
)

func (ti TypeInfo) String() string {
	return ti.Name + " -> " + ti.Target
}

// IsUnknown returns whether the type is the `unknown` sentinel produced by
// expressions that could not be typed.
func (ti TypeInfo) IsUnknown() bool {
	return ti.Name == TypeUnknown.Name
}

// IsNumeric returns whether the type belongs to the numeric family: `int`,
// `unsigned int` and `time_t`.
func (ti TypeInfo) IsNumeric() bool {
	switch ti.Name {
	case TypeInt.Name, TypeUnsignedInt.Name, TypeTimeT.Name:
		return true
	}

	return false
}

// IsTextual returns whether the type is `string` or `symb`.
func (ti TypeInfo) IsTextual() bool {
	return ti.Name == TypeString.Name || ti.Name == TypeSymb.Name
}

// TypeFromKind converts a type keyword or a literal token kind into its
// primitive type.  `unsigned` alone maps to `unsigned int` since the parser
// folds the pair into a single type label.
func TypeFromKind(kind token.Kind) TypeInfo {
	switch kind {
	case token.INT, token.NUMBER:
		return TypeInt
	case token.UNSIGNED:
		return TypeUnsignedInt
	case token.BOOL, token.TRUE, token.FALSE:
		return TypeBool
	case token.STRING, token.STRING_LIT:
		return TypeString
	case token.TIME_T:
		return TypeTimeT
	case token.SYMB, token.CHAR_LIT:
		return TypeSymb
	}

	return TypeUnknown
}
