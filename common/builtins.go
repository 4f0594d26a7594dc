package common

// Builtin describes one of the fixed builtin library functions.
type Builtin struct {
	Name       string
	ReturnType TypeInfo

	// The accepted argument count range.  MaxArgs < 0 means unbounded.
	MinArgs, MaxArgs int
}

// AcceptsArgs returns whether the builtin can be called with n arguments.
func (b *Builtin) AcceptsArgs(n int) bool {
	if n < b.MinArgs {
		return false
	}

	return b.MaxArgs < 0 || n <= b.MaxArgs
}

// builtins is the closed list of builtin functions.
var builtins = map[string]*Builtin{
	"proclaim":       {Name: "proclaim", ReturnType: TypeVoid, MinArgs: 1, MaxArgs: -1},
	"to_str":         {Name: "to_str", ReturnType: TypeString, MinArgs: 1, MaxArgs: 1},
	"TimeFled":       {Name: "TimeFled", ReturnType: TypeInt, MinArgs: 2, MaxArgs: 2},
	"ThisVeryMoment": {Name: "ThisVeryMoment", ReturnType: TypeTimeT, MinArgs: 0, MaxArgs: 0},
	"unite":          {Name: "unite", ReturnType: TypeString, MinArgs: 2, MaxArgs: -1},
	"sum4":           {Name: "sum4", ReturnType: TypeInt, MinArgs: 4, MaxArgs: 4},
}

// LookupBuiltin returns the builtin function with the given name.
func LookupBuiltin(name string) (*Builtin, bool) {
	b, ok := builtins[name]
	return b, ok
}
