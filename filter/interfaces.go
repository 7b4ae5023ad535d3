package filter

// Program is a compiled expression ready for evaluation against a result
type Program interface {
	// Eval runs the expression with result as its environment
	Eval(result any) (any, error)

	// Expression returns the original expression
	Expression() string
}

// Compiler compiles expressions into programs
type Compiler interface {
	// Compile parses and compiles an expression
	Compile(expression string) (Program, error)
}

// CachingCompiler provides caching for compiled programs
type CachingCompiler interface {
	Compiler

	// Clear removes all cached programs
	Clear()

	// Size returns the number of cached programs
	Size() int
}
