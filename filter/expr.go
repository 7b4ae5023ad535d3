package filter

import (
	"encoding/json"
	"maps"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// exprProgram implements Program using the expr language
type exprProgram struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables program caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache
}

// Compile compiles an expression. Result fields are resolved at run time,
// so unknown names compile and evaluate to nil.
func (c *exprCompiler) Compile(expression string) (Program, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{Expression: expression, Err: ErrEmptyExpression}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(c.helperFuncs),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, &CompilationError{Expression: expression, Err: err}
	}

	p := &exprProgram{
		expression: expression,
		program:    program,
		helpers:    c.helperFuncs,
	}
	if c.cache != nil {
		c.cache.Put(expression, p)
	}
	return p, nil
}

// Clear removes all cached programs
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached programs
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Len()
	}
	return 0
}

// Eval evaluates the program. The result is exposed as "result" and, when
// it encodes to a JSON object, each of its keys is also a top-level name,
// so `guild.members` and `result.guild.members` are equivalent.
func (p *exprProgram) Eval(result any) (any, error) {
	env, err := p.environment(result)
	if err != nil {
		return nil, &EvaluationError{Expression: p.expression, Stage: StageEnv, Err: err}
	}

	out, err := expr.Run(p.program, env)
	if err != nil {
		return nil, &EvaluationError{Expression: p.expression, Stage: StageRun, Err: err}
	}
	return out, nil
}

// Expression returns the original expression
func (p *exprProgram) Expression() string {
	return p.expression
}

func (p *exprProgram) environment(result any) (map[string]any, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}

	env := make(map[string]any, len(p.helpers)+16)
	if obj, ok := decoded.(map[string]any); ok {
		maps.Copy(env, obj)
	}
	maps.Copy(env, p.helpers)
	env["result"] = decoded
	return env, nil
}

// createHelperFunctions creates the helper functions available to expressions
func createHelperFunctions() map[string]any {
	return map[string]any{
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"endsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}
