package filter

import (
	"errors"
	"fmt"
)

// ErrEmptyExpression is returned for a blank --expr value
var ErrEmptyExpression = errors.New("empty expression")

// Evaluation stages reported by EvaluationError
const (
	StageEnv = "env"
	StageRun = "run"
)

// CompilationError wraps an expr parse or type-check failure
type CompilationError struct {
	Expression string
	Err        error
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("expr %q: compile: %v", e.Expression, e.Err)
}

func (e *CompilationError) Unwrap() error { return e.Err }

// EvaluationError wraps a failure to run a program against a result.
// Stage is StageEnv when the result could not be turned into an
// environment and StageRun when the program itself failed.
type EvaluationError struct {
	Expression string
	Stage      string
	Err        error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("expr %q: %s: %v", e.Expression, e.Stage, e.Err)
}

func (e *EvaluationError) Unwrap() error { return e.Err }
