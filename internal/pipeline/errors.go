package pipeline

import "fmt"

// Stage names the pipeline step an error came from.
type Stage string

const (
	StageConfig   Stage = "config"
	StageGenerate Stage = "generate"
	StageExport   Stage = "export"
	StageLoad     Stage = "load"
	StageQuery    Stage = "query"
)

// StageError wraps a failure with the stage it happened in, so both the
// console path and the dashboard can name the failing step.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func fail(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}
