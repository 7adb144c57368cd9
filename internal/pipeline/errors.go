package pipeline

import "fmt"

// Stage names used in StageError and in logs.
const (
	StageWindows  = "windows"
	StageWidgets  = "widgets"
	StageClassify = "classify"
)

// StageError is an I/O failure of one stage. It is recorded as a warning on
// the result; the run continues over the partial model.
type StageError struct {
	Stage string
	Path  string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s (%s): %v", e.Stage, e.Path, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
