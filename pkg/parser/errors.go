package parser

import (
	"errors"
	"fmt"
)

// ErrUnknownRecurrence is wrapped when strict parsing meets a recurrence other
// than Weekly, WeekA or WeekB.
var ErrUnknownRecurrence = errors.New("unknown recurrence")

// LineError is a failure confined to one line. Parsing continues after it.
type LineError struct {
	Line int    `json:"line" yaml:"line"`
	Text string `json:"text" yaml:"text"`
	Err  error  `json:"-" yaml:"-"`
	// Message is Err's text, kept for encoders.
	Message string `json:"message" yaml:"message"`
}

func newLineError(line int, text string, err error) *LineError {
	return &LineError{Line: line, Text: text, Err: err, Message: err.Error()}
}

func (e *LineError) Error() string {
	return fmt.Sprintf("Error on line %d: '%s' -> %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
