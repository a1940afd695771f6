package command

import "fmt"

// ParseError reports a malformed command line. It is recoverable: the
// interactive loop prints the message and keeps running.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string {
	return e.Msg
}

func parseErrorf(format string, args ...interface{}) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}

// OpError wraps a collaborator failure with the operation that produced it.
// The underlying error is passed through verbatim.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}
