package command

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

type errorPayload struct {
	Error     string `json:"error"`
	Operation string `json:"operation,omitempty"`
}

// RenderResult pretty-prints a successful dispatch result as JSON.
func RenderResult(w io.Writer, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("render result failed: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// RenderError prints a dispatch error through the same structured path as a
// success, marked with an error field and, when known, the operation that
// produced it.
func RenderError(w io.Writer, err error) {
	payload := errorPayload{Error: err.Error()}

	var opErr *OpError
	if errors.As(err, &opErr) {
		payload.Error = opErr.Err.Error()
		payload.Operation = opErr.Op
	}

	out, marshalErr := json.MarshalIndent(payload, "", "  ")
	if marshalErr != nil {
		fmt.Fprintln(w, err.Error())
		return
	}
	fmt.Fprintln(w, string(out))
}
