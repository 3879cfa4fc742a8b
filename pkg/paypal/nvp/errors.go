package nvp

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownOperation = errors.New("nvp: unknown operation")
	ErrNotImplemented   = errors.New("nvp: operation not implemented")
	ErrDeprecated       = errors.New("nvp: operation deprecated")
)

// MissingParameterError is returned before anything is sent when required
// request fields are absent.
type MissingParameterError struct {
	Fields []string
}

func (e *MissingParameterError) Error() string {
	return "nvp: missing required param: " + strings.Join(e.Fields, ", ")
}

// MalformedResponseError means PayPal's body could not be split into
// key=value pairs. Nothing is persisted when this happens.
type MalformedResponseError struct {
	Segment string
	Reason  string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("nvp: malformed response segment %q: %s", e.Segment, e.Reason)
}

// ProcessingFailure is returned when PayPal answered but the stored record is
// flagged. Record is already persisted.
type ProcessingFailure struct {
	Message string
	Code    string
	Record  *Record
}

func (e *ProcessingFailure) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("paypal failure (%s): %s", e.Code, e.Message)
	}
	return "paypal failure: " + e.Message
}
