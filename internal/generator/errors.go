package generator

import (
	"fmt"
)

type Reason string

const (
	ReasonTransport Reason = "transport"
	ReasonStatus    Reason = "status"
	ReasonEmpty     Reason = "empty response"
	ReasonMalformed Reason = "malformed response"
	ReasonContract  Reason = "contract violation"
)

// GenerationError is returned for every failed plan generation, whatever the cause.
type GenerationError struct {
	Reason Reason
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("plan generation failed: %s", e.Reason)
	}
	return fmt.Sprintf("plan generation failed: %s: %s", e.Reason, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func genErr(reason Reason, err error) error {
	return &GenerationError{Reason: reason, Err: err}
}

// TipError describes a failed tip request. It is only ever logged.
type TipError struct {
	UserID string
	Err    error
}

func (e *TipError) Error() string {
	return fmt.Sprintf("progress tip for [%s]: %s", e.UserID, e.Err)
}

func (e *TipError) Unwrap() error {
	return e.Err
}
