package adapter

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Request error kinds. A *RequestError always unwraps to one of them.
var (
	ErrTransport = errors.New("transport failure")
	ErrTimeout   = errors.New("request timed out")
	ErrRejected  = errors.New("request rejected by server")
	ErrDecode    = errors.New("malformed server response")

	ErrUnauthorized        = errors.New("client unauthorized")
	ErrBadRequest          = errors.New("bad request")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrUnexpectedStatus    = errors.New("unexpected status")
)

// RequestError describes a failed backend call.
type RequestError struct {
	// Op names the adapter method, e.g. "subjects.delete".
	Op string
	// Status is the HTTP status, 0 when no response was received.
	Status int
	// Code, Message and Details come from the envelope's errorData when the
	// backend sent one. Message falls back to the raw body otherwise.
	Code    string
	Message string
	Details any

	// Kind is the primary kind sentinel.
	Kind error
	// Err is the underlying cause, if any.
	Err error
}

func (e *RequestError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	switch {
	case e.Message != "":
		b.WriteString(": ")
		b.WriteString(e.Message)
	case e.Err != nil:
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes the kind, the kind implied by the HTTP status when it
// differs, and the cause.
func (e *RequestError) Unwrap() []error {
	errs := []error{e.Kind}
	if sk := statusKind(e.Status); sk != nil && sk != e.Kind {
		errs = append(errs, sk)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// statusKind maps an HTTP error status to its sentinel. 2xx and 0 map to nil.
func statusKind(status int) error {
	switch {
	case status == 0, status >= http.StatusOK && status < http.StatusMultipleChoices:
		return nil
	}

	switch status {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusBadGateway:
		return ErrBadGateway
	case http.StatusInternalServerError:
		return ErrInternalServerError
	default:
		return ErrUnexpectedStatus
	}
}
