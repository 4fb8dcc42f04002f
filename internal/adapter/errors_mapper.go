package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-exam-admin/models"
)

// mapTransportError classifies an error returned before any response was
// received.
func mapTransportError(ctx context.Context, op string, err error) *RequestError {
	kind := ErrTransport
	if isTimeout(ctx, err) {
		kind = ErrTimeout
	}
	return &RequestError{Op: op, Kind: kind, Err: err}
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// mapResponse decodes resp into an envelope. It returns the envelope only
// when the HTTP status is 2xx and the envelope reports success. A 2xx with
// an empty body counts as success for calls that expect no payload.
func mapResponse[T any](op string, resp *resty.Response) (models.Envelope[T], error) {
	status := resp.StatusCode()
	body := resp.Body()

	ok := status >= http.StatusOK && status < http.StatusMultipleChoices
	if ok && len(bytes.TrimSpace(body)) == 0 && expectsNoPayload[T]() {
		return models.Envelope[T]{Success: true, Status: status}, nil
	}

	var head struct {
		Success *bool `json:"success"`
	}
	if err := json.Unmarshal(body, &head); err != nil || head.Success == nil {
		return models.Envelope[T]{}, mapRawResponse(op, status, body, err)
	}

	var env models.Envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return models.Envelope[T]{}, &RequestError{Op: op, Status: status, Kind: ErrDecode, Err: err}
	}

	if ok && env.Success {
		return env, nil
	}

	reqErr := &RequestError{Op: op, Status: status, Kind: ErrRejected, Message: env.Message}
	if status == http.StatusUnauthorized {
		reqErr.Kind = ErrUnauthorized
	}
	if env.ErrorData != nil {
		reqErr.Code = env.ErrorData.ErrorCode
		reqErr.Details = env.ErrorData.Details
		if env.ErrorData.ErrorMessage != "" {
			reqErr.Message = env.ErrorData.ErrorMessage
		}
	}
	return models.Envelope[T]{}, reqErr
}

func expectsNoPayload[T any]() bool {
	var zero T
	_, isAny := any(&zero).(*any)
	return isAny
}

// mapRawResponse handles bodies that are not an envelope.
func mapRawResponse(op string, status int, body []byte, decodeErr error) error {
	text := strings.TrimSpace(string(body))

	if kind := statusKind(status); kind != nil {
		if text == "" {
			text = http.StatusText(status)
		}
		return &RequestError{Op: op, Status: status, Kind: kind, Message: text}
	}

	if decodeErr == nil {
		decodeErr = errors.New("response has no success flag")
	}
	return &RequestError{Op: op, Status: status, Kind: ErrDecode, Err: decodeErr}
}
