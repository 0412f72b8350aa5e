package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// User-facing messages for failures the client observes itself.
const (
	MsgTimeout    = "Request timeout. Please try again."
	MsgNetwork    = "Network error. Please check your connection."
	MsgUnexpected = "An unexpected error occurred"
)

// Sentinels for errors.Is. An *Error matches the sentinel of its Kind, and
// ErrUnauthorized whenever the backend answered 401.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
	ErrApplication  = errors.New("request rejected")
	ErrTimeout      = errors.New("request timeout")
	ErrNetwork      = errors.New("network error")
	ErrUnexpected   = errors.New("unexpected error")
)

// Kind is the closed set of failure classes every rejection falls into.
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindApplication
	KindTimeout
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindApplication:
		return "application"
	case KindTimeout:
		return "timeout"
	case KindNetwork:
		return "network"
	default:
		return "unexpected"
	}
}

// FieldError is one entry of a {"errors": [...]} body.
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// Error is the normalized rejection returned by Client.Do. It serializes to
// exactly {"error": "..."} or {"errors": [...]}; a structured backend body
// is kept byte-for-byte in Body and serialized unchanged.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Fields  []FieldError
	Body    json.RawMessage

	cause error
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Msg)
	}
	return strings.Join(parts, "; ")
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrApplication:
		return e.Kind == KindApplication
	case ErrTimeout:
		return e.Kind == KindTimeout
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrUnexpected:
		return e.Kind == KindUnexpected
	}
	return false
}

func (e *Error) MarshalJSON() ([]byte, error) {
	if len(e.Body) > 0 {
		return e.Body, nil
	}
	if len(e.Fields) > 0 {
		return json.Marshal(struct {
			Errors []FieldError `json:"errors"`
		}{e.Fields})
	}
	return json.Marshal(struct {
		Error string `json:"error"`
	}{e.Message})
}

// AsError returns the *Error inside err, if any.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Normalize returns err as an *Error. Errors that already are one are
// returned unchanged; anything else is treated as a local failure.
func Normalize(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := AsError(err); ok {
		return e
	}
	return fromFailure(err)
}

// errorBody is the loosest reading of a backend error document. Field
// entries may name the field "field", "path" or "param".
type errorBody struct {
	Error   *string `json:"error"`
	Message *string `json:"message"`
	Errors  []struct {
		Field   string `json:"field"`
		Path    string `json:"path"`
		Param   string `json:"param"`
		Msg     string `json:"msg"`
		Message string `json:"message"`
	} `json:"errors"`
}

// fromResponse normalizes a non-2xx response.
func fromResponse(status int, body []byte) *Error {
	trimmed := bytes.TrimSpace(body)

	var eb errorBody
	if len(trimmed) > 0 && trimmed[0] == '{' && json.Unmarshal(trimmed, &eb) == nil {
		if len(eb.Errors) > 0 {
			fields := make([]FieldError, 0, len(eb.Errors))
			for _, fe := range eb.Errors {
				f := FieldError{Field: firstNonEmpty(fe.Field, fe.Path, fe.Param), Msg: firstNonEmpty(fe.Msg, fe.Message)}
				fields = append(fields, f)
			}
			e := &Error{Kind: KindValidation, Status: status, Fields: fields, Body: json.RawMessage(trimmed)}
			if eb.Error != nil {
				e.Message = *eb.Error
			}
			return e
		}
		if eb.Error != nil {
			return &Error{Kind: KindApplication, Status: status, Message: *eb.Error, Body: json.RawMessage(trimmed)}
		}
		if eb.Message != nil && *eb.Message != "" {
			return &Error{Kind: KindApplication, Status: status, Message: *eb.Message}
		}
	}

	return &Error{
		Kind:    KindUnexpected,
		Status:  status,
		Message: fmt.Sprintf("Request failed with status code %d", status),
	}
}

// fromTransport normalizes an error returned by http.Client.Do: no usable
// response exists, so anything that is neither a timeout nor a cancellation
// is a connectivity failure.
func fromTransport(err error) *Error {
	if isTimeout(err) {
		return &Error{Kind: KindTimeout, Message: MsgTimeout, cause: err}
	}
	if errors.Is(err, context.Canceled) {
		return &Error{Kind: KindUnexpected, Message: context.Canceled.Error(), cause: err}
	}
	return &Error{Kind: KindNetwork, Message: MsgNetwork, cause: err}
}

// fromFailure normalizes a local failure (building the request, reading or
// decoding the response, preparing an upload). Such failures keep their own
// message; only timeouts and cancellations are singled out.
func fromFailure(err error) *Error {
	if isTimeout(err) {
		return &Error{Kind: KindTimeout, Message: MsgTimeout, cause: err}
	}

	if errors.Is(err, context.Canceled) {
		return &Error{Kind: KindUnexpected, Message: context.Canceled.Error(), cause: err}
	}

	if msg := err.Error(); msg != "" {
		return &Error{Kind: KindUnexpected, Message: msg, cause: err}
	}
	return &Error{Kind: KindUnexpected, Message: MsgUnexpected, cause: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
