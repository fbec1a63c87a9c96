package remote

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies errors reported by the backend
type Kind int

// error kinds
const (
	KindOther        Kind = iota
	KindConnectivity      // backend missing, misconfigured or unreachable
	KindSchema            // schema or permission problem reported by the store
	KindConstraint        // uniqueness constraint violation
	KindValidation        // input rejected by the backend
	KindAuth              // invalid api key or no signed-in user
)

// wire error codes shared by the backend and the client
const (
	CodeUnauthorized    = "PGRST116"
	CodeSchema          = "PGRST301"
	CodeUniqueViolation = "23505"
	CodeInvalidInput    = "22P02"
)

func (k Kind) String() string {
	switch k {
	case KindConnectivity:
		return "connectivity"
	case KindSchema:
		return "schema"
	case KindConstraint:
		return "constraint"
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	default:
		return "other"
	}
}

// Error is a backend failure translated at the client boundary
type Error struct {
	Kind    Kind
	Code    string // backend error code, empty for transport failures
	Status  int    // HTTP status, zero for transport failures
	Message string
	Err     error // underlying transport error, if any
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Code)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a remote error, KindOther for foreign errors
func KindOf(err error) Kind {
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr.Kind
	}
	return KindOther
}

// errorBody is the JSON error envelope sent by the backend
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// newStatusError builds an Error from a backend error response
func newStatusError(status int, body errorBody) *Error {
	res := &Error{Status: status, Code: body.Code, Message: body.Message}
	if res.Message == "" {
		res.Message = http.StatusText(status)
	}

	switch {
	case body.Code == CodeUniqueViolation:
		res.Kind = KindConstraint
	case body.Code == CodeSchema:
		res.Kind = KindSchema
	case body.Code == CodeUnauthorized, status == http.StatusUnauthorized, status == http.StatusForbidden:
		res.Kind = KindAuth
	case body.Code == CodeInvalidInput, status == http.StatusBadRequest:
		res.Kind = KindValidation
	case status == http.StatusConflict:
		res.Kind = KindConstraint
	case status >= http.StatusInternalServerError:
		res.Kind = KindConnectivity
	default:
		res.Kind = KindOther
	}
	return res
}

// newTransportError builds a connectivity Error from a failed request
func newTransportError(msg string, err error) *Error {
	return &Error{Kind: KindConnectivity, Message: fmt.Sprintf("%s: %v", msg, err), Err: err}
}
