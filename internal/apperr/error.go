package apperr

import (
	"fmt"
	"strings"
)

// AppError is the single error type returned by every domain/service layer
// in the gateway. Handlers never construct error envelopes by hand; they
// return an *AppError and let WithError render it.
type AppError struct {
	Code    Code
	Status  int
	Message string
	Params  []any

	cause error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New builds an AppError from a registered code. Params are substituted
// into the registered message with fmt.Sprintf when the message contains a
// verb (e.g. E_ENGINE_IN_USE_BY); otherwise they are carried verbatim in
// the response envelope for the client to interpret.
func New(code Code, params ...any) *AppError {
	e, ok := registry[code]
	if !ok {
		e = entry{status: 500, message: string(code)}
	}

	msg := e.message
	if len(params) > 0 && strings.Contains(e.message, "%") {
		msg = fmt.Sprintf(e.message, params...)
	}

	return &AppError{Code: code, Status: e.status, Message: msg, Params: params}
}

// Internal wraps an unexpected error as E_INTERNAL_ERROR, preserving the
// original message for logs but never leaking it to the client envelope.
func Internal(cause error) *AppError {
	return &AppError{Code: EInternalError, Status: 500, Message: registry[EInternalError].message, cause: cause}
}

// Unwrap returns the error Internal wrapped, or nil for any other AppError.
func (e *AppError) Unwrap() error {
	return e.cause
}

// Passthrough builds an AppError carrying an external service's own
// {status, code, message} verbatim (§7: the pool-manager lookup error is
// forwarded opaquely rather than translated into a gateway-native code).
func Passthrough(status int, code, message string) *AppError {
	return &AppError{Code: Code(code), Status: status, Message: message}
}

// Is reports whether err is an *AppError with the given code.
func Is(err error, code Code) bool {
	ae, ok := err.(*AppError)
	return ok && ae.Code == code
}
