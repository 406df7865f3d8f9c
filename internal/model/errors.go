package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorKind classifies a ServiceError.
type ErrorKind string

const (
	KindUnknownSymbol         ErrorKind = "UnknownSymbol"
	KindInvalidAmountFormat   ErrorKind = "InvalidAmountFormat"
	KindInvalidSlippage       ErrorKind = "InvalidSlippage"
	KindInvalidRequest        ErrorKind = "InvalidRequest"
	KindInsufficientLiquidity ErrorKind = "InsufficientLiquidity"
	KindChainUnavailable      ErrorKind = "ChainUnavailable"
	KindChainDataNotFound     ErrorKind = "ChainDataNotFound"
	KindInternal              ErrorKind = "Internal"
)

// ServiceError is the single error type returned by the engine operations.
type ServiceError struct {
	Kind   ErrorKind
	Detail string
	Cause  error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// MarshalJSON renders {"type": kind, "message": detail}.
func (e *ServiceError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorKind `json:"type"`
		Message string    `json:"message"`
	}{Type: e.Kind, Message: e.Detail})
}

// AsServiceError extracts a ServiceError from an error chain.
func AsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}

// IsKind reports whether err carries a ServiceError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	svcErr, ok := AsServiceError(err)
	return ok && svcErr.Kind == kind
}

func ErrUnknownSymbol(identifier string) *ServiceError {
	return &ServiceError{Kind: KindUnknownSymbol, Detail: fmt.Sprintf("unknown token %q", identifier)}
}

func ErrInvalidAmountFormat(input string, reason string) *ServiceError {
	return &ServiceError{Kind: KindInvalidAmountFormat, Detail: fmt.Sprintf("invalid amount %q: %s", input, reason)}
}

// ErrInvalidSlippage reports a tolerance given as value that is not an integer in [0, 10000].
func ErrInvalidSlippage(value string) *ServiceError {
	return &ServiceError{Kind: KindInvalidSlippage, Detail: fmt.Sprintf("slippage %s bps outside [0, 10000]", value)}
}

func ErrInvalidRequest(reason string) *ServiceError {
	return &ServiceError{Kind: KindInvalidRequest, Detail: reason}
}

func ErrInsufficientLiquidity(pool string) *ServiceError {
	return &ServiceError{Kind: KindInsufficientLiquidity, Detail: fmt.Sprintf("insufficient liquidity in %s", pool)}
}

func ErrChainUnavailable(cause error) *ServiceError {
	return &ServiceError{Kind: KindChainUnavailable, Detail: "chain data source unavailable", Cause: cause}
}

func ErrChainDataNotFound(what string, cause error) *ServiceError {
	return &ServiceError{Kind: KindChainDataNotFound, Detail: fmt.Sprintf("%s not found on chain", what), Cause: cause}
}

func ErrInternal(cause error) *ServiceError {
	return &ServiceError{Kind: KindInternal, Detail: "internal error", Cause: cause}
}
