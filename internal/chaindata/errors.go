package chaindata

import (
	"errors"
	"fmt"
)

// Kind classifies a Port failure.
type Kind int

const (
	// KindUnavailable covers transport failures: network, timeout, overloaded node.
	KindUnavailable Kind = iota + 1
	// KindNotFound means the address, contract or pool does not exist.
	KindNotFound
	// KindReverted means the node executed the call and it reverted.
	KindReverted
	// KindMalformed means the node answered with data that could not be decoded.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindNotFound:
		return "not_found"
	case KindReverted:
		return "reverted"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Error is the failure type returned by Port implementations.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err with a classification.
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the classification carried by err, or 0 when none.
func KindOf(err error) Kind {
	var chainErr *Error
	if errors.As(err, &chainErr) {
		return chainErr.Kind
	}
	return 0
}
