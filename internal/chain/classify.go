package chain

import (
	"context"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/rpc"

	"quoteScope/internal/chaindata"
	"quoteScope/internal/dex"
)

// JSON-RPC codes that signal an overloaded or failing node rather than a bad call.
var transientRPCCodes = map[int]bool{
	-32005: true, // limit exceeded
	-32603: true, // internal error
}

// Classify maps a client or call-helper error onto a chaindata kind.
func Classify(err error) chaindata.Kind {
	if err == nil {
		return 0
	}
	if kind := chaindata.KindOf(err); kind != 0 {
		return kind
	}

	switch {
	case errors.Is(err, dex.ErrNoContract), errors.Is(err, dex.ErrNoPool), errors.Is(err, ethereum.NotFound):
		return chaindata.KindNotFound
	case errors.Is(err, dex.ErrDecode):
		return chaindata.KindMalformed
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return chaindata.KindUnavailable
	}

	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		return chaindata.KindUnavailable
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		if transientRPCCodes[rpcErr.ErrorCode()] && !isRevert(err) {
			return chaindata.KindUnavailable
		}
		return chaindata.KindReverted
	}

	if isRevert(err) {
		return chaindata.KindReverted
	}

	// dial failures, resets, EOFs and anything else from the transport
	return chaindata.KindUnavailable
}

func isRevert(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "revert") || strings.Contains(msg, "insufficient funds")
}
