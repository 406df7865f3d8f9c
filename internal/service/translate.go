package service

import (
	"context"
	"errors"

	"quoteScope/internal/chaindata"
	"quoteScope/internal/model"
)

// Translate maps any error onto the service taxonomy. It never returns nil for a
// non-nil input.
func Translate(err error) *model.ServiceError {
	if err == nil {
		return nil
	}
	if svcErr, ok := model.AsServiceError(err); ok {
		return svcErr
	}

	var chainErr *chaindata.Error
	if errors.As(err, &chainErr) {
		switch chainErr.Kind {
		case chaindata.KindUnavailable:
			return model.ErrChainUnavailable(err)
		case chaindata.KindNotFound, chaindata.KindReverted:
			return model.ErrChainDataNotFound(chainErr.Op, err)
		case chaindata.KindMalformed:
			return model.ErrInternal(err)
		}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return model.ErrChainUnavailable(err)
	}
	return model.ErrInternal(err)
}
