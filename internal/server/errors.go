package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"quoteScope/internal/model"
)

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind model.ErrorKind) int {
	switch kind {
	case model.KindUnknownSymbol, model.KindInvalidAmountFormat, model.KindInvalidSlippage, model.KindInvalidRequest:
		return http.StatusBadRequest
	case model.KindInsufficientLiquidity:
		return http.StatusUnprocessableEntity
	case model.KindChainDataNotFound:
		return http.StatusNotFound
	case model.KindChainUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// JSONErrorHandler renders router and middleware errors in the ErrorResponse shape.
func JSONErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			_ = c.JSON(he.Code, ErrorResponse{Error: ErrorBody{
				Type:    strings.ReplaceAll(http.StatusText(he.Code), " ", ""),
				Message: strings.ToLower(http.StatusText(he.Code)),
			}})
			return
		}

		_ = c.JSON(http.StatusInternalServerError, ErrorResponse{Error: ErrorBody{
			Type:    string(model.KindInternal),
			Message: "internal server error",
		}})
	}
}

func errorBody(svcErr *model.ServiceError, devMode bool) ErrorBody {
	body := ErrorBody{Type: string(svcErr.Kind), Message: svcErr.Detail}
	if devMode && svcErr.Cause != nil {
		body.Details = svcErr.Cause.Error()
	}
	return body
}
