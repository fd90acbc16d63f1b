package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/partner"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/errs"
)

// errForbidden covers access rules enforced at the edge, such as a kitchen
// reading another tenant's queue. Lifecycle edges use UnauthorizedTransition.
var errForbidden = errors.New("forbidden")

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// classify maps a core error to a status code and a stable label.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, order.ErrInvalidTransition):
		return http.StatusConflict, "INVALID_TRANSITION"
	case errors.Is(err, order.ErrUnauthorizedTransition):
		return http.StatusForbidden, "UNAUTHORIZED_TRANSITION"
	case errors.Is(err, order.ErrStaleOrder):
		return http.StatusConflict, "STALE_ORDER"
	case errors.Is(err, kernel.ErrNegativeResult):
		return http.StatusInternalServerError, "NEGATIVE_RESULT"
	case errors.Is(err, cart.ErrEmptyCart):
		return http.StatusBadRequest, "EMPTY_CART"
	case errors.Is(err, payment.ErrRefundNotAllowed):
		return http.StatusConflict, "REFUND_NOT_ALLOWED"
	case errors.Is(err, payment.ErrPaymentTransition):
		return http.StatusConflict, "PAYMENT_TRANSITION"
	case errors.Is(err, partner.ErrPartnerIsInactive):
		return http.StatusConflict, "PARTNER_INACTIVE"
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, errForbidden):
		return http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusBadRequest, "INVALID_REQUEST"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

func (s *Server) fail(c echo.Context, err error) error {
	status, label := classify(err)

	message := err.Error()
	if label == "INTERNAL" {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
		message = "internal error"
	}

	return c.JSON(status, ErrorResponse{Code: label, Message: message})
}

// ErrorHandler renders echo errors (routing, authentication, contract
// validation) in the same body shape as core errors.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "internal error"
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(status)
			}
		} else {
			logger.ErrorContext(c.Request().Context(), "unhandled error", "path", c.Path(), "error", err)
		}

		label := strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
		if writeErr := c.JSON(status, ErrorResponse{Code: label, Message: message}); writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "write error response", "error", writeErr)
		}
	}
}
