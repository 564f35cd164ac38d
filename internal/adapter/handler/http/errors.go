package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/seedpay/braintree-sync/internal/domain/gateway"
)

// gatewayErrorResponse maps a vendor-reported failure to a 402 carrying the
// vendor code; anything else is an internal error.
func gatewayErrorResponse(c echo.Context, logger *zap.Logger, msg string, err error) error {
	var gwErr *gateway.GatewayError
	if errors.As(err, &gwErr) {
		return c.JSON(http.StatusPaymentRequired, echo.Map{
			"error": gwErr.Message,
			"code":  gwErr.Code,
		})
	}

	logger.Error(msg, zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"error": msg,
	})
}
