package api

import (
	"net/http"

	"court-reservation/internal/handler/httperr"
	"court-reservation/internal/pkg/errs"
	"court-reservation/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// abortWithUsecaseError maps usecase failures onto HTTP. Client-facing
// categories carry the error text; server-side failures stay opaque.
func abortWithUsecaseError(c *gin.Context, err error) {
	var declined *commands.PaymentFailure
	switch {
	case errs.As(err, &declined):
		httperr.AbortWithError(c, http.StatusPaymentRequired, err, declined.Message, nil)
	case errs.Is(err, errs.ErrValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
	case errs.Is(err, errs.ErrNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, err.Error(), nil)
	case errs.Is(err, errs.ErrForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, err.Error(), nil)
	case errs.Is(err, errs.ErrConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, err.Error(), nil)
	case errs.Is(err, errs.ErrExpired):
		httperr.AbortWithError(c, http.StatusGone, err, err.Error(), nil)
	case errs.Is(err, errs.ErrUnavailable):
		httperr.AbortWithError(c, http.StatusBadGateway, err, "Payment service unavailable", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
	}
}
