package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ItsBakerX/trinkprotokolle-backend/internal/service"
)

// HandleServiceError translates business errors into HTTP responses.
// Handlers that need field-scoped bodies (conflicts, closed protokoll)
// intercept those errors before falling back to this dispatcher.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAuthenticationFailed):
		ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrPflegerNotFound),
		errors.Is(err, service.ErrProtokollNotFound),
		errors.Is(err, service.ErrEintragNotFound),
		errors.Is(err, service.ErrErstellerNotFound):
		ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrDuplicateName),
		errors.Is(err, service.ErrDuplicatePatientDatum),
		errors.Is(err, service.ErrProtokollClosed):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	default:
		logrus.WithError(err).Error("Unhandled internal server error")
		ErrorResponse(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
