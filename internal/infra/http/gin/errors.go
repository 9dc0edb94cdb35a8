package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"prorent/internal/app/commands"
	"prorent/internal/app/handlers/support"
	"prorent/internal/app/queries"
	"prorent/internal/domain/access"
	"prorent/internal/domain/pricing"
	"prorent/internal/domain/reservation"
	"prorent/internal/domain/shared/datekey"
	"prorent/internal/domain/shared/daterange"
	"prorent/internal/infra/backend"
	"prorent/internal/infra/validation"
)

var statusTable = []struct {
	err    error
	status int
}{
	{validation.ErrValidation, http.StatusBadRequest},
	{support.ErrInvalidInput, http.StatusBadRequest},
	{daterange.ErrInvalidRange, http.StatusBadRequest},
	{datekey.ErrInvalidKey, http.StatusBadRequest},
	{access.ErrUnauthenticated, http.StatusUnauthorized},
	{reservation.ErrDraftOwner, http.StatusUnauthorized},
	{backend.ErrUnauthorized, http.StatusUnauthorized},
	{access.ErrForbidden, http.StatusForbidden},
	{backend.ErrForbidden, http.StatusForbidden},
	{backend.ErrNotFound, http.StatusNotFound},
	{reservation.ErrDraftNotFound, http.StatusNotFound},
	{reservation.ErrDatesUnavailable, http.StatusConflict},
	{backend.ErrConflict, http.StatusConflict},
	{pricing.ErrInvalidPeakRate, http.StatusBadGateway},
	{pricing.ErrInvalidPrice, http.StatusBadGateway},
	{pricing.ErrInvalidRateType, http.StatusBadGateway},
	{backend.ErrUpstream, http.StatusBadGateway},
	{commands.ErrNilBus, http.StatusServiceUnavailable},
	{queries.ErrNilBus, http.StatusServiceUnavailable},
	{backend.ErrNotConfigured, http.StatusServiceUnavailable},
}

func statusFor(err error) int {
	for _, entry := range statusTable {
		if errors.Is(err, entry.err) {
			return entry.status
		}
	}
	return http.StatusInternalServerError
}

// respondError renders err as {"error": ...} plus whatever detail the error carries.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	status := statusFor(err)
	_ = c.Error(err)
	body := gin.H{"error": err.Error()}

	var verr *validation.Error
	var conflict *reservation.ConflictError
	var denied *access.DeniedError
	switch {
	case errors.As(err, &verr):
		body["error"] = "validation failed"
		body["details"] = verr.Fields
	case errors.As(err, &conflict):
		body["error"] = "dates unavailable"
		body["conflicts"] = conflict.Dates
	case errors.As(err, &denied):
		body["redirect"] = denied.Decision.Target
	}
	if status >= http.StatusInternalServerError {
		if logger != nil {
			logger.Error("request failed", "path", c.FullPath(), "error", err)
		}
		body["error"] = http.StatusText(status)
	}
	c.JSON(status, body)
}

func fieldError(field, rule string) error {
	return &validation.Error{Fields: map[string]string{field: rule}}
}
