package handlers

import (
	"net/http"

	"places-api/services"
)

// statusFor maps the service error taxonomy to transport statuses. This is
// the only place that translation happens.
func statusFor(err error) int {
	switch services.KindOf(err) {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindUnauthorized:
		return http.StatusUnauthorized
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindConflict:
		return http.StatusConflict
	case services.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// message returns the caller-facing text for err, hiding internals behind a
// generic message.
func message(err error) string {
	if services.KindOf(err) == services.KindInternal {
		return "internal server error"
	}
	return err.Error()
}
