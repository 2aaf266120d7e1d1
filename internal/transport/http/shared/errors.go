package shared

import (
	"errors"
	"net/http"

	"hrrecords/internal/domain/apperr"
	"hrrecords/internal/requestctx"
	"hrrecords/internal/transport/http/api"
)

// WriteError maps a service or decoding error to the uniform error response.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *ValidationError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &verr):
		api.FailWithFields(w, r, http.StatusBadRequest, verr.Message, verr.Fields)
	case apperr.IsNotFound(err):
		api.Fail(w, r, http.StatusNotFound, err.Error())
	case apperr.IsInvalidData(err):
		api.Fail(w, r, http.StatusBadRequest, err.Error())
	case errors.As(err, &tooLarge):
		api.Fail(w, r, http.StatusRequestEntityTooLarge, "request body too large")
	default:
		requestctx.Logger(r.Context()).WithError(err).Error("request failed")
		api.Fail(w, r, http.StatusInternalServerError, "internal server error")
	}
}
