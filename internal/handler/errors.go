package handler

import (
	"errors"
	"net/http"

	"shopstock/internal/service"
)

// statusFromError maps service sentinel errors to HTTP statuses: rejected
// input is a 400, missing records are navigational 404s, referential and
// terminal-status refusals are 409s surfaced verbatim, and everything else
// is a collaborator failure the client cannot fix.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrReferenced), errors.Is(err, service.ErrNotEditable):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
