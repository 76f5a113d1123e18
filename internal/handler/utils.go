package handler

import (
	"errors"
	"net/http"

	"simplechat/internal/pkg/httputils"
	"simplechat/internal/service"
)

type PongResponse struct {
	Message string `json:"message"`
}

// Ping
// @Summary Ping the server
// @Description Ping the server
// @Tags system
// @Produce json
// @Success 200 {object} PongResponse
// @Router /ping [get]
func Ping(w http.ResponseWriter, r *http.Request) {
	httputils.ResponseJSON(w, http.StatusOK, PongResponse{Message: "Pong"})
}

// respondServiceError maps the workflow error taxonomy to HTTP statuses.
func respondServiceError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &validationErr):
		httputils.ResponseValidationError(w, validationErr.Fields)
	case errors.Is(err, service.ErrNotFound):
		httputils.ResponseError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		httputils.ResponseError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrOwnsChats):
		httputils.ResponseError(w, http.StatusBadRequest, err.Error())
	default:
		httputils.ResponseError(w, http.StatusInternalServerError, "Internal server error")
	}
}
