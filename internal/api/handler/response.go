package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hszk-dev/vidcatalog/internal/domain/model"
	"github.com/hszk-dev/vidcatalog/internal/domain/repository"
)

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, "failed to encode response", http.StatusInternalServerError)
		}
	}
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func Error(w http.ResponseWriter, status int, err string, message string) {
	JSON(w, status, ErrorResponse{
		Error:   err,
		Message: message,
	})
}

// ServiceError maps domain errors onto HTTP responses.
func ServiceError(w http.ResponseWriter, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		Error(w, http.StatusBadRequest, "invalid_"+verr.Field, verr.Error())
	case errors.Is(err, repository.ErrMetadataNotFound):
		Error(w, http.StatusNotFound, "metadata_not_found", "No metadata for this video")
	case errors.Is(err, repository.ErrObjectNotFound):
		Error(w, http.StatusNotFound, "not_found", "Object does not exist")
	case errors.Is(err, repository.ErrUpstreamUnavailable):
		Error(w, http.StatusBadGateway, "upstream_unavailable", "Object storage is unreachable")
	default:
		Error(w, http.StatusInternalServerError, "internal_error", "Something went wrong")
	}
}
