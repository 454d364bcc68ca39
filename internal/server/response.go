package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jar0582/schedsim/pkg/model"
)

func requestID() string {
	return "req_" + uuid.New().String()[:8]
}

// respondOK writes a success response with the standard envelope.
func respondOK(w http.ResponseWriter, reqID string, data any) {
	respondJSON(w, http.StatusOK, reqID, data, nil)
}

// respondError writes an error response with the standard envelope.
func respondError(w http.ResponseWriter, reqID string, status int, apiErr *model.APIError) {
	respondJSON(w, status, reqID, nil, apiErr)
}

// respondSimError maps a simulator error onto an HTTP status.
func respondSimError(w http.ResponseWriter, reqID string, err error) {
	switch {
	case errors.Is(err, model.ErrPolicyNotFound):
		respondError(w, reqID, http.StatusNotFound, &model.APIError{Code: model.ErrCodeNotFound, Message: err.Error()})
	case errors.Is(err, model.ErrConfig):
		respondError(w, reqID, http.StatusBadRequest, &model.APIError{Code: model.ErrCodeValidation, Message: err.Error()})
	case errors.Is(err, model.ErrAborted):
		respondError(w, reqID, http.StatusUnprocessableEntity, &model.APIError{Code: model.ErrCodeAborted, Message: err.Error()})
	default:
		respondError(w, reqID, http.StatusInternalServerError, &model.APIError{Code: model.ErrCodeInternal, Message: err.Error()})
	}
}

func respondJSON(w http.ResponseWriter, status int, reqID string, data any, apiErr *model.APIError) {
	resp := model.Response{
		RequestID: reqID,
		Timestamp: time.Now().UTC(),
		Data:      data,
		Error:     apiErr,
	}
	if apiErr != nil {
		resp.Status = "error"
	} else {
		resp.Status = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
