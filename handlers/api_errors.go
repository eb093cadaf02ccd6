package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/gestao/cadastrobackend/dto"
	"github.com/gestao/cadastrobackend/logging"
	"github.com/gestao/cadastrobackend/services"
)

// ResponseWrapper is the body of every API response. Message is null on success.
type ResponseWrapper struct {
	Data    interface{} `json:"data"`
	Message *string     `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			logging.Named("http").Warn("error encoding JSON response", zap.Error(err))
		}
	}
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, ResponseWrapper{Data: data})
}

// WriteAPIError writes the wrapper with a null payload and the given message.
func WriteAPIError(w http.ResponseWriter, httpStatus int, detail string) {
	writeJSON(w, httpStatus, ResponseWrapper{Message: &detail})
}

// statusFor maps service and decoding errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrPersistence),
		errors.Is(err, dto.ErrInvalidDate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError answers with the mapped status. Client-facing messages are
// passed through; anything unclassified is logged and reported generically.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, data interface{}) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		requestLogger(r).Error("request failed", zap.Error(err))
		msg = "internal server error"
	}
	writeJSON(w, status, ResponseWrapper{Data: data, Message: &msg})
}
