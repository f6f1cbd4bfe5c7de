package util

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"auth-service/internal/apperr"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// ErrorItem : формат ошибки в ответе
type ErrorItem struct {
	Type     string `json:"type"`
	Msg      string `json:"msg"`
	Path     string `json:"path"`
	Location string `json:"location"`
}

type ErrorResponse struct {
	Errors []ErrorItem `json:"errors"`
}

// StatusFor : единственное место, где тип ошибки превращается в HTTP статус и текст для клиента
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrKeyUnavailable):
		return http.StatusInternalServerError, "internal server error"
	case errors.Is(err, apperr.ErrInvalidCredential):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, apperr.ErrUserNotFound):
		return http.StatusBadRequest, "User with the token could not found"
	case errors.Is(err, apperr.ErrBadCredentials):
		return http.StatusBadRequest, "Email or password does not match."
	case errors.Is(err, apperr.ErrAlreadyExists):
		return http.StatusBadRequest, apperr.PublicMessage(err, "already exists")
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest, apperr.PublicMessage(err, "bad request")
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, apperr.PublicMessage(err, "not found")
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// WriteError : централизованный обработчик ошибок для хендлеров и middleware
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := StatusFor(err)

	requestID := middleware.GetReqID(r.Context())
	if requestID == "" {
		requestID = uuid.NewString()
	}

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"request_id", requestID, "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		slog.DebugContext(r.Context(), "request rejected",
			"request_id", requestID, "status", status, "error", err)
	}

	HandleError(w, message, status)
}

func HandleError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Errors: []ErrorItem{{
			Type:     http.StatusText(statusCode),
			Msg:      message,
			Path:     "",
			Location: "",
		}},
	})
}

// WriteJSON : успешный ответ
func WriteJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("encode response", "error", err)
	}
}
