package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rosterline/backend/internal/schedule"
	"github.com/rosterline/backend/internal/scheduling"
)

func (h *Handler) logInternalServerError(r *http.Request, err error) {
	slog.Error("internal server error", "method", r.Method, "path", r.URL.Path, "error", err)
}

func (h *Handler) readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logInternalServerError(r, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, msg string) {
	h.writeJSON(w, r, http.StatusOK, Response{
		Success: false,
		Message: msg,
		Data:    nil,
	})
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		h.errorResponse(w, r, err.Error())
		return
	}

	h.errorResponse(w, r, validationErrors[0].Translate(h.translator))
}

func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logInternalServerError(r, err)
	h.writeJSON(w, r, http.StatusInternalServerError, Response{
		Success: false,
		Message: "internal server error",
		Data:    nil,
	})
}

func (h *Handler) successResponse(w http.ResponseWriter, r *http.Request, msg string, data any) {
	h.writeJSON(w, r, http.StatusOK, Response{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

// scheduleError translates the scheduling core's error taxonomy into caller
// responses: validation and window violations carry their own message,
// missing rows become a not-found message, everything else is a 500.
func (h *Handler) scheduleError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *scheduling.ValidationError
	switch {
	case errors.As(err, &vErr):
		h.errorResponse(w, r, vErr.Message)
	case errors.Is(err, schedule.ErrPastWeek), errors.Is(err, schedule.ErrBeyondHorizon):
		h.errorResponse(w, r, err.Error())
	case errors.Is(err, schedule.ErrShiftNotFound):
		h.errorResponse(w, r, err.Error())
	case errors.Is(err, sql.ErrNoRows):
		h.errorResponse(w, r, "requested record does not exist")
	default:
		h.internalServerError(w, r, err)
	}
}
