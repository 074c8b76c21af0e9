package handlers

import (
	"delivery-planner/internal/domain"
	"delivery-planner/internal/platform/obs"
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		obs.Logger(r.Context()).Error("encode failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

func writeValidationErrors(w http.ResponseWriter, r *http.Request, errs []string) {
	writeJSON(w, r, http.StatusBadRequest, map[string]any{
		"error":  "validation failed",
		"errors": errs,
	})
}

// decodeJSON reads exactly one JSON object with no unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return errors.New("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON object")
	}
	return nil
}

// writePlanError maps planning failure kinds onto HTTP statuses.
func writePlanError(w http.ResponseWriter, r *http.Request, err error) {
	switch domain.KindOf(err) {
	case domain.FailureInvalidCoordinate:
		writeError(w, r, http.StatusUnprocessableEntity, "a delivery or depot location is not on the street map")
	case domain.FailureNoRoute:
		writeError(w, r, http.StatusUnprocessableEntity, "no route connects every delivery location")
	default:
		obs.Logger(r.Context()).Error("generate plan failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
