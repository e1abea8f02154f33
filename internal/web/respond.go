// internal/web/respond.go
//
// JSON response helpers and the error-to-status mapping.
//
// The pantry error taxonomy maps onto HTTP like so:
//
//	ValidationError → 400
//	ErrNotFound     → 404
//	ErrDuplicate    → 409
//	ErrUnavailable  → 503
//
// Anything else is a 500.  Bodies are always `{"error": "..."}` so
// clients have one shape to parse.
package web

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"go.uber.org/zap"

	"github.com/yanizio/larder/internal/pantry"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.S().Errorw("response encode failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	var ve *pantry.ValidationError

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &ve):
		status = http.StatusBadRequest
	case errors.Is(err, pantry.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, pantry.ErrDuplicate):
		status = http.StatusConflict
	case errors.Is(err, pantry.ErrUnavailable):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError || status == http.StatusServiceUnavailable {
		zap.S().Errorw("request failed", "status", status, "err", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// round2 trims a percentage to two decimals at the JSON boundary, so
// 2/3 renders as 66.67 rather than a long float tail.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
