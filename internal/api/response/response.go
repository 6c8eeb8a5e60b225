// Package response writes the JSON envelopes shared by every handler.
package response

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"storefront/internal/domain"
	apperror "storefront/internal/errors"
	"storefront/internal/messages"
	"storefront/internal/pkg/logger"
)

// maxBodyBytes bounds request payloads.
const maxBodyBytes = 1 << 20

// JSON writes data with the given status.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Error maps err onto its status and body. 5xx answers are logged at error level with the
// cause, 4xx answers at warn.
func Error(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	status, category, body := apperror.MapToHTTPStatus(err)

	if status >= http.StatusInternalServerError {
		log.Error(fmt.Sprintf("%s %s failed: %s", r.Method, r.URL.Path, category), err)
	} else {
		log.Warn("request rejected", map[string]interface{}{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   status,
			"category": category,
			"body":     body,
		})
	}

	JSON(w, status, body)
}

// Decode reads a JSON body into dst. A malformed body is a 400.
func Decode(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return apperror.NewValidationError(messages.InvalidPayload)
	}
	return nil
}

// ListQuery reads page, limit, search, sort and order from the query string.
// Non-numeric paging values count as absent.
func ListQuery(r *http.Request) domain.ListQuery {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return domain.ListQuery{
		Page:   page,
		Limit:  limit,
		Search: q.Get("search"),
		Sort:   q.Get("sort"),
		Order:  q.Get("order"),
	}
}

// Message is the {message} body.
func Message(msg string) map[string]interface{} {
	return map[string]interface{}{"message": msg}
}
