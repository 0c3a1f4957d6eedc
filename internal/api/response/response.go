// Package response writes the JSON envelopes shared by every handler.
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes bounds request bodies read by Decode.
const MaxBodyBytes = 1 << 20

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// SuccessResponse wraps the payload of a successful response.
type SuccessResponse struct {
	Data any `json:"data"`
}

// PaginatedResponse is one page of a list.
type PaginatedResponse struct {
	Data       any `json:"data"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

// Decode reads a single JSON value from the request body into v.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		}
		return errors.New("invalid request body")
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must hold a single JSON object")
	}
	return nil
}

// JSON writes v with the given status code. A nil v writes headers only.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	// Headers are already sent, so an encoding failure can only truncate.
	_ = json.NewEncoder(w).Encode(v)
}

// Success writes a 200 response.
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, SuccessResponse{Data: data})
}

// NoContent writes a 204 No Content response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error writes err with the given status code.
func Error(w http.ResponseWriter, status int, err error) {
	JSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: err.Error(),
		Code:    status,
	})
}

func BadRequest(w http.ResponseWriter, err error) { Error(w, http.StatusBadRequest, err) }

func NotFound(w http.ResponseWriter, err error) { Error(w, http.StatusNotFound, err) }

// Unprocessable writes a 422 for well-formed requests whose content could
// not be used, such as a decklist with no resolvable cards.
func Unprocessable(w http.ResponseWriter, err error) { Error(w, http.StatusUnprocessableEntity, err) }

func InternalError(w http.ResponseWriter, err error) { Error(w, http.StatusInternalServerError, err) }

func ServiceUnavailable(w http.ResponseWriter, err error) {
	Error(w, http.StatusServiceUnavailable, err)
}

// Page writes the page-th page (1-based) of items. Pages past the end are
// empty.
func Page[T any](w http.ResponseWriter, items []T, page, pageSize int) {
	page = max(page, 1)
	if pageSize <= 0 {
		pageSize = len(items)
	}

	start := min((page-1)*max(pageSize, 1), len(items))
	end := min(start+pageSize, len(items))
	totalPages := max((len(items)+pageSize-1)/max(pageSize, 1), 1)

	JSON(w, http.StatusOK, PaginatedResponse{
		Data:       items[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalCount: len(items),
		TotalPages: totalPages,
	})
}
