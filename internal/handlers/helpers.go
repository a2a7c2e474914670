package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// notFound is the response body for any unknown item id.
const notFound = "not found"

// writeJSON serialises v as JSON and writes it to the response with the
// given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a standard JSON error response of the form
// {"detail": "message"}.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeNotFound writes the JSON string "not found" with a 404 status.
func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, notFound)
}

// parseID converts a path parameter to an item id. Leading whitespace and
// an optional sign are accepted, then the leading run of digits is used and
// anything after it is ignored ("2.5" and "2abc" both give 2). Ids are
// assigned from 1, so a value without leading digits maps to 0, which never
// matches an item.
func parseID(s string) int {
	s = strings.TrimLeft(s, " \t\n\r\v\f")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}

	id, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return id
}

var errTrailingData = errors.New("unexpected data after JSON body")

// decodeBody decodes a single JSON value from the request body into v. An
// empty body leaves v untouched; anything after the value is an error.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}
