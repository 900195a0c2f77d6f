package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rogerio-castellano/warehouse-inventory/internal/logger"
)

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

func respond(w http.ResponseWriter, r *http.Request, status int, resp Response) {
	if err := writeJSON(w, status, resp); err != nil {
		logger.Error(r.Context()).Err(err).Msg("failed to write JSON response")
	}
}

func respondData(w http.ResponseWriter, r *http.Request, status int, data any) {
	respond(w, r, status, Response{Success: true, Data: data})
}

// respondError writes the error envelope; the error field carries the status text.
func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	respond(w, r, status, Response{Error: http.StatusText(status), Message: message})
}

// respondInternal logs err and hides it from the client.
func respondInternal(w http.ResponseWriter, r *http.Request, err error, message string) {
	logger.Error(r.Context()).Err(err).Str("path", r.URL.Path).Msg(message)
	respondError(w, r, http.StatusInternalServerError, message)
}

// RespondError writes the error envelope for code outside this package.
func RespondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	respondError(w, r, status, message)
}
