package apiutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
)

type HandlerError struct {
	Status  int
	Message string
	Err     error
}

func (e HandlerError) Error() string {
	return e.Message
}

func (e HandlerError) Unwrap() error {
	return e.Err
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteError writes {"error": message} with the given status.
func WriteError(w http.ResponseWriter, status int, message string) error {
	return WriteJSON(w, status, ErrorResponse{Error: message})
}

// WriteHandlerError writes err as a JSON error. A HandlerError keeps its
// status; anything else becomes a 500 carrying the error text.
func WriteHandlerError(w http.ResponseWriter, err error) error {
	var herr HandlerError
	if errors.As(err, &herr) {
		return WriteError(w, herr.Status, herr.Message)
	}
	return WriteError(w, http.StatusInternalServerError, err.Error())
}
