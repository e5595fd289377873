package utils

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
)

type clientError struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message"`
}

// ParseBody decodes a JSON request body into out, rejecting unknown fields.
func ParseBody(body io.Reader, out interface{}) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(out)
}

// EncodeJSONBody writes data as JSON without touching the status code.
func EncodeJSONBody(w http.ResponseWriter, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(data)
}

// RespondJSON sends data with the given status code.
func RespondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.Errorf("RespondJSON: failed to encode response err = %v", err)
	}
}

// RespondError logs the underlying error and sends message to the client.
func RespondError(w http.ResponseWriter, statusCode int, err error, message string) {
	body := clientError{Message: message}
	if err != nil {
		body.Error = err.Error()
		logrus.WithField("status", statusCode).Errorf("%s: %v", message, err)
	} else {
		logrus.WithField("status", statusCode).Warn(message)
	}
	if statusCode >= http.StatusInternalServerError {
		body.Error = ""
	}
	RespondJSON(w, statusCode, body)
}
