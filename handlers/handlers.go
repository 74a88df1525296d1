// Package handlers provides HTTP handlers for different services across the
// application.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/alphacoop/gateway-settings-api/errors"
)

var InvalidBodyError = &errors.RequestError{
	StatusCode: http.StatusBadRequest,
	Err:        fmt.Errorf("invalid body"),
}

// handleError is a helper function for unified HTTP error handling.
func handleError(rw http.ResponseWriter, r *http.Request, err error) {
	log.
		WithFields(log.Fields{"method": r.Method, "path": r.URL.Path, "error": err}).
		Warn("Request error")

	// Check if the error was an errors.RequestError
	reqErr, isReqErr := err.(*errors.RequestError)
	if isReqErr {
		// Send error message to client
		http.Error(rw, reqErr.Error(), reqErr.StatusCode)
		return
	}

	// Otherwise do not send data regarding the error
	http.Error(rw, "Error", http.StatusInternalServerError)
}

// handleJsonResponse is a helper function for unified JSON response handling.
func handleJsonResponse(rw http.ResponseWriter, status int, res interface{}) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	if err := json.NewEncoder(rw).Encode(res); err != nil {
		log.WithFields(log.Fields{"error": err}).Warn("Error while encoding response")
	}
}

func servePlainText(rw http.ResponseWriter, s string) {
	rw.Header().Set("Content-Type", "text/plain")
	rw.Header().Set("Content-Length", strconv.Itoa(len(s)))
	rw.WriteHeader(http.StatusOK)
	rw.Write([]byte(s)) // nolint
}

func checkNonEmptyBody(r *http.Request) error {
	if r.Body == nil || r.ContentLength == 0 {
		return InvalidBodyError
	}
	return nil
}
