package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestRequestError(t *testing.T) {
	err := &RequestError{StatusCode: http.StatusBadRequest, Err: fmt.Errorf("invalid body")}

	if err.Error() != "invalid body" {
		t.Errorf(`expected error message to equal "invalid body", got "%s"`, err.Error())
	}

	var asErr error = err
	if asErr.Error() != "invalid body" {
		t.Error("expected RequestError to satisfy the error interface")
	}
}
