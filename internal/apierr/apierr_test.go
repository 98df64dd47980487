package apierr

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	err := &Error{Service: "Trello", StatusCode: 401, Status: "401 Unauthorized", Body: "invalid token"}
	msg := err.Error()
	if !strings.Contains(msg, "Trello") || !strings.Contains(msg, "invalid token") {
		t.Errorf("Unexpected error message: %s", msg)
	}

	empty := &Error{Service: "Jira", StatusCode: 500, Status: "500 Internal Server Error"}
	if strings.Contains(empty.Error(), " - ") {
		t.Errorf("Empty body should not produce a trailing separator: %s", empty.Error())
	}
}

func TestErrorTruncatesLongBodies(t *testing.T) {
	t.Parallel()

	err := &Error{Service: "Jira", Status: "400 Bad Request", Body: strings.Repeat("x", 500)}
	if len(err.Error()) > 300 {
		t.Errorf("Expected long bodies to be truncated, got %d chars", len(err.Error()))
	}
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("failed to delete card: %w",
		&Error{Service: "Trello", StatusCode: http.StatusNotFound, Status: "404 Not Found"})

	if !IsNotFound(wrapped) {
		t.Error("Expected IsNotFound to match a wrapped 404")
	}
	if IsAuth(wrapped) {
		t.Error("A 404 is not an auth failure")
	}
	if StatusCode(wrapped) != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", StatusCode(wrapped))
	}
	if IsNotFound(fmt.Errorf("plain error")) {
		t.Error("Plain errors must not match")
	}
}
