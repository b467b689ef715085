package handlers

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type bindProbe struct {
	Email    string `json:"email" binding:"required,email"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

func probeBindError(t *testing.T, body string) error {
	t.Helper()
	gin.SetMode(gin.TestMode)

	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	var probe bindProbe
	err := c.ShouldBindJSON(&probe)
	if err == nil {
		t.Fatal("expected binding to fail")
	}
	return err
}

func TestBindingErrorMessageNamesMissingField(t *testing.T) {
	err := probeBindError(t, `{"email":"user@example.com"}`)

	got := bindingErrorMessage(err, "fallback")
	if got != "quantity is required" {
		t.Fatalf("expected field-specific message, got %q", got)
	}
}

func TestBindingErrorMessageNamesInvalidEmail(t *testing.T) {
	err := probeBindError(t, `{"email":"not-an-email","quantity":1}`)

	got := bindingErrorMessage(err, "fallback")
	if got != "email must be a valid email" {
		t.Fatalf("expected email message, got %q", got)
	}
}

func TestBindingErrorMessageFallsBackForPlainErrors(t *testing.T) {
	got := bindingErrorMessage(errors.New("unexpected EOF"), "items are required")
	if got != "items are required" {
		t.Fatalf("expected fallback message, got %q", got)
	}
}

func TestLowerCamel(t *testing.T) {
	if got := lowerCamel("ProductID"); got != "productID" {
		t.Fatalf("expected productID, got %q", got)
	}
	if got := lowerCamel(""); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
