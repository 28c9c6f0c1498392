package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"radio-charts/internal/models"
)

// Envelope is the body of every response. Code is 0 on success and 1 on
// failure, in which case Errors is never empty.
type Envelope struct {
	Result interface{} `json:"result"`
	Code   int         `json:"code"`
	Errors []string    `json:"errors"`
}

func ok(c *gin.Context, status int, result interface{}) {
	c.JSON(status, Envelope{Result: result, Code: 0, Errors: []string{}})
}

// fail writes err with the status matching its kind. empty is the result
// placeholder: {} for add endpoints and [] for lists.
func fail(c *gin.Context, err error, empty interface{}) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		_ = c.Error(err)
	}
	c.JSON(status, Envelope{Result: empty, Code: 1, Errors: []string{err.Error()}})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidWindow),
		errors.Is(err, models.ErrInvalidChannelSet),
		errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// bindError classifies a request decoding failure as invalid input unless it
// already carries a kind.
func bindError(err error) error {
	if statusFor(err) != http.StatusInternalServerError {
		return err
	}
	return fmt.Errorf("invalid request: %s: %w", err, models.ErrInvalidInput)
}

// NotFound answers unknown routes in the usual envelope.
func NotFound(c *gin.Context) {
	fail(c, fmt.Errorf("no route for %s %s: %w", c.Request.Method, c.Request.URL.Path, models.ErrNotFound), emptyList())
}

func emptyObject() gin.H { return gin.H{} }

func emptyList() []interface{} { return []interface{}{} }

// requestContext bounds the store work of one request. A non-positive
// timeout leaves only the client's own cancellation.
func requestContext(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}
