package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taskly/internal/middleware"
	"taskly/internal/services"
)

// errorResponse is the body of every refused request.
type errorResponse struct {
	Error string `json:"error"`
}

// currentUser returns the id set by the auth middleware. Accepts int/int64/float64/string.
func currentUser(c *gin.Context) int64 {
	v, ok := c.Get(middleware.UserIDKey)
	if !ok {
		return 0
	}
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	}
	return 0
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid " + name})
		return 0, false
	}
	return id, true
}

// parseTime accepts RFC3339 or a bare date; empty means unset.
func parseTime(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		t, err = time.Parse("2006-01-02", v)
		if err != nil {
			return nil, err
		}
	}
	t = t.UTC()
	return &t, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidOperation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondError writes a refused operation with its reason, or a generic 500.
func respondError(c *gin.Context, log logrus.FieldLogger, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).WithField("op", op).Error("request failed")
		_ = c.Error(err)
		c.JSON(status, errorResponse{Error: "internal error"})
		return
	}
	var se *services.Error
	reason := err.Error()
	if errors.As(err, &se) {
		reason = se.Reason
	}
	c.JSON(status, errorResponse{Error: reason})
}
