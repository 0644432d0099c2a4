package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vtex-storefront/internal/adapters/vtex"
	"vtex-storefront/internal/cart"
	"vtex-storefront/internal/transform"
)

var errBadRequest = errors.New("bad request")

type errorResponse struct {
	Error string `json:"error"`
}

func statusFor(err error) int {
	var httpErr *vtex.HTTPStatusError
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, vtex.ErrNotFound),
		errors.Is(err, transform.ErrSkuNotFound),
		errors.Is(err, transform.ErrNoItems):
		return http.StatusNotFound
	case errors.Is(err, cart.ErrQueueClosed):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &httpErr):
		if httpErr.StatusCode >= 400 && httpErr.StatusCode < 500 {
			return http.StatusBadRequest
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusFor(err), errorResponse{Error: err.Error()})
}
