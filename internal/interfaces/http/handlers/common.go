// Package handlers contains the gin HTTP handlers of the claim-routing API.
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SolBenven/proyecto-final/pkg/errors"
)

// ErrorResponse is the error body every endpoint returns on failure.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError maps an error to its HTTP status via the error code table.
// Server-side failure messages are masked.
func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)

	message := "internal server error"
	if errors.IsClientError(code) {
		var ae *errors.AppError
		if e, ok := err.(*errors.AppError); ok {
			ae = e
		}
		if ae != nil {
			message = ae.Message
		} else {
			message = err.Error()
		}
	}

	c.JSON(status, ErrorResponse{Code: code.String(), Message: message})
}

// errors422 converts a request-binding failure into a validation error.
func errors422(err error) error {
	return errors.Wrap(err, errors.ErrCodeValidation, "invalid request body")
}

// pathID parses a positive int64 path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.Newf(errors.ErrCodeValidation, "invalid %s", name)
	}
	return id, nil
}

// queryInt64 parses an optional positive int64 query parameter; absent
// returns nil.
func queryInt64(c *gin.Context, name string) (*int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 1 {
		return nil, errors.Newf(errors.ErrCodeValidation, "invalid %s", name)
	}
	return &v, nil
}
