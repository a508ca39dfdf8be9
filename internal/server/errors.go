package server

import (
	"errors"
	"net/http"

	calculationdomain "github.com/carbonconstruct/ledger/internal/calculation/domain"
	factordomain "github.com/carbonconstruct/ledger/internal/factor/domain"
	projectdomain "github.com/carbonconstruct/ledger/internal/project/domain"
	"github.com/gin-gonic/gin"
)

var errInvalidRequest = errors.New("request body could not be parsed")

// ErrorHandlingMiddleware converts domain errors collected on the context
// into the response envelope. Handlers abort with AbortWithError and let the
// mapping here decide the status code.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, payload)
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, apiResponse) {
	switch {
	case isValidationError(err):
		return http.StatusBadRequest, apiResponse{
			Status:  "error",
			Message: err.Error(),
			Errors:  []string{err.Error()},
		}
	case isNotFoundError(err):
		return http.StatusNotFound, apiResponse{
			Status:  "error",
			Message: err.Error(),
			Errors:  []string{err.Error()},
		}
	default:
		return http.StatusInternalServerError, apiResponse{
			Status:  "error",
			Message: "internal server error",
		}
	}
}

func isValidationError(err error) bool {
	validation := []error{
		errInvalidRequest,
		calculationdomain.ErrInvalidProjectID,
		calculationdomain.ErrInvalidQuantity,
		calculationdomain.ErrInvalidFuelType,
		calculationdomain.ErrInvalidState,
		calculationdomain.ErrInvalidMaterial,
		calculationdomain.ErrInvalidWasteType,
		calculationdomain.ErrInvalidDataQuality,
		calculationdomain.ErrCombustionContextRequired,
		projectdomain.ErrInvalidProjectID,
		projectdomain.ErrInvalidProjectName,
		projectdomain.ErrInvalidState,
		projectdomain.ErrProjectExists,
	}
	for _, sentinel := range validation {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func isNotFoundError(err error) bool {
	return errors.Is(err, factordomain.ErrFactorNotFound) ||
		errors.Is(err, projectdomain.ErrProjectNotFound)
}

// classifyErrorForLog feeds the request logger's error_type/error_code fields.
func classifyErrorForLog(err error) (string, string) {
	switch {
	case isValidationError(err):
		return "validation", "invalid_request"
	case isNotFoundError(err):
		return "not_found", "not_found"
	default:
		return "internal", "internal_error"
	}
}
