package delivery

import (
	"errors"
	"schoolmatch/config"
	"schoolmatch/domain"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// respondError translates a use case error into a status code and the standard error envelope.
func respondError(c *fiber.Ctx, functionName string, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"
	var detail interface{} = err.Error()

	var qerr *queryParamError
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &qerr):
		status = fiber.StatusBadRequest
		message = "Invalid query parameter"
		detail = qerr.verr.Messages()
	case errors.As(err, &verr):
		status = fiber.StatusBadRequest
		message = "Invalid request body"
		detail = verr.Messages()
	case errors.Is(err, domain.ErrInvalidPostalCode):
		status = fiber.StatusBadRequest
		message = "Invalid postal code"
	case errors.Is(err, domain.ErrNotFound):
		status = fiber.StatusNotFound
		message = "Record not found"
	}

	if status >= fiber.StatusInternalServerError {
		config.GetLogrusInstance().WithError(err).WithField("function", functionName).Error(message)
		detail = message
	}

	config.PrintLogInfo(c, status, functionName)
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
		"error":   detail,
	})
}

func respondOK(c *fiber.Ctx, status int, functionName, message string, data interface{}) error {
	config.PrintLogInfo(c, status, functionName)
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func respondBadRequest(c *fiber.Ctx, functionName, message string, err error) error {
	config.PrintLogInfo(c, fiber.StatusBadRequest, functionName)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": message,
		"error":   err.Error(),
	})
}

// queryParamError is a validation failure on the query string rather than the body.
type queryParamError struct {
	verr *domain.ValidationError
}

func (e *queryParamError) Error() string {
	return e.verr.Error()
}

func (e *queryParamError) Unwrap() error {
	return e.verr
}

func newQueryParamError(key, msg string) error {
	return &queryParamError{verr: &domain.ValidationError{Fields: map[string]string{key: msg}}}
}

// requiredFloatQuery reads a mandatory numeric query parameter.
func requiredFloatQuery(c *fiber.Ctx, key string) (float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, newQueryParamError(key, key+" is required")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, newQueryParamError(key, key+" must be a number")
	}
	return v, nil
}
