package config

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

var logrusInstance *logrus.Logger

func GetLogrusInstance() *logrus.Logger {
	if logrusInstance == nil {
		logrusInstance = logrus.New()
		logrusInstance.SetFormatter(&logrus.JSONFormatter{})
	}
	return logrusInstance
}

// PrintLogInfo records the outcome of a handler. 5xx are logged as errors, 4xx as warnings.
func PrintLogInfo(c *fiber.Ctx, statusCode int, functionName string) {
	entry := GetLogrusInstance().WithFields(logrus.Fields{
		"function": functionName,
		"method":   c.Method(),
		"path":     c.Path(),
		"status":   statusCode,
		"ip":       c.IP(),
	})

	msg := http.StatusText(statusCode)
	switch {
	case statusCode >= fiber.StatusInternalServerError:
		entry.Error(msg)
	case statusCode >= fiber.StatusBadRequest:
		entry.Warn(msg)
	default:
		entry.Info(msg)
	}
}
