package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"go.uber.org/zap"

	"burialpredict/internal/validation"
)

// ErrorHandler is the single place where errors become responses:
// validation errors are 400, fiber errors keep their code and anything else
// is a 500 carrying the error text.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		fields := []zap.Field{
			zap.String("request_id", requestid.FromContext(c)),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
		}

		var verr *validation.Error
		if errors.As(err, &verr) {
			logger.Debug("request rejected", append(fields, zap.String("reason", verr.Message))...)
			return jsonError(c, fiber.StatusBadRequest, verr.Message)
		}

		var ferr *fiber.Error
		if errors.As(err, &ferr) {
			return jsonError(c, ferr.Code, ferr.Message)
		}

		logger.Error("request failed", append(fields, zap.Error(err))...)
		return jsonError(c, fiber.StatusInternalServerError, "An error occurred: "+err.Error())
	}
}
