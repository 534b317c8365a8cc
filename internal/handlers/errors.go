package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"globeswap/internal/metrics"
	"globeswap/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

const internalErrorMessage = "An unexpected error occurred. Please try again."

var errorStatus = map[error]int{
	types.ErrValidation:         fiber.StatusBadRequest,
	types.ErrAuthentication:     fiber.StatusUnauthorized,
	types.ErrAuthorization:      fiber.StatusForbidden,
	types.ErrSelfInteraction:    fiber.StatusForbidden,
	types.ErrNotFound:           fiber.StatusNotFound,
	types.ErrUniquenessConflict: fiber.StatusConflict,
	types.ErrInvalidTransition:  fiber.StatusConflict,
}

// respondError writes the JSON error body for err. Classified errors expose
// their reason; anything else becomes a generic 500.
func respondError(c *fiber.Ctx, err error) error {
	kind := types.Kind(err)
	status, ok := errorStatus[kind]
	if !ok {
		log := logger.New("handlers").TraceFromContext(c.UserContext()).Function("respondError")
		log.Er("unhandled request error", err, "path", c.Path(), "method", c.Method())
		metrics.DomainErrors.WithLabelValues("internal").Inc()

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": internalErrorMessage,
		})
	}

	metrics.DomainErrors.WithLabelValues(kind.Error()).Inc()

	return c.Status(status).JSON(fiber.Map{
		"error": types.Reason(err),
		"kind":  kind.Error(),
	})
}

// ErrorHandler renders errors that escape a handler, including fiber's own
// routing errors.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"error": fiberErr.Message,
		})
	}
	return respondError(c, err)
}

func paramID(c *fiber.Ctx, name string, subject string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %s not found", types.ErrNotFound, subject)
	}
	return uint(id), nil
}
