package api

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/terraincognita07/ovumcalendar/internal/services"
	"go.uber.org/zap"
)

const (
	errorKeyDateInvalid         = "error.date_invalid"
	errorKeyDateOutOfRange      = "error.date_out_of_range"
	errorKeyYearMinReached      = "error.year_min_reached"
	errorKeyYearMaxReached      = "error.year_max_reached"
	errorKeyMonthInvalid        = "error.month_invalid"
	errorKeyCycleLengthInvalid  = "error.cycle_length_invalid"
	errorKeyPeriodLengthInvalid = "error.period_length_invalid"
	errorKeyNoteTooLong         = "error.note_too_long"
	errorKeyInvalidRequest      = "error.invalid_request"
	errorKeyStorage             = "error.storage"
	errorKeyExportFailed        = "error.export_failed"
	errorKeyNotFound            = "error.not_found"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// ErrorHandler answers unhandled errors, including recovered panics, as JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
	}
	return apiError(c, status, utils.StatusMessage(status))
}

func (handler *Handler) localizedError(c *fiber.Ctx, status int, key string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": handler.i18n.Translate(currentLanguage(c), key),
		"code":  key,
	})
}

// respondServiceError maps engine and storage failures to a localized
// response. Anything unrecognised is logged and reported as a storage error.
func (handler *Handler) respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrDateInvalid):
		return handler.localizedError(c, fiber.StatusBadRequest, errorKeyDateInvalid)
	case errors.Is(err, services.ErrDateOutOfRange):
		return handler.localizedError(c, fiber.StatusBadRequest, errorKeyDateOutOfRange)
	case errors.Is(err, services.ErrCycleLengthInvalid):
		return handler.localizedError(c, fiber.StatusBadRequest, errorKeyCycleLengthInvalid)
	case errors.Is(err, services.ErrPeriodLengthInvalid):
		return handler.localizedError(c, fiber.StatusBadRequest, errorKeyPeriodLengthInvalid)
	case errors.Is(err, services.ErrNoteTooLong):
		return handler.localizedError(c, fiber.StatusBadRequest, errorKeyNoteTooLong)
	default:
		handler.logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("device_id", currentDevice(c)),
			zap.Error(err),
		)
		return handler.localizedError(c, fiber.StatusInternalServerError, errorKeyStorage)
	}
}

// parseMonthQuery reads ?month=YYYY-MM, defaulting to the month of today.
// The error key names the bound that was crossed.
func parseMonthQuery(c *fiber.Ctx, today time.Time) (services.MonthRef, string) {
	raw := strings.TrimSpace(c.Query("month"))
	if raw == "" {
		return services.MonthOf(today), ""
	}

	ref, err := services.ParseMonthRef(raw)
	if err == nil {
		return ref, ""
	}
	if errors.Is(err, services.ErrMonthOutOfRange) {
		parsed, parseErr := time.Parse("2006-01", raw)
		if parseErr == nil && parsed.Year() < services.MinSupportedYear {
			return services.MonthRef{}, errorKeyYearMinReached
		}
		return services.MonthRef{}, errorKeyYearMaxReached
	}
	return services.MonthRef{}, errorKeyMonthInvalid
}

func parseDateParam(c *fiber.Ctx) (time.Time, error) {
	return services.ParseCalendarDate(c.Params("date"))
}

func monthRefString(ref *services.MonthRef) *string {
	if ref == nil {
		return nil
	}
	value := ref.String()
	return &value
}

func sanitizeRedirectPath(raw string, fallback string) string {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return fallback
	}
	if strings.HasPrefix(candidate, "//") || !strings.HasPrefix(candidate, "/") {
		return fallback
	}
	parsed, err := url.Parse(candidate)
	if err != nil || parsed.IsAbs() {
		return fallback
	}
	return candidate
}
