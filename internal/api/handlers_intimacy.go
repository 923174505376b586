package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovumcalendar/internal/models"
	"github.com/terraincognita07/ovumcalendar/internal/services"
)

type intimacyRecordsResponse struct {
	Records []models.SexRecord `json:"records"`
}

func (handler *Handler) ListIntimacyRecords(c *fiber.Ctx) error {
	records, err := handler.intimacy.List(c.UserContext(), currentDevice(c))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(intimacyRecordsResponse{Records: records})
}

func (handler *Handler) ToggleIntimacyRecord(c *fiber.Ctx) error {
	day, err := parseDateParam(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	records, created, err := handler.intimacy.Toggle(c.UserContext(), currentDevice(c), day)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"date":    services.FormatDate(day),
		"created": created,
		"records": records,
	})
}

func (handler *Handler) SetIntimacyNote(c *fiber.Ctx) error {
	day, err := parseDateParam(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	input := noteInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.localizedError(c, fiber.StatusBadRequest, errorKeyInvalidRequest)
	}

	records, err := handler.intimacy.SetNote(c.UserContext(), currentDevice(c), day, input.Note)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(intimacyRecordsResponse{Records: records})
}

func (handler *Handler) DeleteIntimacyRecord(c *fiber.Ctx) error {
	day, err := parseDateParam(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	records, removed, err := handler.intimacy.Remove(c.UserContext(), currentDevice(c), day)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	if !removed {
		return handler.localizedError(c, fiber.StatusNotFound, errorKeyNotFound)
	}
	return c.JSON(intimacyRecordsResponse{Records: records})
}

type intimacyCalendarResponse struct {
	Month         string                      `json:"month"`
	PreviousMonth *string                     `json:"previous_month"`
	NextMonth     *string                     `json:"next_month"`
	HasPeriodData bool                        `json:"has_period_data"`
	Message       string                      `json:"message,omitempty"`
	Days          []services.IntimacyDayState `json:"days"`
}

func (handler *Handler) IntimacyCalendar(c *fiber.Ctx) error {
	today := handler.today()
	ref, errorKey := parseMonthQuery(c, today)
	if errorKey != "" {
		return handler.localizedError(c, fiber.StatusBadRequest, errorKey)
	}

	calendar, err := handler.intimacy.BuildCalendar(c.UserContext(), currentDevice(c), ref, today)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	previous, next := services.AdjacentMonths(ref)
	response := intimacyCalendarResponse{
		Month:         ref.String(),
		PreviousMonth: monthRefString(previous),
		NextMonth:     monthRefString(next),
		HasPeriodData: calendar.HasPeriodData,
		Days:          calendar.Days,
	}
	if !calendar.HasPeriodData {
		response.Message = handler.i18n.Translate(currentLanguage(c), "intimacy.setup_period_first")
	}
	return c.JSON(response)
}

type intimacyProbabilityResponse struct {
	Date          string `json:"date"`
	Probability   int    `json:"probability"`
	Label         string `json:"label"`
	HasPeriodData bool   `json:"has_period_data"`
	Message       string `json:"message,omitempty"`
}

func (handler *Handler) IntimacyProbability(c *fiber.Ctx) error {
	day, err := parseDateParam(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	probability, hasPeriodData, err := handler.intimacy.Probability(c.UserContext(), currentDevice(c), day)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	language := currentLanguage(c)
	response := intimacyProbabilityResponse{
		Date:          services.FormatDate(day),
		Probability:   probability,
		Label:         handler.i18n.Translatef(language, "intimacy.probability", probability),
		HasPeriodData: hasPeriodData,
	}
	if !hasPeriodData {
		response.Message = handler.i18n.Translate(language, "intimacy.setup_period_first")
	}
	return c.JSON(response)
}
