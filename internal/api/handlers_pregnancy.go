package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovumcalendar/internal/services"
)

func (handler *Handler) GetPregnancy(c *fiber.Ctx) error {
	state, err := handler.pregnancy.Load(c.UserContext(), currentDevice(c), handler.today())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(handler.buildPregnancyResponse(currentLanguage(c), state))
}

func (handler *Handler) SavePregnancy(c *fiber.Ctx) error {
	input := pregnancyInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.localizedError(c, fiber.StatusBadRequest, errorKeyInvalidRequest)
	}

	state, err := handler.pregnancy.Save(c.UserContext(), currentDevice(c), input.LastPeriodDate, handler.today())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(handler.buildPregnancyResponse(currentLanguage(c), state))
}

func (handler *Handler) ClearPregnancy(c *fiber.Ctx) error {
	if err := handler.pregnancy.Clear(c.UserContext(), currentDevice(c)); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(handler.buildPregnancyResponse(currentLanguage(c), services.PregnancyState{}))
}

type pregnancyDayView struct {
	Date       string          `json:"date"`
	Day        int             `json:"day"`
	InMonth    bool            `json:"in_month"`
	IsToday    bool            `json:"is_today"`
	IsDueDate  bool            `json:"is_due_date"`
	Milestones []milestoneView `json:"milestones"`
}

type pregnancyCalendarResponse struct {
	Month         string             `json:"month"`
	PreviousMonth *string            `json:"previous_month"`
	NextMonth     *string            `json:"next_month"`
	IsSet         bool               `json:"is_set"`
	DueDate       string             `json:"due_date,omitempty"`
	Days          []pregnancyDayView `json:"days"`
}

// PregnancyCalendar marks milestone and due dates on the month grid.
func (handler *Handler) PregnancyCalendar(c *fiber.Ctx) error {
	today := handler.today()
	ref, errorKey := parseMonthQuery(c, today)
	if errorKey != "" {
		return handler.localizedError(c, fiber.StatusBadRequest, errorKey)
	}

	state, err := handler.pregnancy.Load(c.UserContext(), currentDevice(c), today)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	language := currentLanguage(c)
	previous, next := services.AdjacentMonths(ref)
	response := pregnancyCalendarResponse{
		Month:         ref.String(),
		PreviousMonth: monthRefString(previous),
		NextMonth:     monthRefString(next),
		IsSet:         state.Info != nil,
		Days:          make([]pregnancyDayView, 0, services.CalendarGridCells),
	}
	if state.Info != nil {
		response.DueDate = services.FormatDate(state.Info.DueDate)
	}

	todayKey := services.FormatDate(today)
	for _, cell := range services.BuildMonthGrid(ref.Year, ref.Month) {
		key := services.FormatDate(cell.Date)
		day := pregnancyDayView{
			Date:       key,
			Day:        cell.Date.Day(),
			InMonth:    cell.InMonth,
			IsToday:    key == todayKey,
			IsDueDate:  key == response.DueDate,
			Milestones: []milestoneView{},
		}
		if state.Info != nil {
			for _, milestone := range services.MilestonesOn(state.Info.Milestones, cell.Date) {
				day.Milestones = append(day.Milestones, handler.newMilestoneView(language, milestone))
			}
		}
		response.Days = append(response.Days, day)
	}
	return c.JSON(response)
}
