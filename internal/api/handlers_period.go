package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovumcalendar/internal/models"
	"github.com/terraincognita07/ovumcalendar/internal/services"
)

const upcomingCycleCount = 6

func (handler *Handler) GetPeriodSettings(c *fiber.Ctx) error {
	state, err := handler.period.Load(c.UserContext(), currentDevice(c))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(handler.buildPeriodStateResponse(currentLanguage(c), state))
}

func (handler *Handler) SavePeriodSettings(c *fiber.Ctx) error {
	input := periodSettingsInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.localizedError(c, fiber.StatusBadRequest, errorKeyInvalidRequest)
	}

	cycleLength := models.DefaultCycleLength
	if input.CycleLength != nil {
		cycleLength = *input.CycleLength
	}
	periodLength := models.DefaultPeriodLength
	if input.PeriodLength != nil {
		periodLength = *input.PeriodLength
	}

	state, err := handler.period.Save(c.UserContext(), currentDevice(c), services.PeriodSettingsInput{
		LastPeriodDate: input.LastPeriodDate,
		CycleLength:    cycleLength,
		PeriodLength:   periodLength,
	})
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(handler.buildPeriodStateResponse(currentLanguage(c), state))
}

func (handler *Handler) ClearPeriodSettings(c *fiber.Ctx) error {
	if err := handler.period.Clear(c.UserContext(), currentDevice(c)); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(handler.buildPeriodStateResponse(currentLanguage(c), services.PeriodState{}))
}

type periodCalendarResponse struct {
	Month         string                      `json:"month"`
	PreviousMonth *string                     `json:"previous_month"`
	NextMonth     *string                     `json:"next_month"`
	IsSet         bool                        `json:"is_set"`
	ShowFertile   bool                        `json:"show_fertile"`
	Days          []services.CalendarDayState `json:"days"`
	Phases        services.MonthPhases        `json:"phases"`
}

// PeriodCalendar renders the 42-cell grid of ?month=YYYY-MM. ?fertile=0
// hides the fertile window and ovulation marks.
func (handler *Handler) PeriodCalendar(c *fiber.Ctx) error {
	today := handler.today()
	ref, errorKey := parseMonthQuery(c, today)
	if errorKey != "" {
		return handler.localizedError(c, fiber.StatusBadRequest, errorKey)
	}
	showFertile := parseFertileFlag(c.Query("fertile"))

	state, err := handler.period.Load(c.UserContext(), currentDevice(c))
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	phases := services.BuildMonthPhases(state.Settings, ref.Year, ref.Month)
	if !showFertile {
		phases.OvulationDays = []string{}
		phases.FertileDays = []string{}
	}

	previous, next := services.AdjacentMonths(ref)
	return c.JSON(periodCalendarResponse{
		Month:         ref.String(),
		PreviousMonth: monthRefString(previous),
		NextMonth:     monthRefString(next),
		IsSet:         state.IsSet(),
		ShowFertile:   showFertile,
		Days:          services.BuildCalendarDayStates(ref, state.Settings, today, showFertile),
		Phases:        phases,
	})
}

type periodDayResponse struct {
	Date        string     `json:"date"`
	IsSet       bool       `json:"is_set"`
	Phase       string     `json:"phase"`
	PhaseLabel  string     `json:"phase_label"`
	CycleDay    int        `json:"cycle_day,omitempty"`
	Cycle       *cycleView `json:"cycle,omitempty"`
	Probability int        `json:"probability"`
}

func (handler *Handler) PeriodDay(c *fiber.Ctx) error {
	day, err := parseDateParam(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	state, err := handler.period.Load(c.UserContext(), currentDevice(c))
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	language := currentLanguage(c)
	phase := services.ClassifyDay(state.Settings, day)
	response := periodDayResponse{
		Date:        services.FormatDate(day),
		IsSet:       state.IsSet(),
		Phase:       string(phase),
		PhaseLabel:  handler.i18n.Translate(language, "phase."+string(phase)),
		Probability: services.ConceptionProbability(day, state.Settings, state.Projected),
	}
	if state.IsSet() {
		cycle := services.EnclosingCycle(state.Projected, state.Settings, day)
		view := newCycleView(cycle)
		response.Cycle = &view
		response.CycleDay = services.DaysBetween(cycle.PeriodStart, day) + 1
	}
	return c.JSON(response)
}

type upcomingCyclesResponse struct {
	IsSet  bool             `json:"is_set"`
	Status *cycleStatusView `json:"status,omitempty"`
	Cycles []cycleView      `json:"cycles"`
}

// UpcomingCycles lists the current cycle and the ones that follow it.
func (handler *Handler) UpcomingCycles(c *fiber.Ctx) error {
	state, err := handler.period.Load(c.UserContext(), currentDevice(c))
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	response := upcomingCyclesResponse{IsSet: state.IsSet(), Cycles: []cycleView{}}
	if !state.IsSet() {
		return c.JSON(response)
	}

	response.Status = handler.buildPeriodStateResponse(currentLanguage(c), state).Status
	first := services.CycleIndexFor(state.Settings, handler.today())
	for index := first; index < first+upcomingCycleCount; index++ {
		response.Cycles = append(response.Cycles, newCycleView(services.BuildCycle(state.Settings, index)))
	}
	return c.JSON(response)
}

func parseFertileFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "0", "false", "off", "no":
		return false
	default:
		return true
	}
}
