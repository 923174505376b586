package api

import (
	"github.com/terraincognita07/ovumcalendar/internal/services"
)

type periodSettingsInput struct {
	LastPeriodDate string `json:"last_period_date" form:"last_period_date"`
	CycleLength    *int   `json:"cycle_length" form:"cycle_length"`
	PeriodLength   *int   `json:"period_length" form:"period_length"`
}

type pregnancyInput struct {
	LastPeriodDate string `json:"last_period_date" form:"last_period_date"`
}

type noteInput struct {
	Note string `json:"note" form:"note"`
}

type warningView struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type periodSettingsView struct {
	LastPeriodDate string `json:"last_period_date"`
	CycleLength    int    `json:"cycle_length"`
	PeriodLength   int    `json:"period_length"`
	OvulationDay   int    `json:"ovulation_day"`
}

type cycleView struct {
	Index           int    `json:"index"`
	PeriodStart     string `json:"period_start"`
	PeriodEnd       string `json:"period_end"`
	OvulationDate   string `json:"ovulation_date"`
	FertileStart    string `json:"fertile_start"`
	FertileEnd      string `json:"fertile_end"`
	NextPeriodStart string `json:"next_period_start"`
}

type cycleStatusView struct {
	CurrentCycleDay      int    `json:"current_cycle_day"`
	CurrentPhase         string `json:"current_phase"`
	CurrentPhaseLabel    string `json:"current_phase_label"`
	CurrentCycleStart    string `json:"current_cycle_start"`
	NextPeriodStart      string `json:"next_period_start"`
	NextOvulationDate    string `json:"next_ovulation_date"`
	FertilityWindowStart string `json:"fertility_window_start"`
	FertilityWindowEnd   string `json:"fertility_window_end"`
	DaysUntilNextPeriod  int    `json:"days_until_next_period"`
}

type periodStateResponse struct {
	IsSet    bool                `json:"is_set"`
	Settings *periodSettingsView `json:"settings,omitempty"`
	Status   *cycleStatusView    `json:"status,omitempty"`
	Warnings []warningView       `json:"warnings"`
}

type milestoneView struct {
	Week          int    `json:"week"`
	Date          string `json:"date"`
	Key           string `json:"key"`
	Category      string `json:"category"`
	CategoryLabel string `json:"category_label"`
	Priority      int    `json:"priority"`
	Title         string `json:"title"`
	Description   string `json:"description"`
}

type pregnancyResponse struct {
	IsSet          bool            `json:"is_set"`
	Source         string          `json:"source,omitempty"`
	LastPeriodDate string          `json:"last_period_date,omitempty"`
	DueDate        string          `json:"due_date,omitempty"`
	Weeks          int             `json:"weeks"`
	Days           int             `json:"days"`
	GestationalAge string          `json:"gestational_age,omitempty"`
	Stage          string          `json:"stage,omitempty"`
	StageLabel     string          `json:"stage_label,omitempty"`
	DaysUntilDue   int             `json:"days_until_due"`
	NextCheckup    *milestoneView  `json:"next_checkup,omitempty"`
	Milestones     []milestoneView `json:"milestones"`
}

func (handler *Handler) buildPeriodStateResponse(language string, state services.PeriodState) periodStateResponse {
	response := periodStateResponse{
		IsSet:    state.IsSet(),
		Warnings: make([]warningView, 0, len(state.Warnings)),
	}
	for _, code := range state.Warnings {
		response.Warnings = append(response.Warnings, warningView{
			Code:    code,
			Message: handler.i18n.Translate(language, "warning."+code),
		})
	}
	if !state.IsSet() {
		return response
	}

	settings := state.Settings
	response.Settings = &periodSettingsView{
		LastPeriodDate: services.FormatDate(settings.LastPeriodStart),
		CycleLength:    settings.CycleLength,
		PeriodLength:   settings.PeriodLength,
		OvulationDay:   settings.OvulationOffset,
	}

	status := services.BuildCycleStatus(settings, state.Projected, handler.today())
	response.Status = &cycleStatusView{
		CurrentCycleDay:      status.CurrentCycleDay,
		CurrentPhase:         status.CurrentPhase,
		CurrentPhaseLabel:    handler.i18n.Translate(language, "cycle_phase."+status.CurrentPhase),
		CurrentCycleStart:    services.FormatDate(status.CurrentCycleStart),
		NextPeriodStart:      services.FormatDate(status.NextPeriodStart),
		NextOvulationDate:    services.FormatDate(status.NextOvulationDate),
		FertilityWindowStart: services.FormatDate(status.FertilityWindowStart),
		FertilityWindowEnd:   services.FormatDate(status.FertilityWindowEnd),
		DaysUntilNextPeriod:  status.DaysUntilNextPeriod,
	}
	return response
}

func newCycleView(cycle services.Cycle) cycleView {
	return cycleView{
		Index:           cycle.Index,
		PeriodStart:     services.FormatDate(cycle.PeriodStart),
		PeriodEnd:       services.FormatDate(cycle.PeriodEnd),
		OvulationDate:   services.FormatDate(cycle.OvulationDate),
		FertileStart:    services.FormatDate(cycle.FertileStart),
		FertileEnd:      services.FormatDate(cycle.FertileEnd),
		NextPeriodStart: services.FormatDate(cycle.NextPeriodStart),
	}
}

func (handler *Handler) newMilestoneView(language string, milestone services.Milestone) milestoneView {
	return milestoneView{
		Week:          milestone.Week,
		Date:          services.FormatDate(milestone.Date),
		Key:           milestone.Key,
		Category:      string(milestone.Category),
		CategoryLabel: handler.i18n.Translate(language, "category."+string(milestone.Category)),
		Priority:      milestone.Priority,
		Title:         handler.i18n.MilestoneTitle(language, milestone.Key),
		Description:   handler.i18n.MilestoneDescription(language, milestone.Key),
	}
}

func (handler *Handler) buildPregnancyResponse(language string, state services.PregnancyState) pregnancyResponse {
	response := pregnancyResponse{Milestones: []milestoneView{}}
	if state.Info == nil {
		return response
	}

	info := state.Info
	response.IsSet = true
	response.Source = state.Source
	response.LastPeriodDate = services.FormatDate(info.LastPeriodStart)
	response.DueDate = services.FormatDate(info.DueDate)
	response.Weeks = info.Weeks
	response.Days = info.Days
	response.GestationalAge = handler.i18n.Translatef(language, "pregnancy.gestational_age", info.Weeks, info.Days)
	response.Stage = string(info.Stage)
	response.StageLabel = handler.i18n.Translate(language, "stage."+string(info.Stage))
	response.DaysUntilDue = info.DaysUntilDue
	if info.NextCheckup != nil {
		next := handler.newMilestoneView(language, *info.NextCheckup)
		response.NextCheckup = &next
	}
	for _, milestone := range info.Milestones {
		response.Milestones = append(response.Milestones, handler.newMilestoneView(language, milestone))
	}
	return response
}
