package services

import "time"

type DayPhase string

const (
	DayPeriod    DayPhase = "period"
	DayOvulation DayPhase = "ovulation"
	DayFertile   DayPhase = "fertile"
	DaySafe      DayPhase = "safe"
	DayUnknown   DayPhase = "unknown"
)

// ClassifyDay assigns exactly one phase to day. A period day wins over an
// exact ovulation day, which wins over the rest of the fertile window.
func ClassifyDay(settings CycleSettings, day time.Time) DayPhase {
	if !settings.IsSet() {
		return DayUnknown
	}

	offset := DaysBetween(settings.LastPeriodStart, day)
	switch {
	case inRecurringWindow(offset, 0, settings.PeriodLength, settings.CycleLength):
		return DayPeriod
	case inRecurringWindow(offset, settings.OvulationOffset, 1, settings.CycleLength):
		return DayOvulation
	case inRecurringWindow(offset, settings.OvulationOffset-FertileDaysBeforeOvulation, FertileDaysBeforeOvulation+FertileDaysAfterOvulation+1, settings.CycleLength):
		return DayFertile
	}
	return DaySafe
}

// MonthPhases lists the dates of one month that fall in each derived range.
type MonthPhases struct {
	PeriodDays    []string `json:"period_days"`
	OvulationDays []string `json:"ovulation_days"`
	FertileDays   []string `json:"fertile_days"`
}

func BuildMonthPhases(settings CycleSettings, year int, month time.Month) MonthPhases {
	phases := MonthPhases{
		PeriodDays:    []string{},
		OvulationDays: []string{},
		FertileDays:   []string{},
	}
	if !settings.IsSet() {
		return phases
	}

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	for day := monthStart; !day.After(monthEnd); day = addDays(day, 1) {
		switch ClassifyDay(settings, day) {
		case DayPeriod:
			phases.PeriodDays = append(phases.PeriodDays, FormatDate(day))
		case DayOvulation:
			phases.OvulationDays = append(phases.OvulationDays, FormatDate(day))
		case DayFertile:
			phases.FertileDays = append(phases.FertileDays, FormatDate(day))
		}
	}
	return phases
}
