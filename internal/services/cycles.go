package services

import "time"

// Cycle is one period-to-next-period span derived from CycleSettings. Index
// counts cycles relative to the anchor LastPeriodStart (negative before it).
type Cycle struct {
	Index           int       `json:"index"`
	PeriodStart     time.Time `json:"period_start"`
	PeriodEnd       time.Time `json:"period_end"`
	NextPeriodStart time.Time `json:"next_period_start"`
	OvulationDate   time.Time `json:"ovulation_date"`
	FertileStart    time.Time `json:"fertile_start"`
	FertileEnd      time.Time `json:"fertile_end"`
}

func BuildCycle(settings CycleSettings, index int) Cycle {
	periodStart := addDays(settings.LastPeriodStart, index*settings.CycleLength)
	ovulationDate := addDays(periodStart, settings.OvulationOffset)
	return Cycle{
		Index:           index,
		PeriodStart:     periodStart,
		PeriodEnd:       addDays(periodStart, settings.PeriodLength-1),
		NextPeriodStart: addDays(periodStart, settings.CycleLength),
		OvulationDate:   ovulationDate,
		FertileStart:    addDays(ovulationDate, -FertileDaysBeforeOvulation),
		FertileEnd:      addDays(ovulationDate, FertileDaysAfterOvulation),
	}
}

// Contains reports whether day is inside [PeriodStart, NextPeriodStart).
func (cycle Cycle) Contains(day time.Time) bool {
	day = CalendarDay(day)
	return !day.Before(cycle.PeriodStart) && day.Before(cycle.NextPeriodStart)
}

func (cycle Cycle) IsPeriodDay(day time.Time) bool {
	return betweenCalendarDaysInclusive(CalendarDay(day), cycle.PeriodStart, cycle.PeriodEnd)
}

func (cycle Cycle) IsOvulationDay(day time.Time) bool {
	return sameCalendarDay(CalendarDay(day), cycle.OvulationDate)
}

func (cycle Cycle) IsFertileDay(day time.Time) bool {
	return betweenCalendarDaysInclusive(CalendarDay(day), cycle.FertileStart, cycle.FertileEnd)
}

// ProjectCycles returns count successive cycles starting at the anchor. Each
// cycle begins where the previous one ends.
func ProjectCycles(settings CycleSettings, count int) []Cycle {
	if !settings.IsSet() || count <= 0 {
		return nil
	}
	cycles := make([]Cycle, 0, count)
	for index := 0; index < count; index++ {
		cycles = append(cycles, BuildCycle(settings, index))
	}
	return cycles
}

// CycleIndexFor returns the index of the cycle whose half-open span holds day.
func CycleIndexFor(settings CycleSettings, day time.Time) int {
	return floorDiv(DaysBetween(settings.LastPeriodStart, day), settings.CycleLength)
}

func CycleContaining(settings CycleSettings, day time.Time) Cycle {
	return BuildCycle(settings, CycleIndexFor(settings, day))
}

// EnclosingCycle prefers a projected cycle that contains day and falls back to
// modular arithmetic against the anchor.
func EnclosingCycle(projected []Cycle, settings CycleSettings, day time.Time) Cycle {
	for _, cycle := range projected {
		if cycle.Contains(day) {
			return cycle
		}
	}
	return CycleContaining(settings, day)
}

// inRecurringWindow reports whether offset days after the anchor falls in a
// window of length days that starts start days into every cycle. A window at
// least one cycle long covers every day.
func inRecurringWindow(offset int, start int, length int, cycleLength int) bool {
	if length >= cycleLength {
		return true
	}
	return floorMod(offset-start, cycleLength) < length
}

// projectedFrom drops the projected list when today precedes it, since an
// earlier cycle outside the list could hold the answer.
func projectedFrom(projected []Cycle, today time.Time) []Cycle {
	if len(projected) == 0 || today.Before(projected[0].PeriodStart) {
		return nil
	}
	return projected
}

// NextPeriodStart returns the first period start strictly after today.
func NextPeriodStart(settings CycleSettings, projected []Cycle, today time.Time) time.Time {
	if !settings.IsSet() {
		return time.Time{}
	}
	today = CalendarDay(today)
	for _, cycle := range projectedFrom(projected, today) {
		if cycle.PeriodStart.After(today) {
			return cycle.PeriodStart
		}
	}
	return BuildCycle(settings, CycleIndexFor(settings, today)+1).PeriodStart
}

// NextOvulation returns the first ovulation date strictly after today.
func NextOvulation(settings CycleSettings, projected []Cycle, today time.Time) time.Time {
	if !settings.IsSet() {
		return time.Time{}
	}
	today = CalendarDay(today)
	for _, cycle := range projectedFrom(projected, today) {
		if cycle.OvulationDate.After(today) {
			return cycle.OvulationDate
		}
	}

	offset := DaysBetween(settings.LastPeriodStart, today)
	index := floorDiv(offset-settings.OvulationOffset, settings.CycleLength) + 1
	return BuildCycle(settings, index).OvulationDate
}

type CycleStatus struct {
	CurrentCycleDay      int       `json:"current_cycle_day"`
	CurrentPhase         string    `json:"current_phase"`
	CurrentCycleStart    time.Time `json:"current_cycle_start"`
	NextPeriodStart      time.Time `json:"next_period_start"`
	NextOvulationDate    time.Time `json:"next_ovulation_date"`
	FertilityWindowStart time.Time `json:"fertility_window_start"`
	FertilityWindowEnd   time.Time `json:"fertility_window_end"`
	DaysUntilNextPeriod  int       `json:"days_until_next_period"`
}

const (
	PhaseMenstrual  = "menstrual"
	PhaseFollicular = "follicular"
	PhaseFertile    = "fertile"
	PhaseOvulation  = "ovulation"
	PhaseLuteal     = "luteal"
	PhaseUnknown    = "unknown"
)

func BuildCycleStatus(settings CycleSettings, projected []Cycle, today time.Time) CycleStatus {
	status := CycleStatus{CurrentPhase: PhaseUnknown}
	if !settings.IsSet() {
		return status
	}
	today = CalendarDay(today)

	current := EnclosingCycle(projected, settings, today)
	status.CurrentCycleStart = current.PeriodStart
	status.CurrentCycleDay = DaysBetween(current.PeriodStart, today) + 1
	status.CurrentPhase = DetectCurrentPhase(settings, today)
	status.NextPeriodStart = NextPeriodStart(settings, projected, today)
	status.NextOvulationDate = NextOvulation(settings, projected, today)
	status.FertilityWindowStart = addDays(status.NextOvulationDate, -FertileDaysBeforeOvulation)
	status.FertilityWindowEnd = addDays(status.NextOvulationDate, FertileDaysAfterOvulation)
	status.DaysUntilNextPeriod = DaysBetween(today, status.NextPeriodStart)
	return status
}

func DetectCurrentPhase(settings CycleSettings, today time.Time) string {
	if !settings.IsSet() {
		return PhaseUnknown
	}
	switch ClassifyDay(settings, today) {
	case DayPeriod:
		return PhaseMenstrual
	case DayOvulation:
		return PhaseOvulation
	case DayFertile:
		return PhaseFertile
	}

	current := CycleContaining(settings, today)
	if CalendarDay(today).Before(current.OvulationDate) {
		return PhaseFollicular
	}
	return PhaseLuteal
}
