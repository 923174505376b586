package services

import "time"

const (
	PeriodDayProbability = 3
	BaselineProbability  = 5
)

// fertileWindowProbabilities covers offsets -5..4 from ovulation.
var fertileWindowProbabilities = [...]int{38, 48, 62, 66, 69, 71, 57, 43, 36, 26}

// ProbabilityForOvulationOffset maps a day offset from ovulation to an
// illustrative conception percentage. Every offset has a value.
//
// Offsets -7 and -6 score 20 and 24, above the 5 floor but below the window
// start at -5 (38), while -8 drops straight to the floor. The step is kept as
// observed rather than smoothed.
func ProbabilityForOvulationOffset(offset int) int {
	switch {
	case offset >= -FertileDaysBeforeOvulation && offset <= FertileDaysAfterOvulation:
		return fertileWindowProbabilities[offset+FertileDaysBeforeOvulation]
	case offset == -7:
		return 20
	case offset == -6:
		return 24
	case offset == 5:
		return 21
	case offset == 6:
		return 17
	case offset == 7:
		return 14
	default:
		return BaselineProbability
	}
}

// ConceptionProbability returns the heuristic percentage for day. Without
// settings there is nothing to derive and the result is 0.
func ConceptionProbability(day time.Time, settings CycleSettings, projected []Cycle) int {
	if !settings.IsSet() {
		return 0
	}
	day = CalendarDay(day)
	cycle := EnclosingCycle(projected, settings, day)
	if cycle.IsPeriodDay(day) {
		return PeriodDayProbability
	}
	return ProbabilityForOvulationOffset(DaysBetween(cycle.OvulationDate, day))
}
