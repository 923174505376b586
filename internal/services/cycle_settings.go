package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/ovumcalendar/internal/models"
)

const (
	MinSupportedYear = 1950
	MaxSupportedYear = 3000

	MinAdvisedCycleLength  = 21
	MaxAdvisedCycleLength  = 35
	MinAdvisedPeriodLength = 2
	MaxAdvisedPeriodLength = 10

	FertileDaysBeforeOvulation = 5
	FertileDaysAfterOvulation  = 4

	ProjectedCycleCount = 24
)

var (
	ErrDateInvalid         = errors.New("date invalid")
	ErrDateOutOfRange      = errors.New("date out of supported range")
	ErrCycleLengthInvalid  = errors.New("cycle length must be positive")
	ErrPeriodLengthInvalid = errors.New("period length must be positive")
)

const (
	WarningCycleLengthOutsideAdvisedRange  = "cycle_length_outside_advised_range"
	WarningPeriodLengthOutsideAdvisedRange = "period_length_outside_advised_range"
)

// CycleSettings is the immutable input of every cycle calculation. The zero
// value means "unset": nothing can be derived from it.
type CycleSettings struct {
	LastPeriodStart time.Time
	CycleLength     int
	PeriodLength    int
	// OvulationOffset is the zero-based cycle day of ovulation.
	OvulationOffset int
}

func NewCycleSettings(lastPeriodStart time.Time, cycleLength int, periodLength int) (CycleSettings, error) {
	return newCycleSettings(lastPeriodStart, cycleLength, periodLength, cycleLength-models.LutealPhaseDays)
}

func newCycleSettings(lastPeriodStart time.Time, cycleLength int, periodLength int, ovulationOffset int) (CycleSettings, error) {
	if lastPeriodStart.IsZero() {
		return CycleSettings{}, ErrDateInvalid
	}
	if err := ValidateSupportedYear(lastPeriodStart); err != nil {
		return CycleSettings{}, err
	}
	if cycleLength <= 0 {
		return CycleSettings{}, ErrCycleLengthInvalid
	}
	if periodLength <= 0 {
		return CycleSettings{}, ErrPeriodLengthInvalid
	}
	return CycleSettings{
		LastPeriodStart: CalendarDay(lastPeriodStart),
		CycleLength:     cycleLength,
		PeriodLength:    periodLength,
		OvulationOffset: ovulationOffset,
	}, nil
}

func (settings CycleSettings) IsSet() bool {
	return !settings.LastPeriodStart.IsZero() && settings.CycleLength > 0 && settings.PeriodLength > 0
}

// AdvisoryWarnings lists the lengths that fall outside the UI bounds. Such
// values are still used as entered.
func (settings CycleSettings) AdvisoryWarnings() []string {
	warnings := make([]string, 0, 2)
	if settings.CycleLength < MinAdvisedCycleLength || settings.CycleLength > MaxAdvisedCycleLength {
		warnings = append(warnings, WarningCycleLengthOutsideAdvisedRange)
	}
	if settings.PeriodLength < MinAdvisedPeriodLength || settings.PeriodLength > MaxAdvisedPeriodLength {
		warnings = append(warnings, WarningPeriodLengthOutsideAdvisedRange)
	}
	return warnings
}

// SettingsFromPeriodData resolves a persisted record, applying the documented
// defaults for every absent optional field.
func SettingsFromPeriodData(data models.PeriodData) (CycleSettings, error) {
	lastPeriodStart, err := ParseCalendarDate(data.LastPeriodDate)
	if err != nil {
		return CycleSettings{}, err
	}
	return newCycleSettings(
		lastPeriodStart,
		data.ResolvedCycleLength(),
		data.ResolvedPeriodLength(),
		data.ResolvedOvulationDay(),
	)
}

// PeriodDataFromSettings builds the persisted record, including the projected
// cycle list consumers use for probability lookups.
func PeriodDataFromSettings(settings CycleSettings, projected []Cycle) models.PeriodData {
	cycleLength := settings.CycleLength
	periodLength := settings.PeriodLength
	ovulationDay := settings.OvulationOffset

	futureCycles := make([]models.StoredCycle, 0, len(projected))
	for _, cycle := range projected {
		futureCycles = append(futureCycles, models.StoredCycle{
			PeriodStart:   FormatDate(cycle.PeriodStart),
			OvulationDate: FormatDate(cycle.OvulationDate),
		})
	}

	return models.PeriodData{
		LastPeriodDate: FormatDate(settings.LastPeriodStart),
		CycleLength:    &cycleLength,
		PeriodLength:   &periodLength,
		OvulationDay:   &ovulationDay,
		FutureCycles:   futureCycles,
	}
}
