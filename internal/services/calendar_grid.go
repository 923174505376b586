package services

import (
	"errors"
	"time"
)

const CalendarGridCells = 42

var ErrMonthOutOfRange = errors.New("month out of supported range")

type GridCell struct {
	Date    time.Time
	InMonth bool
}

// BuildMonthGrid returns six Monday-first weeks covering the month, padded
// with trailing days of the previous month and leading days of the next.
func BuildMonthGrid(year int, month time.Month) []GridCell {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	leading := (int(monthStart.Weekday()) + 6) % 7
	gridStart := addDays(monthStart, -leading)

	cells := make([]GridCell, 0, CalendarGridCells)
	for offset := 0; offset < CalendarGridCells; offset++ {
		day := addDays(gridStart, offset)
		cells = append(cells, GridCell{
			Date:    day,
			InMonth: day.Year() == year && day.Month() == month,
		})
	}
	return cells
}

// MonthRef identifies a calendar month being viewed.
type MonthRef struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

func MonthOf(day time.Time) MonthRef {
	return MonthRef{Year: day.Year(), Month: day.Month()}
}

func (ref MonthRef) Start() time.Time {
	return time.Date(ref.Year, ref.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (ref MonthRef) String() string {
	return ref.Start().Format("2006-01")
}

// ParseMonthRef parses YYYY-MM. Months outside the supported years are
// rejected so navigation never leaves the range.
func ParseMonthRef(raw string) (MonthRef, error) {
	parsed, err := time.ParseInLocation("2006-01", raw, time.UTC)
	if err != nil {
		return MonthRef{}, ErrDateInvalid
	}
	ref := MonthOf(parsed)
	if err := ValidateNavigableMonth(ref); err != nil {
		return MonthRef{}, err
	}
	return ref, nil
}

func ValidateNavigableMonth(ref MonthRef) error {
	if ValidateSupportedYearValue(ref.Year) != nil {
		return ErrMonthOutOfRange
	}
	return nil
}

// AdjacentMonths returns the previous and next month. A neighbour beyond the
// supported years is reported as nil.
func AdjacentMonths(ref MonthRef) (*MonthRef, *MonthRef) {
	start := ref.Start()
	previous := MonthOf(start.AddDate(0, -1, 0))
	next := MonthOf(start.AddDate(0, 1, 0))

	var previousRef, nextRef *MonthRef
	if ValidateNavigableMonth(previous) == nil {
		previousRef = &previous
	}
	if ValidateNavigableMonth(next) == nil {
		nextRef = &next
	}
	return previousRef, nextRef
}

type CalendarDayState struct {
	Date        time.Time `json:"-"`
	DateString  string    `json:"date"`
	Day         int       `json:"day"`
	InMonth     bool      `json:"in_month"`
	IsToday     bool      `json:"is_today"`
	Phase       DayPhase  `json:"phase"`
	IsPeriod    bool      `json:"is_period"`
	IsFertility bool      `json:"is_fertility"`
	IsOvulation bool      `json:"is_ovulation"`
}

// BuildCalendarDayStates classifies every grid cell of the month. When
// showFertile is false the fertile and ovulation marks are hidden and those
// days read as safe.
func BuildCalendarDayStates(ref MonthRef, settings CycleSettings, today time.Time, showFertile bool) []CalendarDayState {
	todayKey := FormatDate(CalendarDay(today))

	cells := BuildMonthGrid(ref.Year, ref.Month)
	days := make([]CalendarDayState, 0, len(cells))
	for _, cell := range cells {
		key := FormatDate(cell.Date)
		phase := ClassifyDay(settings, cell.Date)
		if !showFertile && (phase == DayOvulation || phase == DayFertile) {
			phase = DaySafe
		}

		days = append(days, CalendarDayState{
			Date:        cell.Date,
			DateString:  key,
			Day:         cell.Date.Day(),
			InMonth:     cell.InMonth,
			IsToday:     key == todayKey,
			Phase:       phase,
			IsPeriod:    phase == DayPeriod,
			IsFertility: phase == DayFertile,
			IsOvulation: phase == DayOvulation,
		})
	}
	return days
}
