package api

import (
	"net/http"
	"testing"

	"github.com/terraincognita07/ovumcalendar/internal/services"
)

func TestPeriodSettingsReferenceScenario(t *testing.T) {
	app, _ := newTestApp(t)
	client := newTestClient(t, app)

	state := client.savePeriodSettings("2024-01-01", 28, 5)
	if !state.IsSet || state.Settings == nil || state.Status == nil {
		t.Fatalf("expected settings and status, got %+v", state)
	}
	if state.Settings.OvulationDay != 14 {
		t.Fatalf("expected ovulation day 14, got %d", state.Settings.OvulationDay)
	}
	if len(state.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %+v", state.Warnings)
	}

	status := state.Status
	if status.CurrentCycleStart != "2024-01-29" || status.CurrentCycleDay != 4 {
		t.Fatalf("unexpected current cycle: %+v", status)
	}
	if status.CurrentPhase != services.PhaseMenstrual {
		t.Fatalf("expected menstrual phase, got %q", status.CurrentPhase)
	}
	if status.NextPeriodStart != "2024-02-26" || status.DaysUntilNextPeriod != 25 {
		t.Fatalf("unexpected next period: %+v", status)
	}
	if status.NextOvulationDate != "2024-02-12" || status.FertilityWindowStart != "2024-02-07" || status.FertilityWindowEnd != "2024-02-16" {
		t.Fatalf("unexpected ovulation window: %+v", status)
	}
}

func TestPeriodSettingsDefaultsOmittedLengths(t *testing.T) {
	app, _ := newTestApp(t)
	client := newTestClient(t, app)

	state := periodStateResponse{}
	client.doJSON(http.MethodPut, "/api/period/settings", `{"last_period_date":"2024-01-01"}`, http.StatusOK, &state)
	if state.Settings == nil || state.Settings.CycleLength != 28 || state.Settings.PeriodLength != 5 {
		t.Fatalf("expected default lengths, got %+v", state.Settings)
	}
}

func TestPeriodSettingsAdvisoryWarnings(t *testing.T) {
	app, _ := newTestApp(t)
	client := newTestClient(t, app)

	state := client.savePeriodSettings("2024-01-01", 40, 5)
	if !state.IsSet {
		t.Fatal("expected out-of-advice cycle length to be accepted")
	}
	if len(state.Warnings) != 1 || state.Warnings[0].Code != services.WarningCycleLengthOutsideAdvisedRange {
		t.Fatalf("unexpected warnings: %+v", state.Warnings)
	}
	if state.Warnings[0].Message == "" || state.Warnings[0].Message == "warning."+services.WarningCycleLengthOutsideAdvisedRange {
		t.Fatalf("expected a translated warning, got %q", state.Warnings[0].Message)
	}
}

func TestPeriodSettingsValidationErrors(t *testing.T) {
	app, _ := newTestApp(t)
	client := newTestClient(t, app)
	client.savePeriodSettings("2024-01-01", 28, 5)

	client.expectError(http.MethodPut, "/api/period/settings", `{"last_period_date":"2024-01-01","cycle_length":0}`, http.StatusBadRequest, errorKeyCycleLengthInvalid)
	client.expectError(http.MethodPut, "/api/period/settings", `{"last_period_date":"2024-01-01","period_length":-1}`, http.StatusBadRequest, errorKeyPeriodLengthInvalid)
	client.expectError(http.MethodPut, "/api/period/settings", `{not json`, http.StatusBadRequest, errorKeyInvalidRequest)

	state := periodStateResponse{}
	client.doJSON(http.MethodGet, "/api/period/settings", "", http.StatusOK, &state)
	if !state.IsSet {
		t.Fatal("expected a length error to keep the stored settings")
	}

	client.expectError(http.MethodPut, "/api/period/settings", `{"last_period_date":"1949-12-31","cycle_length":28,"period_length":5}`, http.StatusBadRequest, errorKeyDateOutOfRange)
	client.doJSON(http.MethodGet, "/api/period/settings", "", http.StatusOK, &state)
	if state.IsSet {
		t.Fatal("expected an out-of-range date to remove the stored settings")
	}

	client.expectError(http.MethodPut, "/api/period/settings", `{"last_period_date":"2024-02-30"}`, http.StatusBadRequest, errorKeyDateInvalid)
}

func TestPeriodSettingsYearBoundaries(t *testing.T) {
	app, _ := newTestApp(t)
	client := newTestClient(t, app)

	for _, date := range []string{"1950-01-01", "3000-12-31"} {
		client.savePeriodSettings(date, 28, 5)
	}
	for _, date := range []string{"1949-12-31", "3001-01-01"} {
		client.expectError(http.MethodPut, "/api/period/settings", `{"last_period_date":"`+date+`"}`, http.StatusBadRequest, errorKeyDateOutOfRange)
	}
}

func TestClearPeriodSettings(t *testing.T) {
	app, _ := newTestApp(t)
	client := newTestClient(t, app)
	client.savePeriodSettings("2024-01-01", 28, 5)

	state := periodStateResponse{}
	client.doJSON(http.MethodDelete, "/api/period/settings", "", http.StatusOK, &state)
	if state.IsSet {
		t.Fatal("expected cleared response")
	}
	client.doJSON(http.MethodGet, "/api/period/settings", "", http.StatusOK, &state)
	if state.IsSet {
		t.Fatal("expected settings to stay cleared")
	}
}

func findCalendarDay(t *testing.T, days []services.CalendarDayState, date string) services.CalendarDayState {
	t.Helper()
	for _, day := range days {
		if day.DateString == date {
			return day
		}
	}
	t.Fatalf("calendar day %s not found", date)
	return services.CalendarDayState{}
}

func TestPeriodCalendarMonthGrid(t *testing.T) {
	app, _ := newTestApp(t)
	client := newTestClient(t, app)
	client.savePeriodSettings("2024-01-01", 28, 5)

	calendar := periodCalendarResponse{}
	client.doJSON(http.MethodGet, "/api/period/calendar?month=2024-02", "", http.StatusOK, &calendar)

	if calendar.Month != "2024-02" || len(calendar.Days) != services.CalendarGridCells {
		t.Fatalf("unexpected calendar: month=%s days=%d", calendar.Month, len(calendar.Days))
	}
	if calendar.Days[0].DateString != "2024-01-29" || calendar.Days[len(calendar.Days)-1].DateString != "2024-03-10" {
		t.Fatalf("unexpected grid bounds %s..%s", calendar.Days[0].DateString, calendar.Days[len(calendar.Days)-1].DateString)
	}
	if calendar.PreviousMonth == nil || *calendar.PreviousMonth != "2024-01" || calendar.NextMonth == nil || *calendar.NextMonth != "2024-03" {
		t.Fatalf("unexpected navigation: %v %v", calendar.PreviousMonth, calendar.NextMonth)
	}

	today := findCalendarDay(t, calendar.Days, "2024-02-01")
	if !today.IsToday || !today.IsPeriod {
		t.Fatalf("expected today to be a period day, got %+v", today)
	}
	if day := findCalendarDay(t, calendar.Days, "2024-02-12"); day.Phase != services.DayOvulation {
		t.Fatalf("expected ovulation on 2024-02-12, got %q", day.Phase)
	}
	if day := findCalendarDay(t, calendar.Days, "2024-02-08"); day.Phase != services.DayFertile {
		t.Fatalf("expected fertile on 2024-02-08, got %q", day.Phase)
	}
	wantPeriod := []string{"2024-02-01", "2024-02-02", "2024-02-26", "2024-02-27", "2024-02-28", "2024-02-29"}
	if len(calendar.Phases.PeriodDays) != len(wantPeriod) {
		t.Fatalf("unexpected period days %v", calendar.Phases.PeriodDays)
	}
	for index, date := range wantPeriod {
		if calendar.Phases.PeriodDays[index] != date {
			t.Fatalf("unexpected period days %v", calendar.Phases.PeriodDays)
		}
	}

	hidden := periodCalendarResponse{}
	client.doJSON(http.MethodGet, "/api/period/calendar?month=2024-02&fertile=0", "", http.StatusOK, &hidden)
	if hidden.ShowFertile || len(hidden.Phases.FertileDays) != 0 || len(hidden.Phases.OvulationDays) != 0 {
		t.Fatalf("expected fertile marks hidden, got %+v", hidden.Phases)
	}
	if day := findCalendarDay(t, hidden.Days, "2024-02-12"); day.Phase != services.DaySafe || day.IsOvulation {
		t.Fatalf("expected hidden ovulation to read as safe, got %+v", day)
	}
}

func TestPeriodCalendarDefaultsToCurrentMonth(t *testing.T) {
	app, _ := newTestApp(t)
	client := newTestClient(t, app)

	calendar := periodCalendarResponse{}
	client.doJSON(http.MethodGet, "/api/period/calendar", "", http.StatusOK, &calendar)
	if calendar.Month != "2024-02" || calendar.IsSet {
		t.Fatalf("unexpected calendar: %s set=%v", calendar.Month, calendar.IsSet)
	}
	for _, day := range calendar.Days {
		if day.Phase != services.DayUnknown {
			t.Fatalf("expected unknown phases without settings, got %q on %s", day.Phase, day.DateString)
		}
	}
}

func TestPeriodCalendarNavigationBounds(t *testing.T) {
	app, _ := newTestApp(t)
	client := newTestClient(t, app)

	first := periodCalendarResponse{}
	client.doJSON(http.MethodGet, "/api/period/calendar?month=1950-01", "", http.StatusOK, &first)
	if first.PreviousMonth != nil {
		t.Fatalf("expected no previous month before 1950-01, got %v", *first.PreviousMonth)
	}
	last := periodCalendarResponse{}
	client.doJSON(http.MethodGet, "/api/period/calendar?month=3000-12", "", http.StatusOK, &last)
	if last.NextMonth != nil {
		t.Fatalf("expected no next month after 3000-12, got %v", *last.NextMonth)
	}

	client.expectError(http.MethodGet, "/api/period/calendar?month=1949-12", "", http.StatusBadRequest, errorKeyYearMinReached)
	client.expectError(http.MethodGet, "/api/period/calendar?month=3001-01", "", http.StatusBadRequest, errorKeyYearMaxReached)
	client.expectError(http.MethodGet, "/api/period/calendar?month=2024-13", "", http.StatusBadRequest, errorKeyMonthInvalid)
}

func TestPeriodDayDetails(t *testing.T) {
	app, _ := newTestApp(t)
	client := newTestClient(t, app)
	client.savePeriodSettings("2024-01-01", 28, 5)

	ovulation := periodDayResponse{}
	client.doJSON(http.MethodGet, "/api/period/days/2024-01-15", "", http.StatusOK, &ovulation)
	if ovulation.Phase != string(services.DayOvulation) || ovulation.Probability != 71 || ovulation.CycleDay != 15 {
		t.Fatalf("unexpected ovulation day: %+v", ovulation)
	}
	if ovulation.Cycle == nil || ovulation.Cycle.PeriodStart != "2024-01-01" || ovulation.Cycle.NextPeriodStart != "2024-01-29" {
		t.Fatalf("unexpected cycle: %+v", ovulation.Cycle)
	}

	period := periodDayResponse{}
	client.doJSON(http.MethodGet, "/api/period/days/2024-01-02", "", http.StatusOK, &period)
	if period.Phase != string(services.DayPeriod) || period.Probability != services.PeriodDayProbability {
		t.Fatalf("unexpected period day: %+v", period)
	}

	client.expectError(http.MethodGet, "/api/period/days/3001-01-01", "", http.StatusBadRequest, errorKeyDateOutOfRange)
	client.expectError(http.MethodGet, "/api/period/days/yesterday", "", http.StatusBadRequest, errorKeyDateInvalid)
}

func TestUpcomingCycles(t *testing.T) {
	app, _ := newTestApp(t)
	client := newTestClient(t, app)

	empty := upcomingCyclesResponse{}
	client.doJSON(http.MethodGet, "/api/period/upcoming", "", http.StatusOK, &empty)
	if empty.IsSet || len(empty.Cycles) != 0 {
		t.Fatalf("expected no cycles without settings, got %+v", empty)
	}

	client.savePeriodSettings("2024-01-01", 28, 5)
	upcoming := upcomingCyclesResponse{}
	client.doJSON(http.MethodGet, "/api/period/upcoming", "", http.StatusOK, &upcoming)
	if len(upcoming.Cycles) != upcomingCycleCount {
		t.Fatalf("expected %d cycles, got %d", upcomingCycleCount, len(upcoming.Cycles))
	}
	if upcoming.Cycles[0].PeriodStart != "2024-01-29" || upcoming.Cycles[1].PeriodStart != "2024-02-26" {
		t.Fatalf("unexpected upcoming cycles: %+v", upcoming.Cycles[:2])
	}
	for index := 1; index < len(upcoming.Cycles); index++ {
		if upcoming.Cycles[index].PeriodStart != upcoming.Cycles[index-1].NextPeriodStart {
			t.Fatalf("expected contiguous cycles at %d", index)
		}
	}
}
