package services

import "time"

type PregnancyStage string

const (
	StageFirstTrimester  PregnancyStage = "first_trimester"
	StageSecondTrimester PregnancyStage = "second_trimester"
	StageThirdTrimester  PregnancyStage = "third_trimester"
)

const (
	lastFirstTrimesterWeek  = 12
	lastSecondTrimesterWeek = 26
)

// PregnancyStageFor classifies the pregnancy on today by whole weeks elapsed
// since lastPeriodStart. A last period after today counts as week zero.
func PregnancyStageFor(lastPeriodStart time.Time, today time.Time) PregnancyStage {
	return stageForWeeks(gestationalDays(lastPeriodStart, today) / 7)
}

func stageForWeeks(weeks int) PregnancyStage {
	switch {
	case weeks <= lastFirstTrimesterWeek:
		return StageFirstTrimester
	case weeks <= lastSecondTrimesterWeek:
		return StageSecondTrimester
	default:
		return StageThirdTrimester
	}
}

type PregnancyInfo struct {
	LastPeriodStart time.Time      `json:"last_period_start"`
	Weeks           int            `json:"weeks"`
	Days            int            `json:"days"`
	Stage           PregnancyStage `json:"stage"`
	DueDate         time.Time      `json:"due_date"`
	DaysUntilDue    int            `json:"days_until_due"`
	Milestones      []Milestone    `json:"milestones"`
	NextCheckup     *Milestone     `json:"next_checkup,omitempty"`
}

// BuildPregnancyInfo derives gestational age, stage, due date and the dated
// milestone schedule. A last period in the future counts as zero elapsed days.
func BuildPregnancyInfo(lastPeriodStart time.Time, today time.Time, templates []MilestoneTemplate) (PregnancyInfo, error) {
	if lastPeriodStart.IsZero() {
		return PregnancyInfo{}, ErrDateInvalid
	}
	if err := ValidateSupportedYear(lastPeriodStart); err != nil {
		return PregnancyInfo{}, err
	}

	anchor := CalendarDay(lastPeriodStart)
	today = CalendarDay(today)
	elapsed := gestationalDays(anchor, today)
	weeks := elapsed / 7
	dueDate := DueDate(anchor)

	info := PregnancyInfo{
		LastPeriodStart: anchor,
		Weeks:           weeks,
		Days:            elapsed % 7,
		Stage:           stageForWeeks(weeks),
		DueDate:         dueDate,
		DaysUntilDue:    DaysBetween(today, dueDate),
		Milestones:      BuildMilestoneSchedule(anchor, templates),
	}
	if next, ok := NextCheckup(info.Milestones, today); ok {
		info.NextCheckup = &next
	}
	return info, nil
}

func gestationalDays(lastPeriodStart time.Time, today time.Time) int {
	return max(DaysBetween(lastPeriodStart, today), 0)
}
