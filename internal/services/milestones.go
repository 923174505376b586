package services

import (
	"sort"
	"time"
)

type MilestoneCategory string

const (
	MilestoneWarning     MilestoneCategory = "warning"
	MilestoneCheckup     MilestoneCategory = "checkup"
	MilestoneDevelopment MilestoneCategory = "development"
	MilestoneHealth      MilestoneCategory = "maternal-health"
)

// Priority orders milestones that share a date; lower sorts first.
func (category MilestoneCategory) Priority() int {
	switch category {
	case MilestoneWarning:
		return 0
	case MilestoneCheckup:
		return 1
	case MilestoneDevelopment:
		return 2
	default:
		return 3
	}
}

const (
	PregnancyDurationDays = 280
	PostTermOffsetDays    = 14
	PostTermMilestoneWeek = 42
	PostTermMilestoneKey  = "post_term_risk"
)

type MilestoneTemplate struct {
	Week     int
	Key      string
	Category MilestoneCategory
}

var defaultMilestoneTemplates = []MilestoneTemplate{
	{Week: 4, Key: "pregnancy_test", Category: MilestoneCheckup},
	{Week: 6, Key: "early_ultrasound", Category: MilestoneCheckup},
	{Week: 7, Key: "initial_registration", Category: MilestoneCheckup},
	{Week: 11, Key: "nt_screening", Category: MilestoneCheckup},
	{Week: 16, Key: "midterm_screening", Category: MilestoneCheckup},
	{Week: 20, Key: "anomaly_scan", Category: MilestoneCheckup},
	{Week: 24, Key: "glucose_test", Category: MilestoneCheckup},
	{Week: 28, Key: "rhogam_shot", Category: MilestoneCheckup},
	{Week: 30, Key: "growth_scan", Category: MilestoneCheckup},
	{Week: 34, Key: "weekly_nst", Category: MilestoneCheckup},
	{Week: 36, Key: "term_assessment", Category: MilestoneCheckup},

	{Week: 4, Key: "implantation", Category: MilestoneDevelopment},
	{Week: 6, Key: "heartbeat", Category: MilestoneDevelopment},
	{Week: 12, Key: "first_trimester_complete", Category: MilestoneDevelopment},
	{Week: 20, Key: "gender_visible", Category: MilestoneDevelopment},
	{Week: 24, Key: "viability", Category: MilestoneDevelopment},
	{Week: 28, Key: "third_trimester_begins", Category: MilestoneDevelopment},
	{Week: 37, Key: "full_term", Category: MilestoneDevelopment},

	{Week: 1, Key: "start_folic_acid", Category: MilestoneHealth},
	{Week: 22, Key: "fetal_movement_count", Category: MilestoneHealth},
	{Week: 24, Key: "sleep_position_guide", Category: MilestoneHealth},
	{Week: 28, Key: "weight_control", Category: MilestoneHealth},
	{Week: 37, Key: "labor_signs", Category: MilestoneHealth},

	{Week: 6, Key: "early_warning_signs", Category: MilestoneWarning},
	{Week: 20, Key: "preeclampsia_watch", Category: MilestoneWarning},
	{Week: 28, Key: "reduced_movement", Category: MilestoneWarning},
	{Week: 37, Key: "emergency_signs", Category: MilestoneWarning},
}

// DefaultMilestoneTemplates returns a copy of the built-in week schedule.
func DefaultMilestoneTemplates() []MilestoneTemplate {
	templates := make([]MilestoneTemplate, len(defaultMilestoneTemplates))
	copy(templates, defaultMilestoneTemplates)
	return templates
}

type Milestone struct {
	Week     int               `json:"week"`
	Date     time.Time         `json:"date"`
	Key      string            `json:"key"`
	Category MilestoneCategory `json:"category"`
	Priority int               `json:"priority"`
}

func DueDate(lastPeriodStart time.Time) time.Time {
	return addDays(CalendarDay(lastPeriodStart), PregnancyDurationDays)
}

// BuildMilestoneSchedule dates every template from lastPeriodStart, adds the
// post-term warning two weeks after the due date and sorts by date then
// priority.
func BuildMilestoneSchedule(lastPeriodStart time.Time, templates []MilestoneTemplate) []Milestone {
	anchor := CalendarDay(lastPeriodStart)
	milestones := make([]Milestone, 0, len(templates)+1)
	for _, template := range templates {
		milestones = append(milestones, Milestone{
			Week:     template.Week,
			Date:     addDays(anchor, template.Week*7),
			Key:      template.Key,
			Category: template.Category,
			Priority: template.Category.Priority(),
		})
	}
	milestones = append(milestones, Milestone{
		Week:     PostTermMilestoneWeek,
		Date:     addDays(DueDate(anchor), PostTermOffsetDays),
		Key:      PostTermMilestoneKey,
		Category: MilestoneWarning,
		Priority: MilestoneWarning.Priority(),
	})

	sort.SliceStable(milestones, func(i, j int) bool {
		if !milestones[i].Date.Equal(milestones[j].Date) {
			return milestones[i].Date.Before(milestones[j].Date)
		}
		return milestones[i].Priority < milestones[j].Priority
	})
	return milestones
}

// NextCheckup returns the first checkup dated strictly after today.
func NextCheckup(milestones []Milestone, today time.Time) (Milestone, bool) {
	today = CalendarDay(today)
	for _, milestone := range milestones {
		if milestone.Category == MilestoneCheckup && milestone.Date.After(today) {
			return milestone, true
		}
	}
	return Milestone{}, false
}

func MilestonesOn(milestones []Milestone, day time.Time) []Milestone {
	key := FormatDate(CalendarDay(day))
	matches := make([]Milestone, 0)
	for _, milestone := range milestones {
		if FormatDate(milestone.Date) == key {
			matches = append(matches, milestone)
		}
	}
	return matches
}
