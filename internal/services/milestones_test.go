package services

import (
	"testing"
)

func TestBuildMilestoneScheduleDatesAndOrder(t *testing.T) {
	lastPeriodStart := mustParseDay(t, "2024-01-01")
	milestones := BuildMilestoneSchedule(lastPeriodStart, DefaultMilestoneTemplates())

	if len(milestones) != len(DefaultMilestoneTemplates())+1 {
		t.Fatalf("expected %d milestones, got %d", len(DefaultMilestoneTemplates())+1, len(milestones))
	}
	for _, milestone := range milestones {
		if milestone.Key == PostTermMilestoneKey {
			continue
		}
		if got := DaysBetween(lastPeriodStart, milestone.Date); got != milestone.Week*7 {
			t.Fatalf("%s: expected %d days after last period, got %d", milestone.Key, milestone.Week*7, got)
		}
	}
	for index := 1; index < len(milestones); index++ {
		previous, current := milestones[index-1], milestones[index]
		if current.Date.Before(previous.Date) {
			t.Fatalf("milestones out of date order at %d: %s before %s", index, FormatDate(current.Date), FormatDate(previous.Date))
		}
		if current.Date.Equal(previous.Date) && current.Priority < previous.Priority {
			t.Fatalf("milestones out of priority order on %s: %s(%d) after %s(%d)",
				FormatDate(current.Date), current.Key, current.Priority, previous.Key, previous.Priority)
		}
	}

	if milestones[0].Key != "start_folic_acid" {
		t.Fatalf("expected first milestone start_folic_acid, got %s", milestones[0].Key)
	}
	last := milestones[len(milestones)-1]
	if last.Key != PostTermMilestoneKey || FormatDate(last.Date) != "2024-10-21" || last.Category != MilestoneWarning {
		t.Fatalf("expected post-term warning on 2024-10-21 last, got %+v", last)
	}
}

func TestMilestonesOnSameDateSortByPriority(t *testing.T) {
	milestones := BuildMilestoneSchedule(mustParseDay(t, "2024-01-01"), DefaultMilestoneTemplates())
	week6 := MilestonesOn(milestones, mustParseDay(t, "2024-02-12"))

	want := []string{"early_warning_signs", "early_ultrasound", "heartbeat"}
	if len(week6) != len(want) {
		t.Fatalf("expected %d milestones in week 6, got %d", len(want), len(week6))
	}
	for index, key := range want {
		if week6[index].Key != key {
			t.Fatalf("week 6 position %d: expected %s, got %s", index, key, week6[index].Key)
		}
	}
}

func TestMilestoneCategoryPriority(t *testing.T) {
	cases := map[MilestoneCategory]int{
		MilestoneWarning:     0,
		MilestoneCheckup:     1,
		MilestoneDevelopment: 2,
		MilestoneHealth:      3,
	}
	for category, want := range cases {
		if got := category.Priority(); got != want {
			t.Fatalf("%s: expected priority %d, got %d", category, want, got)
		}
	}

	if MilestoneHealth != "maternal-health" {
		t.Fatalf("unexpected maternal health category string %q", MilestoneHealth)
	}
}

func TestNextCheckupIsStrictlyAfterToday(t *testing.T) {
	milestones := BuildMilestoneSchedule(mustParseDay(t, "2024-01-01"), DefaultMilestoneTemplates())

	next, ok := NextCheckup(milestones, mustParseDay(t, "2024-02-12"))
	if !ok {
		t.Fatalf("expected a next checkup")
	}
	if next.Key != "initial_registration" || FormatDate(next.Date) != "2024-02-19" {
		t.Fatalf("expected initial_registration on 2024-02-19, got %s on %s", next.Key, FormatDate(next.Date))
	}

	if _, ok := NextCheckup(milestones, mustParseDay(t, "2024-09-09")); ok {
		t.Fatalf("expected no checkup after the last scheduled one")
	}
}
