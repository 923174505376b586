package services

import (
	"context"
	"errors"
	"time"

	"github.com/terraincognita07/ovumcalendar/internal/models"
	"go.uber.org/zap"
)

const (
	PregnancySourceNone      = ""
	PregnancySourcePregnancy = "pregnancy"
	PregnancySourcePeriod    = "period"
)

type PregnancyState struct {
	Info *PregnancyInfo
	// Source tells whether the last period date came from the pregnancy
	// record or was seeded from the period settings.
	Source string
}

type PregnancyService struct {
	records   recordStore
	period    *PeriodService
	templates []MilestoneTemplate
}

func NewPregnancyService(store KeyValueStore, period *PeriodService, logger *zap.Logger) *PregnancyService {
	return &PregnancyService{
		records:   newRecordStore(store, logger),
		period:    period,
		templates: DefaultMilestoneTemplates(),
	}
}

// Load derives pregnancy info for today. Without a pregnancy record the last
// period date of the period settings is used, without persisting anything.
func (service *PregnancyService) Load(ctx context.Context, namespace string, today time.Time) (PregnancyState, error) {
	var data models.PregnancyData
	found, err := service.records.load(ctx, namespace, models.KeyPregnancyData, &data)
	if err != nil {
		return PregnancyState{}, err
	}

	if found {
		lastPeriodStart, parseErr := ParseCalendarDate(data.LastPeriodDate)
		if parseErr != nil {
			service.records.logger.Warn("discarding invalid pregnancy record",
				zap.String("namespace", namespace),
				zap.String("last_period_date", data.LastPeriodDate),
				zap.Error(parseErr),
			)
			return PregnancyState{}, service.records.discard(ctx, namespace, models.KeyPregnancyData)
		}
		info, err := BuildPregnancyInfo(lastPeriodStart, today, service.templates)
		if err != nil {
			return PregnancyState{}, err
		}
		return PregnancyState{Info: &info, Source: PregnancySourcePregnancy}, nil
	}

	if service.period == nil {
		return PregnancyState{}, nil
	}
	periodState, err := service.period.Load(ctx, namespace)
	if err != nil || !periodState.IsSet() {
		return PregnancyState{}, err
	}
	info, err := BuildPregnancyInfo(periodState.Settings.LastPeriodStart, today, service.templates)
	if err != nil {
		return PregnancyState{}, err
	}
	return PregnancyState{Info: &info, Source: PregnancySourcePeriod}, nil
}

// Save persists the last period date with a snapshot of the derived info. An
// invalid or unsupported date removes the stored record.
func (service *PregnancyService) Save(ctx context.Context, namespace string, lastPeriodDate string, today time.Time) (PregnancyState, error) {
	lastPeriodStart, err := ParseCalendarDate(lastPeriodDate)
	if err != nil {
		if clearErr := service.records.discard(ctx, namespace, models.KeyPregnancyData); clearErr != nil {
			return PregnancyState{}, errors.Join(err, clearErr)
		}
		return PregnancyState{}, err
	}

	info, err := BuildPregnancyInfo(lastPeriodStart, today, service.templates)
	if err != nil {
		return PregnancyState{}, err
	}
	record := models.PregnancyData{
		LastPeriodDate: FormatDate(info.LastPeriodStart),
		PregnancyInfo:  pregnancyInfoRecord(info),
	}
	if err := service.records.save(ctx, namespace, models.KeyPregnancyData, record); err != nil {
		return PregnancyState{}, err
	}
	return PregnancyState{Info: &info, Source: PregnancySourcePregnancy}, nil
}

func (service *PregnancyService) Clear(ctx context.Context, namespace string) error {
	return service.records.discard(ctx, namespace, models.KeyPregnancyData)
}

func pregnancyInfoRecord(info PregnancyInfo) *models.PregnancyInfoRecord {
	milestones := make([]models.MilestoneRecord, 0, len(info.Milestones))
	for _, milestone := range info.Milestones {
		milestones = append(milestones, milestoneRecord(milestone))
	}

	record := &models.PregnancyInfoRecord{
		Weeks:      info.Weeks,
		Days:       info.Days,
		Stage:      string(info.Stage),
		DueDate:    FormatDate(info.DueDate),
		Milestones: milestones,
	}
	if info.NextCheckup != nil {
		next := milestoneRecord(*info.NextCheckup)
		record.NextCheckup = &next
	}
	return record
}

func milestoneRecord(milestone Milestone) models.MilestoneRecord {
	return models.MilestoneRecord{
		Week:     milestone.Week,
		Date:     FormatDate(milestone.Date),
		Key:      milestone.Key,
		Type:     string(milestone.Category),
		Priority: milestone.Priority,
	}
}
