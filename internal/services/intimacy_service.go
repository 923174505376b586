package services

import (
	"context"
	"time"

	"github.com/terraincognita07/ovumcalendar/internal/models"
	"go.uber.org/zap"
)

type IntimacyService struct {
	records recordStore
	period  *PeriodService
}

func NewIntimacyService(store KeyValueStore, period *PeriodService, logger *zap.Logger) *IntimacyService {
	return &IntimacyService{
		records: newRecordStore(store, logger),
		period:  period,
	}
}

func (service *IntimacyService) List(ctx context.Context, namespace string) ([]models.SexRecord, error) {
	var records []models.SexRecord
	found, err := service.records.load(ctx, namespace, models.KeySexRecords, &records)
	if err != nil {
		return nil, err
	}
	if !found {
		return []models.SexRecord{}, nil
	}
	return NormalizeRecords(records), nil
}

// Toggle adds a record on day or removes the existing one. created reports
// which of the two happened.
func (service *IntimacyService) Toggle(ctx context.Context, namespace string, day time.Time) ([]models.SexRecord, bool, error) {
	if err := ValidateSupportedYear(day); err != nil {
		return nil, false, err
	}
	records, err := service.List(ctx, namespace)
	if err != nil {
		return nil, false, err
	}
	updated, created := ToggleRecord(records, day)
	if err := service.persist(ctx, namespace, updated); err != nil {
		return nil, false, err
	}
	return updated, created, nil
}

func (service *IntimacyService) SetNote(ctx context.Context, namespace string, day time.Time, note string) ([]models.SexRecord, error) {
	if err := ValidateSupportedYear(day); err != nil {
		return nil, err
	}
	records, err := service.List(ctx, namespace)
	if err != nil {
		return nil, err
	}
	updated, err := UpsertRecordNote(records, day, note)
	if err != nil {
		return nil, err
	}
	if err := service.persist(ctx, namespace, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (service *IntimacyService) Remove(ctx context.Context, namespace string, day time.Time) ([]models.SexRecord, bool, error) {
	records, err := service.List(ctx, namespace)
	if err != nil {
		return nil, false, err
	}
	updated, removed := RemoveRecord(records, day)
	if !removed {
		return records, false, nil
	}
	if err := service.persist(ctx, namespace, updated); err != nil {
		return nil, false, err
	}
	return updated, true, nil
}

func (service *IntimacyService) Clear(ctx context.Context, namespace string) error {
	return service.records.discard(ctx, namespace, models.KeySexRecords)
}

// Probability returns the conception percentage of day and whether period
// settings exist. Without them the percentage is 0.
func (service *IntimacyService) Probability(ctx context.Context, namespace string, day time.Time) (int, bool, error) {
	state, err := service.period.Load(ctx, namespace)
	if err != nil {
		return 0, false, err
	}
	if !state.IsSet() {
		return 0, false, nil
	}
	return ConceptionProbability(day, state.Settings, state.Projected), true, nil
}

type IntimacyDayState struct {
	CalendarDayState
	HasRecord   bool   `json:"has_record"`
	Note        string `json:"note,omitempty"`
	Probability int    `json:"probability"`
}

type IntimacyCalendar struct {
	HasPeriodData bool               `json:"has_period_data"`
	Days          []IntimacyDayState `json:"days"`
}

// BuildCalendar merges the month grid with logged records and per-day
// conception probabilities.
func (service *IntimacyService) BuildCalendar(ctx context.Context, namespace string, ref MonthRef, today time.Time) (IntimacyCalendar, error) {
	state, err := service.period.Load(ctx, namespace)
	if err != nil {
		return IntimacyCalendar{}, err
	}
	records, err := service.List(ctx, namespace)
	if err != nil {
		return IntimacyCalendar{}, err
	}

	notes := make(map[string]string, len(records))
	for _, record := range records {
		notes[record.Date] = record.Note
	}

	base := BuildCalendarDayStates(ref, state.Settings, today, true)
	days := make([]IntimacyDayState, 0, len(base))
	for _, day := range base {
		note, hasRecord := notes[day.DateString]
		days = append(days, IntimacyDayState{
			CalendarDayState: day,
			HasRecord:        hasRecord,
			Note:             note,
			Probability:      ConceptionProbability(day.Date, state.Settings, state.Projected),
		})
	}
	return IntimacyCalendar{HasPeriodData: state.IsSet(), Days: days}, nil
}

// persist deletes the key once the log is empty.
func (service *IntimacyService) persist(ctx context.Context, namespace string, records []models.SexRecord) error {
	if len(records) == 0 {
		return service.records.discard(ctx, namespace, models.KeySexRecords)
	}
	return service.records.save(ctx, namespace, models.KeySexRecords, records)
}
