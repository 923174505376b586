package services

import (
	"context"
	"errors"

	"github.com/terraincognita07/ovumcalendar/internal/models"
	"go.uber.org/zap"
)

type PeriodState struct {
	Settings  CycleSettings
	Projected []Cycle
	Warnings  []string
}

func (state PeriodState) IsSet() bool {
	return state.Settings.IsSet()
}

type PeriodSettingsInput struct {
	LastPeriodDate string
	CycleLength    int
	PeriodLength   int
}

type PeriodService struct {
	records recordStore
}

func NewPeriodService(store KeyValueStore, logger *zap.Logger) *PeriodService {
	return &PeriodService{records: newRecordStore(store, logger)}
}

// Load returns the stored settings. A record whose date falls outside the
// supported years is removed and the state is unset.
func (service *PeriodService) Load(ctx context.Context, namespace string) (PeriodState, error) {
	var data models.PeriodData
	found, err := service.records.load(ctx, namespace, models.KeyPeriodData, &data)
	if err != nil || !found {
		return PeriodState{}, err
	}

	settings, err := SettingsFromPeriodData(data)
	if err != nil {
		service.records.logger.Warn("discarding invalid period record",
			zap.String("namespace", namespace),
			zap.String("last_period_date", data.LastPeriodDate),
			zap.Error(err),
		)
		return PeriodState{}, service.records.discard(ctx, namespace, models.KeyPeriodData)
	}
	return newPeriodState(settings), nil
}

// Save validates input and persists it together with the projected cycles.
// An invalid or unsupported date also removes the stored record.
func (service *PeriodService) Save(ctx context.Context, namespace string, input PeriodSettingsInput) (PeriodState, error) {
	lastPeriodStart, err := ParseCalendarDate(input.LastPeriodDate)
	if err != nil {
		if clearErr := service.records.discard(ctx, namespace, models.KeyPeriodData); clearErr != nil {
			return PeriodState{}, errors.Join(err, clearErr)
		}
		return PeriodState{}, err
	}

	settings, err := NewCycleSettings(lastPeriodStart, input.CycleLength, input.PeriodLength)
	if err != nil {
		return PeriodState{}, err
	}

	state := newPeriodState(settings)
	if err := service.records.save(ctx, namespace, models.KeyPeriodData, PeriodDataFromSettings(settings, state.Projected)); err != nil {
		return PeriodState{}, err
	}
	return state, nil
}

func (service *PeriodService) Clear(ctx context.Context, namespace string) error {
	return service.records.discard(ctx, namespace, models.KeyPeriodData)
}

func newPeriodState(settings CycleSettings) PeriodState {
	return PeriodState{
		Settings:  settings,
		Projected: ProjectCycles(settings, ProjectedCycleCount),
		Warnings:  settings.AdvisoryWarnings(),
	}
}
