package services

import (
	"context"
	"strconv"
	"time"

	"github.com/terraincognita07/ovumcalendar/internal/models"
)

var ExportCSVHeaders = []string{
	"Date",
	"Kind",
	"Detail",
	"Until",
	"Note",
}

const (
	ExportKindPeriod    = "period"
	ExportKindOvulation = "ovulation"
	ExportKindFertile   = "fertile_window"
	ExportKindMilestone = "milestone"
	ExportKindIntimacy  = "intimacy"
)

type ExportPeriodSettings struct {
	LastPeriodDate string   `json:"last_period_date"`
	CycleLength    int      `json:"cycle_length"`
	PeriodLength   int      `json:"period_length"`
	OvulationDay   int      `json:"ovulation_day"`
	Warnings       []string `json:"warnings,omitempty"`
}

type ExportCycle struct {
	PeriodStart     string `json:"period_start"`
	PeriodEnd       string `json:"period_end"`
	OvulationDate   string `json:"ovulation_date"`
	FertileStart    string `json:"fertile_start"`
	FertileEnd      string `json:"fertile_end"`
	NextPeriodStart string `json:"next_period_start"`
}

type ExportMilestone struct {
	Week     int    `json:"week"`
	Date     string `json:"date"`
	Key      string `json:"key"`
	Category string `json:"category"`
}

type ExportPregnancy struct {
	LastPeriodDate string            `json:"last_period_date"`
	DueDate        string            `json:"due_date"`
	Weeks          int               `json:"weeks"`
	Days           int               `json:"days"`
	Stage          string            `json:"stage"`
	Milestones     []ExportMilestone `json:"milestones"`
}

type ExportIntimacyRecord struct {
	Date        string `json:"date"`
	Note        string `json:"note"`
	Probability int    `json:"probability"`
}

type ExportBundle struct {
	Period    *ExportPeriodSettings  `json:"period,omitempty"`
	Cycles    []ExportCycle          `json:"cycles"`
	Pregnancy *ExportPregnancy       `json:"pregnancy,omitempty"`
	Records   []ExportIntimacyRecord `json:"intimacy_records"`
}

type ExportSummary struct {
	HasData      bool
	CycleCount   int
	RecordCount  int
	HasPregnancy bool
}

type ExportCSVRow struct {
	Date   string
	Kind   string
	Detail string
	Until  string
	Note   string
}

type ExportService struct {
	period    *PeriodService
	pregnancy *PregnancyService
	intimacy  *IntimacyService
}

func NewExportService(period *PeriodService, pregnancy *PregnancyService, intimacy *IntimacyService) *ExportService {
	return &ExportService{
		period:    period,
		pregnancy: pregnancy,
		intimacy:  intimacy,
	}
}

// BuildBundle collects everything stored for namespace. Pregnancy info is
// exported only when a pregnancy record exists.
func (service *ExportService) BuildBundle(ctx context.Context, namespace string, today time.Time) (ExportBundle, error) {
	bundle := ExportBundle{
		Cycles:  []ExportCycle{},
		Records: []ExportIntimacyRecord{},
	}

	periodState, err := service.period.Load(ctx, namespace)
	if err != nil {
		return ExportBundle{}, err
	}
	if periodState.IsSet() {
		settings := periodState.Settings
		bundle.Period = &ExportPeriodSettings{
			LastPeriodDate: FormatDate(settings.LastPeriodStart),
			CycleLength:    settings.CycleLength,
			PeriodLength:   settings.PeriodLength,
			OvulationDay:   settings.OvulationOffset,
			Warnings:       periodState.Warnings,
		}
		for _, cycle := range periodState.Projected {
			bundle.Cycles = append(bundle.Cycles, ExportCycle{
				PeriodStart:     FormatDate(cycle.PeriodStart),
				PeriodEnd:       FormatDate(cycle.PeriodEnd),
				OvulationDate:   FormatDate(cycle.OvulationDate),
				FertileStart:    FormatDate(cycle.FertileStart),
				FertileEnd:      FormatDate(cycle.FertileEnd),
				NextPeriodStart: FormatDate(cycle.NextPeriodStart),
			})
		}
	}

	pregnancyState, err := service.pregnancy.Load(ctx, namespace, today)
	if err != nil {
		return ExportBundle{}, err
	}
	if pregnancyState.Info != nil && pregnancyState.Source == PregnancySourcePregnancy {
		info := pregnancyState.Info
		pregnancy := &ExportPregnancy{
			LastPeriodDate: FormatDate(info.LastPeriodStart),
			DueDate:        FormatDate(info.DueDate),
			Weeks:          info.Weeks,
			Days:           info.Days,
			Stage:          string(info.Stage),
			Milestones:     make([]ExportMilestone, 0, len(info.Milestones)),
		}
		for _, milestone := range info.Milestones {
			pregnancy.Milestones = append(pregnancy.Milestones, ExportMilestone{
				Week:     milestone.Week,
				Date:     FormatDate(milestone.Date),
				Key:      milestone.Key,
				Category: string(milestone.Category),
			})
		}
		bundle.Pregnancy = pregnancy
	}

	records, err := service.intimacy.List(ctx, namespace)
	if err != nil {
		return ExportBundle{}, err
	}
	bundle.Records = exportIntimacyRecords(records, periodState)
	return bundle, nil
}

func (bundle ExportBundle) Summary() ExportSummary {
	summary := ExportSummary{
		CycleCount:   len(bundle.Cycles),
		RecordCount:  len(bundle.Records),
		HasPregnancy: bundle.Pregnancy != nil,
	}
	summary.HasData = bundle.Period != nil || summary.HasPregnancy || summary.RecordCount > 0
	return summary
}

// CSVRows flattens the bundle into one row per dated event.
func (bundle ExportBundle) CSVRows() []ExportCSVRow {
	rows := make([]ExportCSVRow, 0, len(bundle.Cycles)*3+len(bundle.Records))
	for _, cycle := range bundle.Cycles {
		rows = append(rows,
			ExportCSVRow{Date: cycle.PeriodStart, Kind: ExportKindPeriod, Until: cycle.PeriodEnd},
			ExportCSVRow{Date: cycle.FertileStart, Kind: ExportKindFertile, Until: cycle.FertileEnd},
			ExportCSVRow{Date: cycle.OvulationDate, Kind: ExportKindOvulation},
		)
	}
	if bundle.Pregnancy != nil {
		for _, milestone := range bundle.Pregnancy.Milestones {
			rows = append(rows, ExportCSVRow{
				Date:   milestone.Date,
				Kind:   ExportKindMilestone,
				Detail: milestone.Category + ":" + milestone.Key,
			})
		}
	}
	for _, record := range bundle.Records {
		rows = append(rows, ExportCSVRow{
			Date:   record.Date,
			Kind:   ExportKindIntimacy,
			Detail: strconv.Itoa(record.Probability) + "%",
			Note:   record.Note,
		})
	}
	return rows
}

func (row ExportCSVRow) Columns() []string {
	return []string{row.Date, row.Kind, row.Detail, row.Until, row.Note}
}

func exportIntimacyRecords(records []models.SexRecord, periodState PeriodState) []ExportIntimacyRecord {
	exported := make([]ExportIntimacyRecord, 0, len(records))
	for _, record := range records {
		probability := 0
		if day, err := ParseCalendarDate(record.Date); err == nil {
			probability = ConceptionProbability(day, periodState.Settings, periodState.Projected)
		}
		exported = append(exported, ExportIntimacyRecord{
			Date:        record.Date,
			Note:        record.Note,
			Probability: probability,
		})
	}
	return exported
}
