package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func newExportFixture(t *testing.T) (*ExportService, *PeriodService, *PregnancyService, *IntimacyService) {
	t.Helper()
	store := newMemoryStore()
	period := NewPeriodService(store, zap.NewNop())
	pregnancy := NewPregnancyService(store, period, zap.NewNop())
	intimacy := NewIntimacyService(store, period, zap.NewNop())
	return NewExportService(period, pregnancy, intimacy), period, pregnancy, intimacy
}

func TestExportBundleEmptyNamespace(t *testing.T) {
	service, _, _, _ := newExportFixture(t)

	bundle, err := service.BuildBundle(context.Background(), "device-a", mustParseDay(t, "2024-02-01"))
	if err != nil {
		t.Fatalf("BuildBundle() unexpected error: %v", err)
	}
	if bundle.Summary().HasData {
		t.Fatalf("expected no data for an empty namespace")
	}
	if bundle.Cycles == nil || bundle.Records == nil {
		t.Fatalf("expected empty non-nil lists")
	}
	if len(bundle.CSVRows()) != 0 {
		t.Fatalf("expected no CSV rows")
	}
}

func TestExportBundleCollectsAllSurfaces(t *testing.T) {
	service, period, pregnancy, intimacy := newExportFixture(t)
	ctx := context.Background()
	today := mustParseDay(t, "2024-02-01")

	if _, err := period.Save(ctx, "device-a", PeriodSettingsInput{LastPeriodDate: "2024-01-01", CycleLength: 28, PeriodLength: 5}); err != nil {
		t.Fatalf("period Save() unexpected error: %v", err)
	}
	if _, err := pregnancy.Save(ctx, "device-a", "2024-01-01", today); err != nil {
		t.Fatalf("pregnancy Save() unexpected error: %v", err)
	}
	if _, err := intimacy.SetNote(ctx, "device-a", mustParseDay(t, "2024-01-15"), "peak"); err != nil {
		t.Fatalf("SetNote() unexpected error: %v", err)
	}

	bundle, err := service.BuildBundle(ctx, "device-a", today)
	if err != nil {
		t.Fatalf("BuildBundle() unexpected error: %v", err)
	}
	summary := bundle.Summary()
	if !summary.HasData || summary.CycleCount != ProjectedCycleCount || summary.RecordCount != 1 || !summary.HasPregnancy {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if bundle.Records[0].Probability != 71 {
		t.Fatalf("expected exported probability 71, got %d", bundle.Records[0].Probability)
	}

	rows := bundle.CSVRows()
	wantRows := ProjectedCycleCount*3 + len(bundle.Pregnancy.Milestones) + 1
	if len(rows) != wantRows {
		t.Fatalf("expected %d CSV rows, got %d", wantRows, len(rows))
	}
	first := rows[0].Columns()
	if len(first) != len(ExportCSVHeaders) || first[0] != "2024-01-01" || first[1] != ExportKindPeriod || first[3] != "2024-01-05" {
		t.Fatalf("unexpected first CSV row: %v", first)
	}
	last := rows[len(rows)-1].Columns()
	if last[1] != ExportKindIntimacy || last[2] != "71%" || last[4] != "peak" {
		t.Fatalf("unexpected intimacy CSV row: %v", last)
	}
}

func TestExportBundleXLSXSheets(t *testing.T) {
	service, period, _, intimacy := newExportFixture(t)
	ctx := context.Background()

	if _, err := period.Save(ctx, "device-a", PeriodSettingsInput{LastPeriodDate: "2024-01-01", CycleLength: 28, PeriodLength: 5}); err != nil {
		t.Fatalf("period Save() unexpected error: %v", err)
	}
	if _, _, err := intimacy.Toggle(ctx, "device-a", mustParseDay(t, "2024-01-10")); err != nil {
		t.Fatalf("Toggle() unexpected error: %v", err)
	}
	bundle, err := service.BuildBundle(ctx, "device-a", mustParseDay(t, "2024-02-01"))
	if err != nil {
		t.Fatalf("BuildBundle() unexpected error: %v", err)
	}

	payload, err := bundle.XLSX()
	if err != nil {
		t.Fatalf("XLSX() unexpected error: %v", err)
	}
	workbook, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("OpenReader() unexpected error: %v", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) != 3 || sheets[0] != "Cycles" || sheets[2] != "Intimacy" {
		t.Fatalf("unexpected sheets: %v", sheets)
	}
	cycleRows, err := workbook.GetRows("Cycles")
	if err != nil {
		t.Fatalf("GetRows() unexpected error: %v", err)
	}
	if len(cycleRows) != ProjectedCycleCount+1 || cycleRows[1][0] != "2024-01-01" {
		t.Fatalf("unexpected cycle rows: %d first=%v", len(cycleRows), cycleRows[1])
	}
	recordRows, err := workbook.GetRows("Intimacy")
	if err != nil {
		t.Fatalf("GetRows() unexpected error: %v", err)
	}
	if len(recordRows) != 2 || recordRows[1][1] != "38" {
		t.Fatalf("unexpected record rows: %v", recordRows)
	}
}
