package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/terraincognita07/ovumcalendar/internal/models"
)

func TestToggleRecordCreatesRemovesRecreates(t *testing.T) {
	day := mustParseDay(t, "2024-01-15")

	records, created := ToggleRecord(nil, day)
	if !created || len(records) != 1 || records[0].Date != "2024-01-15" {
		t.Fatalf("expected first toggle to create a record, got created=%v records=%+v", created, records)
	}

	records, err := UpsertRecordNote(records, day, "first note")
	if err != nil {
		t.Fatalf("UpsertRecordNote() unexpected error: %v", err)
	}

	records, created = ToggleRecord(records, day)
	if created || len(records) != 0 {
		t.Fatalf("expected second toggle to remove the record, got created=%v records=%+v", created, records)
	}

	records, created = ToggleRecord(records, day)
	if !created || len(records) != 1 {
		t.Fatalf("expected third toggle to recreate the record, got created=%v records=%+v", created, records)
	}
	if records[0].Note != "" {
		t.Fatalf("expected recreated record to have an empty note, got %q", records[0].Note)
	}
}

func TestToggleRecordKeepsRecordsSortedAndUnique(t *testing.T) {
	var records []models.SexRecord
	for _, raw := range []string{"2024-03-10", "2024-01-02", "2024-02-20"} {
		records, _ = ToggleRecord(records, mustParseDay(t, raw))
	}
	want := []string{"2024-01-02", "2024-02-20", "2024-03-10"}
	for index, date := range want {
		if records[index].Date != date {
			t.Fatalf("expected sorted records %v, got %+v", want, records)
		}
	}
}

func TestToggleRecordDoesNotMutateInput(t *testing.T) {
	original := []models.SexRecord{{Date: "2024-01-02", Note: "kept"}}
	updated, _ := ToggleRecord(original, mustParseDay(t, "2024-01-02"))
	if len(updated) != 0 {
		t.Fatalf("expected toggle to remove the record, got %+v", updated)
	}
	if len(original) != 1 || original[0].Note != "kept" {
		t.Fatalf("expected input slice untouched, got %+v", original)
	}
}

func TestUpsertRecordNote(t *testing.T) {
	day := mustParseDay(t, "2024-01-15")

	records, err := UpsertRecordNote(nil, day, "  evening  ")
	if err != nil {
		t.Fatalf("UpsertRecordNote() unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].Note != "evening" {
		t.Fatalf("expected created record with trimmed note, got %+v", records)
	}

	records, err = UpsertRecordNote(records, day, "updated")
	if err != nil {
		t.Fatalf("UpsertRecordNote() unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].Note != "updated" {
		t.Fatalf("expected note replaced in place, got %+v", records)
	}

	if _, err := UpsertRecordNote(records, day, strings.Repeat("x", MaxRecordNoteLength+1)); !errors.Is(err, ErrNoteTooLong) {
		t.Fatalf("expected ErrNoteTooLong, got %v", err)
	}
}

func TestNormalizeRecordsDropsInvalidAndDuplicates(t *testing.T) {
	records := NormalizeRecords([]models.SexRecord{
		{Date: "2024-02-01", Note: "old"},
		{Date: "not-a-date"},
		{Date: "1900-01-01"},
		{Date: "2024-01-01"},
		{Date: "2024-02-01", Note: "new"},
	})
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %+v", records)
	}
	if records[0].Date != "2024-01-01" || records[1].Note != "new" {
		t.Fatalf("unexpected normalized records: %+v", records)
	}
}

func TestRemoveAndFindRecord(t *testing.T) {
	records := []models.SexRecord{{Date: "2024-01-02"}, {Date: "2024-01-05", Note: "n"}}

	found, ok := FindRecord(records, mustParseDay(t, "2024-01-05"))
	if !ok || found.Note != "n" {
		t.Fatalf("expected to find 2024-01-05, got %+v ok=%v", found, ok)
	}

	updated, removed := RemoveRecord(records, mustParseDay(t, "2024-01-03"))
	if removed || len(updated) != 2 {
		t.Fatalf("expected no removal for missing date")
	}
	updated, removed = RemoveRecord(records, mustParseDay(t, "2024-01-02"))
	if !removed || len(updated) != 1 || updated[0].Date != "2024-01-05" {
		t.Fatalf("expected 2024-01-02 removed, got %+v", updated)
	}
}
