package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/terraincognita07/ovumcalendar/internal/models"
)

const MaxRecordNoteLength = 500

var ErrNoteTooLong = errors.New("note too long")

// ToggleRecord removes the record on day when one exists and otherwise adds
// one with an empty note. The result holds at most one record per date.
func ToggleRecord(records []models.SexRecord, day time.Time) ([]models.SexRecord, bool) {
	key := FormatDate(CalendarDay(day))
	if index := findRecordIndex(records, key); index >= 0 {
		return removeRecordAt(records, index), false
	}
	return sortRecords(append(cloneRecords(records), models.SexRecord{Date: key})), true
}

// UpsertRecordNote sets the note of the record on day, creating the record
// when the date has none.
func UpsertRecordNote(records []models.SexRecord, day time.Time, note string) ([]models.SexRecord, error) {
	note = strings.TrimSpace(note)
	if len([]rune(note)) > MaxRecordNoteLength {
		return records, ErrNoteTooLong
	}

	key := FormatDate(CalendarDay(day))
	updated := cloneRecords(records)
	if index := findRecordIndex(updated, key); index >= 0 {
		updated[index].Note = note
		return updated, nil
	}
	return sortRecords(append(updated, models.SexRecord{Date: key, Note: note})), nil
}

func RemoveRecord(records []models.SexRecord, day time.Time) ([]models.SexRecord, bool) {
	index := findRecordIndex(records, FormatDate(CalendarDay(day)))
	if index < 0 {
		return records, false
	}
	return removeRecordAt(records, index), true
}

func FindRecord(records []models.SexRecord, day time.Time) (models.SexRecord, bool) {
	index := findRecordIndex(records, FormatDate(CalendarDay(day)))
	if index < 0 {
		return models.SexRecord{}, false
	}
	return records[index], true
}

// NormalizeRecords drops entries with unparseable or unsupported dates,
// keeps the last entry per date and sorts ascending.
func NormalizeRecords(records []models.SexRecord) []models.SexRecord {
	byDate := make(map[string]models.SexRecord, len(records))
	for _, record := range records {
		day, err := ParseCalendarDate(record.Date)
		if err != nil {
			continue
		}
		key := FormatDate(day)
		byDate[key] = models.SexRecord{Date: key, Note: record.Note}
	}

	normalized := make([]models.SexRecord, 0, len(byDate))
	for _, record := range byDate {
		normalized = append(normalized, record)
	}
	return sortRecords(normalized)
}

func findRecordIndex(records []models.SexRecord, key string) int {
	for index, record := range records {
		if record.Date == key {
			return index
		}
	}
	return -1
}

func removeRecordAt(records []models.SexRecord, index int) []models.SexRecord {
	updated := make([]models.SexRecord, 0, len(records)-1)
	updated = append(updated, records[:index]...)
	return append(updated, records[index+1:]...)
}

func cloneRecords(records []models.SexRecord) []models.SexRecord {
	cloned := make([]models.SexRecord, len(records))
	copy(cloned, records)
	return cloned
}

func sortRecords(records []models.SexRecord) []models.SexRecord {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date < records[j].Date
	})
	return records
}
