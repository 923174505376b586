package models

type SexRecord struct {
	Date string `json:"date"`
	Note string `json:"note"`
}
