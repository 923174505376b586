package models

type MilestoneRecord struct {
	Week     int    `json:"week"`
	Date     string `json:"date"`
	Key      string `json:"key"`
	Type     string `json:"type"`
	Priority int    `json:"priority"`
}

type PregnancyInfoRecord struct {
	Weeks       int               `json:"weeks"`
	Days        int               `json:"days"`
	Stage       string            `json:"stage"`
	DueDate     string            `json:"dueDate"`
	Milestones  []MilestoneRecord `json:"milestones"`
	NextCheckup *MilestoneRecord  `json:"nextCheckup"`
}

// PregnancyData is the persisted pregnancy record. PregnancyInfo is the
// snapshot computed when the record was last saved.
type PregnancyData struct {
	LastPeriodDate string               `json:"lastPeriodDate"`
	PregnancyInfo  *PregnancyInfoRecord `json:"pregnancyInfo,omitempty"`
}
