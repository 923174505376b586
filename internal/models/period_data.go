package models

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
	LutealPhaseDays     = 14
)

type StoredCycle struct {
	PeriodStart   string `json:"periodStart"`
	OvulationDate string `json:"ovulationDate"`
}

// PeriodData is the persisted period settings record. Every field except
// LastPeriodDate is optional; the Resolved* helpers apply the defaults.
type PeriodData struct {
	LastPeriodDate string        `json:"lastPeriodDate"`
	CycleLength    *int          `json:"cycleLength,omitempty"`
	PeriodLength   *int          `json:"periodLength,omitempty"`
	OvulationDay   *int          `json:"ovulationDay,omitempty"`
	FutureCycles   []StoredCycle `json:"futureCycles,omitempty"`
}

func (data PeriodData) ResolvedCycleLength() int {
	if data.CycleLength == nil {
		return DefaultCycleLength
	}
	return *data.CycleLength
}

func (data PeriodData) ResolvedPeriodLength() int {
	if data.PeriodLength == nil {
		return DefaultPeriodLength
	}
	return *data.PeriodLength
}

// ResolvedOvulationDay is the zero-based day of the cycle on which ovulation
// falls. It defaults to cycleLength - 14.
func (data PeriodData) ResolvedOvulationDay() int {
	if data.OvulationDay == nil {
		return data.ResolvedCycleLength() - LutealPhaseDays
	}
	return *data.OvulationDay
}
