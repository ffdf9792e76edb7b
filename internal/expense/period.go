package expense

import (
	"fmt"
)

// MinYear is the earliest year accepted for extraction
const MinYear = 2000

// Period identifies one calendar month of disclosures
type Period struct {
	Year  int
	Month int
}

// NewPeriod validates and creates a Period
func NewPeriod(year, month int) (Period, error) {
	if year < MinYear {
		return Period{}, fmt.Errorf("invalid year %d: must be %d or later", year, MinYear)
	}
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("invalid month %d: must be between 1 and 12", month)
	}
	return Period{Year: year, Month: month}, nil
}

// String returns the period label used in records, e.g. "03/2024"
func (p Period) String() string {
	return fmt.Sprintf("%02d/%d", p.Month, p.Year)
}

// Code returns the YYYYMM form used by the publication portal
func (p Period) Code() string {
	return fmt.Sprintf("%d%02d", p.Year, p.Month)
}

// Compact returns the MMYYYY form used in per-period file names
func (p Period) Compact() string {
	return fmt.Sprintf("%02d%d", p.Month, p.Year)
}

// Range returns every period from startMonth to endMonth of year, in ascending order
func Range(year, startMonth, endMonth int) ([]Period, error) {
	if startMonth > endMonth {
		return nil, fmt.Errorf("start month %d is after end month %d", startMonth, endMonth)
	}

	periods := make([]Period, 0, endMonth-startMonth+1)
	for m := startMonth; m <= endMonth; m++ {
		p, err := NewPeriod(year, m)
		if err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, nil
}
