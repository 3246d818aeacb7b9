package demand

import (
	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/gb"
)

var ukCalendar = &cal.Calendar{
	Name:      "United Kingdom",
	Holidays:  gb.Holidays,
	Cacheable: true,
}

// HolidayMask marks the rows falling on a UK bank holiday, either on
// the actual or the observed date. Demand dips on these days are
// expected and should not be read as lockdown deviation.
func (s *DailySeries) HolidayMask() []bool {
	if s == nil {
		return nil
	}
	mask := make([]bool, len(s.Dates))
	for i, day := range s.Dates {
		actual, observed, _ := ukCalendar.IsHoliday(day)
		mask[i] = actual || observed
	}
	return mask
}
