package demand

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
)

const (
	daysPerYear = 365.0
	mwPerGW     = 1000.0
)

// DailySeries is the per-day aggregation of settlement records. Rows
// are sorted ascending by date with one row per distinct calendar day.
type DailySeries struct {
	Dates     []time.Time
	Years     []int
	DayOfYear []int
	DemandMW  []float64
}

// NewDailySeries groups records by calendar date and averages the
// demand column per day.
func NewDailySeries(records []Record) (*DailySeries, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	type group struct {
		sum float64
		n   int
	}
	byDate := make(map[time.Time]*group)
	for _, r := range records {
		day := time.Date(
			r.SettlementDate.Year(), r.SettlementDate.Month(), r.SettlementDate.Day(),
			0, 0, 0, 0, time.UTC,
		)
		g, exists := byDate[day]
		if !exists {
			g = &group{}
			byDate[day] = g
		}
		g.sum += r.DemandMW
		g.n += 1
	}

	dates := make([]time.Time, 0, len(byDate))
	for day := range byDate {
		dates = append(dates, day)
	}
	sort.Slice(
		dates,
		func(i, j int) bool {
			return dates[i].Before(dates[j])
		},
	)

	s := &DailySeries{
		Dates:     dates,
		Years:     make([]int, 0, len(dates)),
		DayOfYear: make([]int, 0, len(dates)),
		DemandMW:  make([]float64, 0, len(dates)),
	}
	for _, day := range dates {
		g := byDate[day]
		s.Years = append(s.Years, day.Year())
		s.DayOfYear = append(s.DayOfYear, day.YearDay())
		s.DemandMW = append(s.DemandMW, g.sum/float64(g.n))
	}
	return s, nil
}

// Len returns the number of aggregated days.
func (s *DailySeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Dates)
}

// UniqueYears returns the distinct years present in ascending order.
func (s *DailySeries) UniqueYears() []int {
	if s == nil {
		return nil
	}
	var years []int
	for _, year := range s.Years {
		if len(years) == 0 || years[len(years)-1] != year {
			years = append(years, year)
		}
	}
	return years
}

// YearSlice returns the day-of-year and demand values for a single
// year, for plotting years on a shared day-of-year axis.
func (s *DailySeries) YearSlice(year int) ([]int, []float64) {
	if s == nil {
		return nil, nil
	}
	var doy []int
	var demand []float64
	for i, y := range s.Years {
		if y != year {
			continue
		}
		doy = append(doy, s.DayOfYear[i])
		demand = append(demand, s.DemandMW[i])
	}
	return doy, demand
}

// PseudoDays builds a strictly increasing day index across year
// boundaries. Each year's day-of-year values are offset by the
// cumulative observed max day-of-year of all prior years, which
// absorbs leap years without a calendar constant.
func (s *DailySeries) PseudoDays() []float64 {
	if s == nil {
		return nil
	}
	out := make([]float64, len(s.Dates))
	offset := 0
	yearMax := 0
	for i := range s.Dates {
		if i > 0 && s.Years[i] != s.Years[i-1] {
			offset += yearMax
			yearMax = 0
		}
		if s.DayOfYear[i] > yearMax {
			yearMax = s.DayOfYear[i]
		}
		out[i] = float64(offset + s.DayOfYear[i])
	}
	return out
}

// FractionalYears converts the pseudo-day index to years since the
// dataset start by dividing by 365.
func (s *DailySeries) FractionalYears() []float64 {
	days := s.PseudoDays()
	floats.Scale(1.0/daysPerYear, days)
	return days
}

// DemandGW returns the mean daily demand converted from MW to GW.
func (s *DailySeries) DemandGW() []float64 {
	if s == nil {
		return nil
	}
	gw := make([]float64, len(s.DemandMW))
	copy(gw, s.DemandMW)
	floats.Scale(1.0/mwPerGW, gw)
	return gw
}
