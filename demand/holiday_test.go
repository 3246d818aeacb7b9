package demand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolidayMask(t *testing.T) {
	records := []Record{
		{SettlementDate: day(2019, 12, 24), DemandMW: 30000},
		{SettlementDate: day(2019, 12, 25), DemandMW: 25000},
		{SettlementDate: day(2019, 12, 26), DemandMW: 26000},
		{SettlementDate: day(2020, 3, 14), DemandMW: 30000},
	}
	s, err := NewDailySeries(records)
	require.Nil(t, err)

	mask := s.HolidayMask()
	require.Len(t, mask, 4)
	assert.False(t, mask[0], "Christmas Eve is not a bank holiday")
	assert.True(t, mask[1], "Christmas Day")
	assert.True(t, mask[2], "Boxing Day")
	assert.False(t, mask[3])
}
