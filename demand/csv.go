package demand

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the settlement date format used by the national grid
// demand exports, e.g. 14-Mar-2020.
const DateLayout = "02-Jan-2006"

const (
	colSettlementDate = "SETTLEMENT_DATE"
	colNationalDemand = "ND"
)

// LoadCSV reads half-hourly settlement records from a CSV file. The
// file must carry a header row with at least the SETTLEMENT_DATE and
// ND columns.
func LoadCSV(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file)
}

// LoadCSVFromReader reads settlement records from an io.Reader. Parse
// failures on any row abort the load.
func LoadCSVFromReader(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("unable to read header row, %w", err)
	}

	dateIdx := -1
	demandIdx := -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case colSettlementDate:
			dateIdx = i
		case colNationalDemand:
			demandIdx = i
		}
	}
	if dateIdx == -1 {
		return nil, fmt.Errorf("%s, %w", colSettlementDate, ErrMissingColumn)
	}
	if demandIdx == -1 {
		return nil, fmt.Errorf("%s, %w", colNationalDemand, ErrMissingColumn)
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		date, err := time.Parse(DateLayout, strings.TrimSpace(row[dateIdx]))
		if err != nil {
			return nil, fmt.Errorf("unable to parse settlement date, %w", err)
		}
		nd, err := strconv.ParseFloat(strings.TrimSpace(row[demandIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("unable to parse demand value, %w", err)
		}
		records = append(records, Record{SettlementDate: date, DemandMW: nd})
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}
