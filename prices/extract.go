package prices

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// marketSuffix matches a trailing exchange suffix like ".us" left over
// after the file extension is removed (stooq names files aapl.us.txt).
var marketSuffix = regexp.MustCompile(`\.[A-Za-z]{2,3}$`)

// SymbolFromFilename derives the ticker symbol from a source file name:
// drop the extension, strip a trailing market suffix, uppercase.
func SymbolFromFilename(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = marketSuffix.ReplaceAllString(base, "")
	return strings.ToUpper(base)
}

// ExtractFile reads and parses one source file. It always returns a
// FileProcessResult; the SymbolBatch is non-nil only on success.
func ExtractFile(f SourceFile) (FileProcessResult, *SymbolBatch) {
	symbol := SymbolFromFilename(f.Name)

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return failedResult(f.Name, symbol, fmt.Sprintf("read error: %v", err)), nil
	}

	records, err := Extract(data)
	if err != nil {
		return failedResult(f.Name, symbol, err.Error()), nil
	}

	return FileProcessResult{
		File:        f.Name,
		Symbol:      symbol,
		RecordCount: len(records),
		Success:     true,
	}, &SymbolBatch{Symbol: symbol, Records: records}
}

// Extract parses raw CSV/TXT content into daily records. Columns are
// located by case-insensitive substring match on the header row; date
// and close are required, open/high/low/volume are optional. Rows with
// an unparsable or non-positive close are skipped, never fatal.
func Extract(data []byte) ([]Record, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv read error: %w", err)
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("file too short")
	}

	cols, err := locateColumns(rows[0])
	if err != nil {
		return nil, err
	}

	var records []Record
	for _, row := range rows[1:] {
		rec, ok := parseRow(row, cols)
		if !ok {
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no valid data rows found")
	}

	return records, nil
}

type columnIndex struct {
	date   int
	open   int
	high   int
	low    int
	close  int
	volume int
}

func locateColumns(header []string) (columnIndex, error) {
	cols := columnIndex{date: -1, open: -1, high: -1, low: -1, close: -1, volume: -1}

	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		switch {
		case cols.date < 0 && strings.Contains(name, "date"):
			cols.date = i
		case cols.close < 0 && strings.Contains(name, "close"):
			cols.close = i
		case cols.open < 0 && strings.Contains(name, "open") && !strings.Contains(name, "int"):
			cols.open = i
		case cols.high < 0 && strings.Contains(name, "high"):
			cols.high = i
		case cols.low < 0 && strings.Contains(name, "low"):
			cols.low = i
		case cols.volume < 0 && strings.Contains(name, "vol"):
			cols.volume = i
		}
	}

	if cols.date < 0 || cols.close < 0 {
		return cols, fmt.Errorf("missing required columns")
	}

	return cols, nil
}

func parseRow(row []string, cols columnIndex) (Record, bool) {
	if isNoDataRow(row) {
		return Record{}, false
	}

	if cols.date >= len(row) || cols.close >= len(row) {
		return Record{}, false
	}

	date := normalizeDate(strings.TrimSpace(row[cols.date]))
	if date == "" {
		return Record{}, false
	}

	closePrice, err := strconv.ParseFloat(strings.TrimSpace(row[cols.close]), 64)
	if err != nil || math.IsNaN(closePrice) || math.IsInf(closePrice, 0) || closePrice <= 0 {
		return Record{}, false
	}

	return Record{
		Date:   date,
		Open:   floatField(row, cols.open),
		High:   floatField(row, cols.high),
		Low:    floatField(row, cols.low),
		Close:  closePrice,
		Volume: intField(row, cols.volume),
	}, true
}

func isNoDataRow(row []string) bool {
	joined := strings.TrimSpace(strings.Join(row, ""))
	if joined == "" {
		return true
	}
	return strings.Contains(strings.ToLower(strings.Join(row, ",")), "no data")
}

// normalizeDate converts compact YYYYMMDD dates into YYYY-MM-DD and
// passes anything else through untouched.
func normalizeDate(date string) string {
	if len(date) == 8 && isDigits(date) {
		return date[:4] + "-" + date[4:6] + "-" + date[6:8]
	}
	return date
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func floatField(row []string, idx int) *float64 {
	if idx < 0 || idx >= len(row) {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func intField(row []string, idx int) *int64 {
	if idx < 0 || idx >= len(row) {
		return nil
	}
	raw := strings.ReplaceAll(strings.TrimSpace(row[idx]), ",", "")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	n := int64(v)
	return &n
}

func failedResult(file, symbol, msg string) FileProcessResult {
	return FileProcessResult{
		File:    file,
		Symbol:  symbol,
		Success: false,
		Error:   msg,
	}
}
