package importer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"Billios/internal/calc/fieldtest"
	"github.com/xuri/excelize/v2"
)

// Columns lists the expected worksheet layout. The first seven are required.
var Columns = []string{
	"cone_pre_test", "cone_post_test", "soil", "wet_weight", "dry_weight", "tare_pan", "lab_max",
	"left_on_sieve_weight", "pre_sieve_rock_correction", "sand_in_cone", "sand_density", "specific_gravity",
}

const requiredColumns = 7

var ErrEmptySheet = errors.New("empty sheet")

type RowResult struct {
	Row int `json:"row"`
	fieldtest.Result
}

type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type FieldTestImportResult struct {
	Count   int         `json:"count"`
	Results []RowResult `json:"results"`
	Skipped []RowError  `json:"skipped,omitempty"`
}

// Import reads the first sheet of an xlsx workbook, one field test per row
// after the header. Bad rows are reported in Skipped.
func Import(r io.Reader, cal fieldtest.Calibration) (FieldTestImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return FieldTestImportResult{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return FieldTestImportResult{}, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) < 2 {
		return FieldTestImportResult{}, ErrEmptySheet
	}

	var out FieldTestImportResult
	for i := 1; i < len(rows); i++ {
		// spreadsheet rows are 1-based and the header is row 1
		rowNum := i + 1
		if blank(rows[i]) {
			continue
		}
		input, err := parseFieldTestRow(rows[i])
		if err != nil {
			out.Skipped = append(out.Skipped, RowError{Row: rowNum, Error: err.Error()})
			continue
		}
		res, err := cal.Calculate(input)
		if err != nil {
			out.Skipped = append(out.Skipped, RowError{Row: rowNum, Error: err.Error()})
			continue
		}
		out.Results = append(out.Results, RowResult{Row: rowNum, Result: res})
	}
	out.Count = len(out.Results)
	return out, nil
}

func parseFieldTestRow(row []string) (fieldtest.Input, error) {
	if len(row) < requiredColumns {
		return fieldtest.Input{}, fmt.Errorf("expected at least %d columns, got %d", requiredColumns, len(row))
	}
	required := make([]float64, requiredColumns)
	for i := range required {
		v, err := toFloat(row[i])
		if err != nil {
			return fieldtest.Input{}, fmt.Errorf("%s: %w", Columns[i], err)
		}
		required[i] = v
	}
	in := fieldtest.Input{
		ConePreTest:  required[0],
		ConePostTest: required[1],
		Soil:         required[2],
		WetWeight:    required[3],
		DryWeight:    required[4],
		TarePan:      required[5],
		LabMax:       required[6],
	}

	optional := make([]*float64, len(Columns)-requiredColumns)
	for i := range optional {
		col := requiredColumns + i
		if col >= len(row) || strings.TrimSpace(row[col]) == "" {
			continue
		}
		v, err := toFloat(row[col])
		if err != nil {
			return fieldtest.Input{}, fmt.Errorf("%s: %w", Columns[col], err)
		}
		optional[i] = fieldtest.Float(v)
	}
	if optional[0] != nil {
		in.LeftOnSieveWeight = *optional[0]
	}
	if optional[1] != nil {
		in.PreSieveRockCorrection = *optional[1]
	}
	in.SandInCone = optional[2]
	in.SandDensity = optional[3]
	in.SpecificGravity = optional[4]
	return in, nil
}

// toFloat accepts both "1.5" and "1,5".
func toFloat(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	return strconv.ParseFloat(s, 64)
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
