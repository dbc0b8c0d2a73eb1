package report

import (
	"fmt"
	"io"
	"time"

	"Billios/internal/calc/fieldtest"
	"github.com/phpdave11/gofpdf"
)

type Input struct {
	Project string          `json:"project"`
	Author  string          `json:"author"`
	Title   string          `json:"title"`
	Notes   string          `json:"notes"`
	Test    fieldtest.Input `json:"test"`
}

type line struct {
	label string
	value string
}

// Render calculates the field test and writes it as a one-page PDF.
func Render(w io.Writer, in Input, cal fieldtest.Calibration, date time.Time) error {
	test := cal.Apply(in.Test)
	res, err := fieldtest.Calculate(test)
	if err != nil {
		return err
	}
	if in.Title == "" {
		in.Title = "Field Density Test Report"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, in.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", in.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", in.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", date.Format("2006-01-02")))
	pdf.Ln(10)

	table(pdf, "Measurements", inputLines(test))
	table(pdf, "Results", resultLines(res))

	if in.Notes != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Notes")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, in.Notes, "", "L", false)
	}

	return pdf.Output(w)
}

func table(pdf *gofpdf.Fpdf, heading string, lines []line) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, heading)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, l := range lines {
		pdf.CellFormat(90, 7, l.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, l.value, "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func inputLines(in fieldtest.Input) []line {
	lines := []line{
		{"Cone pre test (lb)", num(in.ConePreTest)},
		{"Cone post test (lb)", num(in.ConePostTest)},
		{"Sand in cone (lb)", num(orDefault(in.SandInCone, fieldtest.SandInCone))},
		{"Soil (lb)", num(in.Soil)},
		{"Sand density (pcf)", num(orDefault(in.SandDensity, fieldtest.SandDensity))},
		{"Wet weight (g)", num(in.WetWeight)},
		{"Dry weight (g)", num(in.DryWeight)},
		{"Tare, pan (g)", num(in.TarePan)},
		{"Lab max (pcf)", num(in.LabMax)},
	}
	if in.PreSieveRockCorrection > 0 {
		lines = append(lines,
			line{"Left on sieve weight", num(in.LeftOnSieveWeight)},
			line{"Pre sieve weight", num(in.PreSieveRockCorrection)},
			line{"Specific gravity", num(orDefault(in.SpecificGravity, fieldtest.SpecificGravity))},
		)
	}
	return lines
}

func resultLines(res fieldtest.Result) []line {
	lines := []line{
		{"Sand used (lb)", num(res.SandUsed)},
		{"Wet density (pcf)", num(res.WetDensity)},
		{"Moisture content (%)", num(res.MoistureContent * 100)},
		{"Dry density (pcf)", num(res.DryDensity)},
		{"Compaction (%)", num(res.Compaction)},
	}
	if res.RockCorrected {
		lines = append(lines,
			line{"Rock correction", num(res.RockCorrection)},
			line{"Corrected lab max (pcf)", num(res.LabMaxCorrection)},
			line{"Corrected compaction (%)", num(res.CorrectedCompaction)},
		)
	}
	return lines
}

func num(v float64) string {
	return fmt.Sprintf("%g", v)
}

func orDefault(p *float64, def float64) float64 {
	if p != nil {
		return *p
	}
	return def
}
