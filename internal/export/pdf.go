// Package export renders filtered report lists as downloadable PDF tables.
package export

import (
	"bytes"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/fieldscope/api/internal/models"
)

// Table is a titled grid ready to be rendered to a PDF document.
type Table struct {
	Title string
	Head  []string
	Rows  [][]string
}

// Render draws the table onto a single-column A4 document and returns the
// PDF bytes.
func Render(t Table) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 16, 14)
	pdf.SetAutoPageBreak(true, 16)
	pdf.AddPage()

	translate := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, translate(t.Title), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(t.Head))

	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	for _, h := range t.Head {
		pdf.CellFormat(colWidth, 8, translate(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, row := range t.Rows {
		for _, cell := range row {
			pdf.CellFormat(colWidth, 8, translate(cell), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SoilTable lays out soil reports with units attached to the numeric cells.
func SoilTable(reports []models.SoilReport) Table {
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, []string{
			string(r.SoilType),
			formatNumber(r.MoistureContent) + "%",
			formatNumber(r.PHLevel),
			formatNumber(r.CompactionLevel) + " psi",
		})
	}
	return Table{
		Title: "Filtered Soil Reports",
		Head:  []string{"Soil Type", "Moisture Content", "pH Level", "Compaction Level"},
		Rows:  rows,
	}
}

// EnvironmentalTable lays out environmental reports.
func EnvironmentalTable(reports []models.EnvironmentalReport) Table {
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, []string{
			r.Location,
			r.Temperature + "°C",
			formatNumber(r.AirQualityIndex),
			string(r.WaterQuality),
		})
	}
	return Table{
		Title: "Filtered Environmental Reports",
		Head:  []string{"Location", "Temperature (°C)", "AQI", "Water Quality"},
		Rows:  rows,
	}
}

// SurveyorTable lays out surveyor reports.
func SurveyorTable(reports []models.SurveyorReport) Table {
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, []string{
			formatNumber(r.LandArea) + " sq.m",
			formatNumber(r.Elevation) + " m",
			string(r.Topography),
		})
	}
	return Table{
		Title: "Filtered Surveyor Reports",
		Head:  []string{"Land Area (sq.m)", "Elevation (m)", "Topography"},
		Rows:  rows,
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
