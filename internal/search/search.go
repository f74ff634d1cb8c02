// Package search filters report lists by a free-text query. A query may name
// a single field with a recognized prefix ("ph level:7"); otherwise it is
// matched as a substring against the type's default fields. Matching is
// case-insensitive and numeric fields compare through their string form.
package search

import (
	"strconv"
	"strings"

	"github.com/fieldscope/api/internal/models"
)

// Soil field prefixes in priority order; the first one present in the query
// wins and prefixes are never combined.
var soilPrefixes = []string{
	"ph level:",
	"moisture content:",
	"compaction:",
	"soil type:",
}

// Soil returns the soil reports matching query. With a recognized prefix only
// the named field is matched; otherwise the query is matched against soil
// type, moisture content, pH level and compaction level.
func Soil(reports []models.SoilReport, query string) []models.SoilReport {
	q := strings.ToLower(query)

	matched := make([]models.SoilReport, 0, len(reports))
	for _, r := range reports {
		if soilMatches(r, q) {
			matched = append(matched, r)
		}
	}
	return matched
}

func soilMatches(r models.SoilReport, q string) bool {
	for _, prefix := range soilPrefixes {
		if !strings.Contains(q, prefix) {
			continue
		}
		value := strings.TrimSpace(strings.SplitN(q, prefix, 2)[1])
		switch prefix {
		case "ph level:":
			return strings.Contains(formatNumber(r.PHLevel), value)
		case "moisture content:":
			return strings.Contains(formatNumber(r.MoistureContent), value)
		case "compaction:":
			return strings.Contains(formatNumber(r.CompactionLevel), value)
		case "soil type:":
			return strings.Contains(strings.ToLower(string(r.SoilType)), value)
		}
	}

	return strings.Contains(strings.ToLower(string(r.SoilType)), q) ||
		strings.Contains(formatNumber(r.MoistureContent), q) ||
		strings.Contains(formatNumber(r.PHLevel), q) ||
		strings.Contains(formatNumber(r.CompactionLevel), q)
}

// Environmental returns the environmental reports whose location,
// temperature, air quality index or water quality contains the query.
func Environmental(reports []models.EnvironmentalReport, query string) []models.EnvironmentalReport {
	q := strings.ToLower(query)

	matched := make([]models.EnvironmentalReport, 0, len(reports))
	for _, r := range reports {
		if strings.Contains(strings.ToLower(r.Location), q) ||
			strings.Contains(strings.ToLower(r.Temperature), q) ||
			strings.Contains(formatNumber(r.AirQualityIndex), q) ||
			strings.Contains(strings.ToLower(string(r.WaterQuality)), q) {
			matched = append(matched, r)
		}
	}
	return matched
}

// Surveyor returns the surveyor reports whose land area, elevation or
// topography contains the query.
func Surveyor(reports []models.SurveyorReport, query string) []models.SurveyorReport {
	q := strings.ToLower(query)

	matched := make([]models.SurveyorReport, 0, len(reports))
	for _, r := range reports {
		if strings.Contains(formatNumber(r.LandArea), q) ||
			strings.Contains(formatNumber(r.Elevation), q) ||
			strings.Contains(strings.ToLower(string(r.Topography)), q) {
			matched = append(matched, r)
		}
	}
	return matched
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
