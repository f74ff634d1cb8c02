// Package insight derives human-readable summary and suggestion text from a
// report's raw field values. Every rule is an independent threshold or
// equality check against a fixed constant; lines are appended in a fixed
// field order and never sorted or deduplicated, so the same report always
// produces the same sequences.
package insight

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fieldscope/api/internal/models"
)

// Environmental thresholds.
const (
	HighTemperature = 35.0
	LowTemperature  = 10.0
	PoorAQI         = 100.0
)

// Surveyor thresholds.
const (
	GoodLandArea  = 1000.0
	HighElevation = 100.0
)

// Insight holds the derived statements for one report. Summary describes the
// observed conditions; Suggestions advise on them. Both keep the rule order.
type Insight struct {
	Summary     []string `json:"summary"`
	Suggestions []string `json:"suggestions"`
}

// SoilInsight extends Insight with the display colors of the moisture and pH
// bands the report falls into.
type SoilInsight struct {
	Insight
	MoistureColor string `json:"moistureColor"`
	PHColor       string `json:"phColor"`
}

// Environmental evaluates an environmental report. Check order is fixed:
// temperature, air quality, water quality, chemicals, asbestos, lead. The
// temperature string is parsed leniently; a blank or malformed value counts
// as zero, which lands in the low band.
func Environmental(r models.EnvironmentalReport) Insight {
	var in Insight

	temp, _ := strconv.ParseFloat(strings.TrimSpace(r.Temperature), 64)
	switch {
	case temp > HighTemperature:
		in.add("High temperature detected.", "Ensure proper ventilation and cooling systems.")
	case temp < LowTemperature:
		in.add("Low temperature detected.", "Consider insulation to maintain warmth.")
	default:
		in.Summary = append(in.Summary, "Temperature is within a comfortable range.")
	}

	if r.AirQualityIndex > PoorAQI {
		in.add("Air quality is poor.", "Use air purifiers and wear masks.")
	} else {
		in.Summary = append(in.Summary, "Air quality is acceptable.")
	}

	switch r.WaterQuality {
	case models.WaterContaminated:
		in.add("Water is contaminated.", "Use filtration or alternative sources for water.")
	case models.WaterPolluted:
		in.add("Water quality is below ideal.", "Consider basic filtration methods.")
	default:
		in.Summary = append(in.Summary, "Water quality is clean.")
	}

	if r.HazardousMaterials.Chemicals {
		in.add("Presence of chemical hazards.", "Use appropriate protective gear.")
	}
	if r.HazardousMaterials.Asbestos {
		in.add("Asbestos detected.", "Handle with extreme caution and use specialized removal services.")
	}
	if r.HazardousMaterials.Lead {
		in.add("Lead detected.", "Avoid direct contact and seek remediation services.")
	}

	return in
}

// Soil evaluates a soil report: the moisture band in order before the pH
// band. Soil reports carry no hazard flags, so no hazard lines ever appear.
func Soil(r models.SoilReport) SoilInsight {
	var in Insight

	switch {
	case r.MoistureContent <= 30:
		in.add(
			"Moisture content is too low.",
			"The moisture content is too low, which may make the soil less stable for construction without proper treatment.",
		)
	case r.MoistureContent <= 60:
		in.add(
			"Moisture content is optimal.",
			"The moisture content is optimal, making the soil suitable for construction with minimal adjustments.",
		)
	default:
		in.add(
			"Moisture content is too high.",
			"The moisture content is too high, which may lead to soil instability and require drainage solutions before construction.",
		)
	}

	in.Summary = append(in.Summary, fmt.Sprintf("pH level is in the %s band.", PHBand(r.PHLevel)))

	return SoilInsight{
		Insight:       in,
		MoistureColor: MoistureColor(r.MoistureContent),
		PHColor:       PHColor(r.PHLevel),
	}
}

// Surveyor evaluates a surveyor report. Check order is fixed: land area,
// elevation, topography, boundary.
func Surveyor(r models.SurveyorReport) Insight {
	var in Insight

	in.Summary = append(in.Summary,
		fmt.Sprintf("Land area of %s sq.m reflects the total surveyed area of the land.", formatNumber(r.LandArea)))
	if r.LandArea > GoodLandArea {
		in.Suggestions = append(in.Suggestions, "Good size for large development.")
	} else {
		in.Suggestions = append(in.Suggestions, "Small, may limit options.")
	}

	in.Summary = append(in.Summary,
		fmt.Sprintf("Elevation of %s meters is the land's height above sea level.", formatNumber(r.Elevation)))
	if r.Elevation > HighElevation {
		in.Suggestions = append(in.Suggestions, "High elevation, could be challenging.")
	} else {
		in.Suggestions = append(in.Suggestions, "Low elevation, easy to build.")
	}

	in.Summary = append(in.Summary,
		fmt.Sprintf("The surface features are described as %s.", r.Topography))
	if r.Topography == models.TopographyFlat {
		in.Suggestions = append(in.Suggestions, "Ideal for construction.")
	} else {
		in.Suggestions = append(in.Suggestions, "Challenging terrain.")
	}

	in.Summary = append(in.Summary,
		fmt.Sprintf("Boundary clearly marked: %s, disputed: %s.",
			yesNo(r.BoundaryDetails.ClearlyMarked), yesNo(r.BoundaryDetails.Disputed)))
	if r.BoundaryDetails.ClearlyMarked {
		in.Suggestions = append(in.Suggestions, "Clearly marked, good to go.")
	} else {
		in.Suggestions = append(in.Suggestions, "Disputed, needs resolution.")
	}

	return in
}

// MoistureColor maps a moisture percentage to its display color.
// Bands: <=30 low, (30,60] optimal, >60 high.
func MoistureColor(v float64) string {
	switch {
	case v <= 30:
		return "#ff6666"
	case v <= 60:
		return "#99ff99"
	default:
		return "#ffcc99"
	}
}

// PHBand labels the band a pH value falls into. Boundaries: a value of
// exactly 6 belongs to the 6-8 band, exactly 8 to 6-8, exactly 10 to 8-10.
func PHBand(v float64) string {
	switch {
	case v < 3:
		return "below 3"
	case v < 6:
		return "3-6"
	case v <= 8:
		return "6-8"
	case v <= 10:
		return "8-10"
	default:
		return "above 10"
	}
}

// PHColor maps a pH value to the display color of its band.
func PHColor(v float64) string {
	switch {
	case v < 3:
		return "#ff6666"
	case v < 6:
		return "#ffcc66"
	case v <= 8:
		return "#99ff99"
	case v <= 10:
		return "#99ccff"
	default:
		return "#ccccff"
	}
}

func (in *Insight) add(summary, suggestion string) {
	in.Summary = append(in.Summary, summary)
	in.Suggestions = append(in.Suggestions, suggestion)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
