package models

import "time"

// WaterQuality classifies the observed water condition at the site.
type WaterQuality string

const (
	WaterClean        WaterQuality = "Clean"
	WaterPolluted     WaterQuality = "Polluted"
	WaterContaminated WaterQuality = "Contaminated"
)

// Valid reports whether q is one of the recognized water quality values.
func (q WaterQuality) Valid() bool {
	switch q {
	case WaterClean, WaterPolluted, WaterContaminated:
		return true
	}
	return false
}

// HazardousMaterials records which hazard classes were observed on site.
// The three flags are independent.
type HazardousMaterials struct {
	Chemicals bool `json:"chemicals"`
	Asbestos  bool `json:"asbestos"`
	Lead      bool `json:"lead"`
}

// EnvironmentalReport is one environmental inspection record. Temperature is
// kept as the submitted numeric string because it may be prefilled from the
// weather lookup or left blank when that lookup fails.
type EnvironmentalReport struct {
	ID                 ReportID           `json:"id"`
	Location           string             `json:"location"`
	Document           string             `json:"document"`
	Temperature        string             `json:"temperature"`
	AirQualityIndex    float64            `json:"airQualityIndex"`
	WaterQuality       WaterQuality       `json:"waterQuality"`
	HazardousMaterials HazardousMaterials `json:"hazardousMaterials"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}
