package models

import "time"

// SoilType classifies the sampled soil.
type SoilType string

const (
	SoilClay SoilType = "Clay"
	SoilSilt SoilType = "Silt"
	SoilSand SoilType = "Sand"
	SoilLoam SoilType = "Loam"
)

// Valid reports whether t is one of the recognized soil types.
func (t SoilType) Valid() bool {
	switch t {
	case SoilClay, SoilSilt, SoilSand, SoilLoam:
		return true
	}
	return false
}

// SoilReport is one soil inspection record. Document holds the relative path
// of the uploaded file, not its contents.
type SoilReport struct {
	ID              ReportID  `json:"id"`
	SoilType        SoilType  `json:"soilType"`
	Document        string    `json:"document"`
	MoistureContent float64   `json:"moistureContent"`
	PHLevel         float64   `json:"phLevel"`
	CompactionLevel float64   `json:"compactionLevel"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
