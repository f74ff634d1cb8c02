package models

import "time"

// Topography classifies the land surface of a surveyed plot.
type Topography string

const (
	TopographyFlat   Topography = "Flat"
	TopographyHilly  Topography = "Hilly"
	TopographySloped Topography = "Sloped"
)

// Valid reports whether t is one of the recognized topography values.
func (t Topography) Valid() bool {
	switch t {
	case TopographyFlat, TopographyHilly, TopographySloped:
		return true
	}
	return false
}

// BoundaryDetails records the legal state of the plot's boundary.
// The two flags are independent.
type BoundaryDetails struct {
	ClearlyMarked bool `json:"clearlyMarked"`
	Disputed      bool `json:"disputed"`
}

// SurveyorReport is one land survey record. CreatedAt is set once at creation
// and never changes on update.
type SurveyorReport struct {
	ID              ReportID        `json:"id"`
	LandArea        float64         `json:"landArea"`
	Document        string          `json:"document"`
	Elevation       float64         `json:"elevation"`
	Topography      Topography      `json:"topography"`
	BoundaryDetails BoundaryDetails `json:"boundaryDetails"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
