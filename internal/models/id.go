package models

import (
	"fmt"

	"github.com/google/uuid"
)

// ReportID is the opaque identifier of a stored report. IDs are assigned by
// the repository layer at create time; callers never construct one except by
// parsing a value previously returned from the API.
type ReportID string

// NewReportID generates a fresh identifier.
func NewReportID() ReportID {
	return ReportID(uuid.NewString())
}

// ParseReportID validates an identifier received from a request path.
func ParseReportID(s string) (ReportID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid report id %q: %w", s, err)
	}
	return ReportID(id.String()), nil
}

func (id ReportID) String() string {
	return string(id)
}
