package domain

import "time"

// Station is a base-station registry entry, keyed by station number plus
// operator/region. The core reads and upserts these entries but does not own
// their lifecycle.
type Station struct {
	ID        string
	Number    string
	Operator  string
	Region    string
	Address   string
	Latitude  *float64
	Longitude *float64
	UpdatedAt time.Time
}

// HasCoordinates reports whether the entry carries a usable point.
func (s *Station) HasCoordinates() bool {
	return s.Latitude != nil && s.Longitude != nil
}
