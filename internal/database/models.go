package database

import (
	"time"
)

// Profile is a person whose stars are computed.
type Profile struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Gender             string    `json:"gender"`
	BirthAt            time.Time `json:"birth_at"`
	Prefecture         string    `json:"prefecture"`
	Municipality       string    `json:"municipality"`
	LocationPermission bool      `json:"location_permission"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Reading is one generated fortune kept in history.
type Reading struct {
	ID             int64     `json:"id"`
	ProfileID      int64     `json:"profile_id"`
	Category       string    `json:"category"`
	Message        string    `json:"message"`
	ResponseText   string    `json:"response_text"`
	Honmei         int       `json:"honmei"`
	HonmeiName     string    `json:"honmei_name"`
	Getsumei       int       `json:"getsumei"`
	GetsumeiName   string    `json:"getsumei_name"`
	RegionSnapshot string    `json:"region_snapshot"`
	CreatedAt      time.Time `json:"created_at"`
}

// ReadingFilter narrows ListReadings. A zero ProfileID matches all
// profiles.
type ReadingFilter struct {
	ProfileID int64
	Limit     int
	Offset    int
}
