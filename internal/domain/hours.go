package domain

import "time"

// VolunteerHours is charity-approved time, recorded by the charity itself.
// Distinct from SelfReportedHours, which starts out unverified.
type VolunteerHours struct {
	ID          string
	VolunteerID string
	CharityID   string
	Hours       float64
	Description string
	ApprovedBy  string
	WorkedAt    time.Time
	CreatedAt   time.Time
}

// Endorsement is a charity publicly vouching for a volunteer.
type Endorsement struct {
	ID          string
	VolunteerID string
	CharityID   string
	Note        string
	CreatedAt   time.Time
}
