package domain

import "time"

// HoursStatus tracks where a self-reported hours record sits in the
// validation lifecycle.
type HoursStatus string

const (
	HoursUnvalidated HoursStatus = "unvalidated"
	HoursPending     HoursStatus = "pending"
	HoursValidated   HoursStatus = "validated"
	HoursRejected    HoursStatus = "rejected"
	HoursExpired     HoursStatus = "expired"
)

// SelfReportedHours is volunteer time logged without prior organization
// sign-off. The volunteer owns the record; an organization's response moves
// it through the status lifecycle.
type SelfReportedHours struct {
	ID               string
	VolunteerID      string
	OrganizationID   *string
	ActivityDate     time.Time
	Hours            float64
	ActivityType     string
	Description      string
	Status           HoursStatus
	VerificationHash string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Editable reports whether the volunteer may still change or delete the
// record. Validated records are immutable; pending ones are locked while an
// organization holds the request.
func (h SelfReportedHours) Editable() bool {
	return h.Status == HoursUnvalidated || h.Status == HoursRejected
}
