package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"server/internal/domain"
)

// Boundary limits for a self-reported hours record. Anything outside these is
// rejected before a write happens.
const (
	MinHours = 0.5
	MaxHours = 24.0

	MinDescriptionLen = 10
	MaxDescriptionLen = 500
)

// Input carries a volunteer submission before it becomes a record.
type Input struct {
	VolunteerID    string
	OrganizationID *string
	ActivityDate   time.Time
	Hours          float64
	ActivityType   string
	Description    string
}

// ValidateInput applies the boundary rules: hours range, description length,
// activity date not in the future, organization reference well-formed.
func ValidateInput(in Input, now time.Time) error {
	if strings.TrimSpace(in.VolunteerID) == "" {
		return fmt.Errorf("%w: volunteer id required", domain.ErrInvalidInput)
	}
	if in.Hours < MinHours || in.Hours > MaxHours {
		return fmt.Errorf("%w: hours must be between %v and %v", domain.ErrInvalidInput, MinHours, MaxHours)
	}
	desc := strings.TrimSpace(in.Description)
	if len(desc) < MinDescriptionLen || len(desc) > MaxDescriptionLen {
		return fmt.Errorf("%w: description must be %d-%d characters", domain.ErrInvalidInput, MinDescriptionLen, MaxDescriptionLen)
	}
	if in.ActivityDate.IsZero() {
		return fmt.Errorf("%w: activity date required", domain.ErrInvalidInput)
	}
	if in.ActivityDate.After(now) {
		return fmt.Errorf("%w: activity date cannot be in the future", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.ActivityType) == "" {
		return fmt.Errorf("%w: activity type required", domain.ErrInvalidInput)
	}
	if in.OrganizationID != nil {
		if _, err := uuid.Parse(*in.OrganizationID); err != nil {
			return fmt.Errorf("%w: organization reference malformed", domain.ErrInvalidInput)
		}
	}
	return nil
}

// Deadline returns the end of the validation window for an activity date.
func Deadline(activityDate time.Time, window time.Duration) time.Time {
	return activityDate.Add(window)
}

// AssignStatus decides the initial status of a new record: pending when a
// verified organization was named and the window is still open, expired when
// the window already elapsed, unvalidated otherwise.
func AssignStatus(verifiedOrg bool, activityDate, now time.Time, window time.Duration) domain.HoursStatus {
	if !now.Before(Deadline(activityDate, window)) {
		return domain.HoursExpired
	}
	if verifiedOrg {
		return domain.HoursPending
	}
	return domain.HoursUnvalidated
}

// EffectiveStatus folds window expiry into a stored status so reads reflect
// an elapsed window before the sweep has persisted it.
func EffectiveStatus(rec domain.SelfReportedHours, now time.Time, window time.Duration) domain.HoursStatus {
	if rec.Status == domain.HoursPending && !now.Before(Deadline(rec.ActivityDate, window)) {
		return domain.HoursExpired
	}
	return rec.Status
}
