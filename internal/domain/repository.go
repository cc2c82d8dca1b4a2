package domain

import (
	"context"
	"time"
)

// SelfReportedHoursRepository persists volunteer-submitted hours records.
type SelfReportedHoursRepository interface {
	Create(ctx context.Context, rec *SelfReportedHours) error
	GetByID(ctx context.Context, id string) (*SelfReportedHours, error)
	ListByVolunteer(ctx context.Context, volunteerID string, limit int) ([]SelfReportedHours, error)
	Update(ctx context.Context, rec *SelfReportedHours) error
	Delete(ctx context.Context, id string) error
}

// ValidationRequestRepository persists time-boxed validation requests.
// Lifecycle writes touch both the request and the hours record it covers in a
// single statement, so the pair can never land half-applied.
type ValidationRequestRepository interface {
	// Create inserts a pending request and moves the covered hours record to
	// pending in one guarded statement. Returns ErrRequestAlreadyOpen when a
	// pending request already covers the record, including when a concurrent
	// writer won the race.
	Create(ctx context.Context, req *ValidationRequest) error
	GetByID(ctx context.Context, id string) (*ValidationRequest, error)
	// GetOpenByHoursID returns the pending request for a record, or ErrNotFound.
	GetOpenByHoursID(ctx context.Context, hoursID string) (*ValidationRequest, error)
	ListPendingByOrganization(ctx context.Context, orgID string, limit int) ([]PendingQueueItem, error)
	// Close applies a terminal status to the request and the given status and
	// verification hash to the covered hours record, atomically.
	Close(ctx context.Context, req *ValidationRequest, hoursStatus HoursStatus, verificationHash string) error
	// ExpirePending closes pending requests past their deadline, marks the
	// covered records expired, and returns the ids of those records.
	ExpirePending(ctx context.Context, now time.Time) ([]string, error)
}

// OrganizationRepository provides organization lookups.
type OrganizationRepository interface {
	GetByID(ctx context.Context, id string) (*Organization, error)
	ListVerified(ctx context.Context, limit int) ([]Organization, error)
}

// VolunteerRepository keeps the minimal volunteer profile.
type VolunteerRepository interface {
	Upsert(ctx context.Context, v *Volunteer) error
	GetByID(ctx context.Context, id string) (*Volunteer, error)
}

// DonationRepository handles donation persistence. Donations are append-only.
type DonationRepository interface {
	CreateCrypto(ctx context.Context, d *Donation) error
	CreateFiat(ctx context.Context, d *FiatDonation) error
	ListRecent(ctx context.Context, limit int) ([]Donation, error)
	ListRecentFiat(ctx context.Context, limit int) ([]FiatDonation, error)
}
