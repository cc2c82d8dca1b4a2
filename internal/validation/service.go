package validation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"server/internal/domain"
)

const maxQueueLimit = 100

// Service runs the self-reported hours validation workflow: submission,
// time-boxed requests to organizations, responses, and appeals.
type Service struct {
	hours    domain.SelfReportedHoursRepository
	requests domain.ValidationRequestRepository
	orgs     domain.OrganizationRepository
	window   time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

// Options configures a Service.
type Options struct {
	Hours    domain.SelfReportedHoursRepository
	Requests domain.ValidationRequestRepository
	Orgs     domain.OrganizationRepository
	Window   time.Duration
	Now      func() time.Time
	Logger   zerolog.Logger
}

// NewService wires the workflow service.
func NewService(opts Options) (*Service, error) {
	if opts.Hours == nil || opts.Requests == nil || opts.Orgs == nil {
		return nil, errors.New("validation: repositories are required")
	}
	if opts.Window <= 0 {
		return nil, errors.New("validation: window must be positive")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		hours:    opts.Hours,
		requests: opts.Requests,
		orgs:     opts.Orgs,
		window:   opts.Window,
		now:      now,
		log:      opts.Logger,
	}, nil
}

// Submit validates and stores a new self-reported hours record, assigning its
// initial status. When a verified organization was named and the window is
// open, a validation request is issued immediately.
func (s *Service) Submit(ctx context.Context, in Input) (*domain.SelfReportedHours, error) {
	now := s.now()
	if err := ValidateInput(in, now); err != nil {
		return nil, err
	}

	verifiedOrg := false
	if in.OrganizationID != nil {
		org, err := s.orgs.GetByID(ctx, *in.OrganizationID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown organization", domain.ErrInvalidInput)
			}
			return nil, err
		}
		verifiedOrg = org.Verified
	}

	rec := &domain.SelfReportedHours{
		ID:             uuid.NewString(),
		VolunteerID:    in.VolunteerID,
		OrganizationID: in.OrganizationID,
		ActivityDate:   in.ActivityDate,
		Hours:          in.Hours,
		ActivityType:   in.ActivityType,
		Description:    in.Description,
		Status:         AssignStatus(verifiedOrg, in.ActivityDate, now, s.window),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// The request insert is what moves a record to pending; store it
	// unvalidated so a failed issue leaves it editable.
	issueRequest := rec.Status == domain.HoursPending
	if issueRequest {
		rec.Status = domain.HoursUnvalidated
	}
	if err := s.hours.Create(ctx, rec); err != nil {
		return nil, err
	}

	if issueRequest {
		req := &domain.ValidationRequest{
			ID:             uuid.NewString(),
			HoursID:        rec.ID,
			OrganizationID: *in.OrganizationID,
			Status:         domain.RequestPending,
			ExpiresAt:      Deadline(in.ActivityDate, s.window),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := s.requests.Create(ctx, req); err != nil {
			// Leave the record usable; a request can be reissued explicitly.
			s.log.Error().Err(err).Str("hours_id", rec.ID).Msg("validation: issue request on submit failed")
		} else {
			rec.Status = domain.HoursPending
		}
	}
	return rec, nil
}

// Get returns one record with window expiry folded into its status.
func (s *Service) Get(ctx context.Context, volunteerID, id string) (*domain.SelfReportedHours, error) {
	rec, err := s.hours.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.VolunteerID != volunteerID {
		return nil, domain.ErrUnauthorized
	}
	rec.Status = EffectiveStatus(*rec, s.now(), s.window)
	return rec, nil
}

// List returns a volunteer's records, most recent first.
func (s *Service) List(ctx context.Context, volunteerID string, limit int) ([]domain.SelfReportedHours, error) {
	if limit <= 0 || limit > maxQueueLimit {
		limit = maxQueueLimit
	}
	recs, err := s.hours.ListByVolunteer(ctx, volunteerID, limit)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range recs {
		recs[i].Status = EffectiveStatus(recs[i], now, s.window)
	}
	return recs, nil
}

// Update replaces an editable record's fields. The record drops back to
// unvalidated; a fresh validation request must be issued for the new facts.
func (s *Service) Update(ctx context.Context, volunteerID, id string, in Input) (*domain.SelfReportedHours, error) {
	now := s.now()
	if err := ValidateInput(in, now); err != nil {
		return nil, err
	}
	rec, err := s.hours.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.VolunteerID != volunteerID {
		return nil, domain.ErrUnauthorized
	}
	if !rec.Editable() {
		return nil, domain.ErrRecordImmutable
	}

	rec.OrganizationID = in.OrganizationID
	rec.ActivityDate = in.ActivityDate
	rec.Hours = in.Hours
	rec.ActivityType = in.ActivityType
	rec.Description = in.Description
	rec.Status = domain.HoursUnvalidated
	rec.VerificationHash = ""
	rec.UpdatedAt = now
	if err := s.hours.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes an editable record.
func (s *Service) Delete(ctx context.Context, volunteerID, id string) error {
	rec, err := s.hours.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rec.VolunteerID != volunteerID {
		return domain.ErrUnauthorized
	}
	if !rec.Editable() {
		return domain.ErrRecordImmutable
	}
	return s.hours.Delete(ctx, id)
}

// RequestValidation issues a time-boxed request for an existing unvalidated
// record. At most one request may be open per record; the read here is a
// fast path, the repository's guarded insert is what enforces it under
// concurrency.
func (s *Service) RequestValidation(ctx context.Context, volunteerID, hoursID, orgID string) (*domain.ValidationRequest, error) {
	now := s.now()
	rec, err := s.hours.GetByID(ctx, hoursID)
	if err != nil {
		return nil, err
	}
	if rec.VolunteerID != volunteerID {
		return nil, domain.ErrUnauthorized
	}
	if rec.Status == domain.HoursValidated {
		return nil, domain.ErrRecordImmutable
	}
	if !now.Before(Deadline(rec.ActivityDate, s.window)) {
		return nil, domain.ErrWindowElapsed
	}

	org, err := s.orgs.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if !org.Verified {
		return nil, domain.ErrOrgNotVerified
	}

	if _, err := s.requests.GetOpenByHoursID(ctx, hoursID); err == nil {
		return nil, domain.ErrRequestAlreadyOpen
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	req := &domain.ValidationRequest{
		ID:             uuid.NewString(),
		HoursID:        hoursID,
		OrganizationID: orgID,
		Status:         domain.RequestPending,
		ExpiresAt:      Deadline(rec.ActivityDate, s.window),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Queue lists an organization's pending requests, soonest-expiring first,
// joined with volunteer display data.
func (s *Service) Queue(ctx context.Context, orgID string, limit int) ([]domain.PendingQueueItem, error) {
	if limit <= 0 || limit > maxQueueLimit {
		limit = maxQueueLimit
	}
	return s.requests.ListPendingByOrganization(ctx, orgID, limit)
}

// Respond applies an organization's approve/reject decision, updating the
// request and the hours record. Approval stores the verification hash.
func (s *Service) Respond(ctx context.Context, orgID, requestID string, approve bool, note, responderID string) (*domain.ValidationRequest, error) {
	now := s.now()
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.OrganizationID != orgID {
		return nil, domain.ErrUnauthorized
	}
	if req.Status != domain.RequestPending {
		return nil, domain.ErrRequestClosed
	}
	if !now.Before(req.ExpiresAt) {
		return nil, domain.ErrWindowElapsed
	}

	rec, err := s.hours.GetByID(ctx, req.HoursID)
	if err != nil {
		return nil, err
	}

	req.ResponseNote = note
	req.ResponderID = &responderID
	req.UpdatedAt = now

	hoursStatus := domain.HoursRejected
	hash := ""
	if approve {
		req.Status = domain.RequestApproved
		hoursStatus = domain.HoursValidated
		hash = VerificationHash(*rec, *req, now)
	} else {
		req.Status = domain.RequestRejected
	}
	if err := s.requests.Close(ctx, req, hoursStatus, hash); err != nil {
		return nil, err
	}
	s.log.Info().Str("hours_id", rec.ID).Str("org_id", orgID).Str("status", string(hoursStatus)).Msg("validation: response applied")
	return req, nil
}

// Resubmit appeals a rejected request while the original window is still
// open. The new request references the one it appeals.
func (s *Service) Resubmit(ctx context.Context, volunteerID, requestID string) (*domain.ValidationRequest, error) {
	now := s.now()
	orig, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if orig.Status != domain.RequestRejected {
		return nil, domain.ErrRequestClosed
	}
	if !now.Before(orig.ExpiresAt) {
		return nil, domain.ErrWindowElapsed
	}

	rec, err := s.hours.GetByID(ctx, orig.HoursID)
	if err != nil {
		return nil, err
	}
	if rec.VolunteerID != volunteerID {
		return nil, domain.ErrUnauthorized
	}

	if _, err := s.requests.GetOpenByHoursID(ctx, orig.HoursID); err == nil {
		return nil, domain.ErrRequestAlreadyOpen
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	req := &domain.ValidationRequest{
		ID:                uuid.NewString(),
		HoursID:           orig.HoursID,
		OrganizationID:    orig.OrganizationID,
		Status:            domain.RequestPending,
		ExpiresAt:         orig.ExpiresAt,
		OriginalRequestID: &orig.ID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Cancel withdraws a volunteer's own pending request; the record returns to
// unvalidated.
func (s *Service) Cancel(ctx context.Context, volunteerID, requestID string) error {
	now := s.now()
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.Status != domain.RequestPending {
		return domain.ErrRequestClosed
	}
	rec, err := s.hours.GetByID(ctx, req.HoursID)
	if err != nil {
		return err
	}
	if rec.VolunteerID != volunteerID {
		return domain.ErrUnauthorized
	}

	req.Status = domain.RequestCancelled
	req.UpdatedAt = now
	return s.requests.Close(ctx, req, domain.HoursUnvalidated, "")
}

// ExpireOverdue closes pending requests past their deadline and marks the
// covered records expired. Called by the worker sweep.
func (s *Service) ExpireOverdue(ctx context.Context) (int, error) {
	hoursIDs, err := s.requests.ExpirePending(ctx, s.now())
	if err != nil {
		return 0, err
	}
	return len(hoursIDs), nil
}
