package domain

import "time"

// RequestStatus is the terminal lifecycle of a validation request.
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestApproved  RequestStatus = "approved"
	RequestRejected  RequestStatus = "rejected"
	RequestCancelled RequestStatus = "cancelled"
)

// ValidationRequest is a time-boxed ask to an organization to confirm one
// self-reported hours record. Resubmissions reference the request they
// appeal via OriginalRequestID.
type ValidationRequest struct {
	ID                string
	HoursID           string
	OrganizationID    string
	Status            RequestStatus
	ExpiresAt         time.Time
	ResponseNote      string
	ResponderID       *string
	OriginalRequestID *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Open reports whether the request is still awaiting a response at now.
func (v ValidationRequest) Open(now time.Time) bool {
	return v.Status == RequestPending && now.Before(v.ExpiresAt)
}

// PendingQueueItem is a pending request joined with volunteer display data
// for an organization's review queue.
type PendingQueueItem struct {
	Request       ValidationRequest
	VolunteerName string
	ActivityDate  time.Time
	Hours         float64
	ActivityType  string
	Description   string
}
