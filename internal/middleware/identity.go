package middleware

import (
	"context"
	"net/http"
	"strings"
)

// Identity headers set by the auth gateway in front of this service.
// Authentication itself happens upstream; these carry the resolved ids.
const (
	HeaderUserID         = "X-User-ID"
	HeaderOrganizationID = "X-Organization-ID"
)

type identityKey string

const (
	volunteerIDKey    identityKey = "volunteer_id"
	organizationIDKey identityKey = "organization_id"
)

// Identity copies the gateway identity headers into the request context.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if id := strings.TrimSpace(r.Header.Get(HeaderUserID)); id != "" {
			ctx = context.WithValue(ctx, volunteerIDKey, id)
		}
		if id := strings.TrimSpace(r.Header.Get(HeaderOrganizationID)); id != "" {
			ctx = context.WithValue(ctx, organizationIDKey, id)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// VolunteerIDFromContext returns the caller's user id, if any.
func VolunteerIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(volunteerIDKey).(string); ok {
		return v
	}
	return ""
}

// OrganizationIDFromContext returns the caller's organization id, if any.
func OrganizationIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(organizationIDKey).(string); ok {
		return v
	}
	return ""
}
