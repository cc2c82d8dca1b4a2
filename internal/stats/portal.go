package stats

import (
	"context"
	"net/url"

	"server/internal/supabase"
)

// SupabasePortal implements PortalStore over the charity portal's Supabase
// tables (volunteer_hours, endorsements), which this service does not own.
type SupabasePortal struct {
	client *supabase.Client
}

// NewSupabasePortal creates the portal-source store.
func NewSupabasePortal(client *supabase.Client) *SupabasePortal {
	return &SupabasePortal{client: client}
}

type hoursRow struct {
	Hours float64 `json:"hours"`
}

// FormalHours sums charity-approved hours for one volunteer.
func (p *SupabasePortal) FormalHours(ctx context.Context, userID string) (float64, error) {
	params := url.Values{}
	params.Set("select", "hours")
	params.Set("volunteer_id", "eq."+userID)

	var rows []hoursRow
	if err := p.client.Select(ctx, "volunteer_hours", params, &rows); err != nil {
		return 0, err
	}
	var total float64
	for _, row := range rows {
		total += row.Hours
	}
	return total, nil
}

// EndorsementCount counts charities vouching for one volunteer.
func (p *SupabasePortal) EndorsementCount(ctx context.Context, userID string) (int, error) {
	params := url.Values{}
	params.Set("select", "id")
	params.Set("volunteer_id", "eq."+userID)

	var rows []struct {
		ID string `json:"id"`
	}
	if err := p.client.Select(ctx, "endorsements", params, &rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// GlobalFormalHours sums charity-approved hours across the platform.
func (p *SupabasePortal) GlobalFormalHours(ctx context.Context) (float64, error) {
	params := url.Values{}
	params.Set("select", "total:hours.sum()")

	var rows []struct {
		Total float64 `json:"total"`
	}
	if err := p.client.Select(ctx, "volunteer_hours", params, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

var _ PortalStore = (*SupabasePortal)(nil)
