package domain

// UserStats reconciles a volunteer's contributions across every source.
type UserStats struct {
	UserID           string  `json:"user_id"`
	TotalDonatedUSD  float64 `json:"total_donated_usd"`
	FormalHours      float64 `json:"formal_hours"`
	ValidatedHours   float64 `json:"validated_hours"`
	UnvalidatedHours float64 `json:"unvalidated_hours"`
	EndorsementCount int     `json:"endorsement_count"`
}

// LeaderboardEntry is one row of a donor or volunteer leaderboard.
type LeaderboardEntry struct {
	UserID      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Score       float64 `json:"score"`
	Rank        int     `json:"rank"`
}

// GlobalSummary is the platform-wide rollup shown on the landing dashboard.
type GlobalSummary struct {
	TotalDonatedUSD   float64 `json:"total_donated_usd"`
	TotalFormalHours  float64 `json:"total_formal_hours"`
	TotalSelfReported float64 `json:"total_self_reported_hours"`
	TotalVolunteers   int     `json:"total_volunteers"`
	TotalCharities    int     `json:"total_charities"`
}
