package domain

import "time"

// Organization is a charity or volunteering organization on the platform.
// Only verified organizations may be asked to validate self-reported hours.
type Organization struct {
	ID        string
	Name      string
	Email     string
	Website   string
	Verified  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Volunteer is the minimal profile the platform keeps for a contributing
// user; identity itself lives with the upstream gateway.
type Volunteer struct {
	ID            string
	DisplayName   string
	Email         string
	WalletAddress string
	CreatedAt     time.Time
}
