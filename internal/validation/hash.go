package validation

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"server/internal/domain"
)

// VerificationHash derives the integrity token stored on an approved record.
// It is a display token over the canonical approval facts, not a commitment
// scheme; recomputing it lets a profile page spot tampered rows.
func VerificationHash(rec domain.SelfReportedHours, req domain.ValidationRequest, approvedAt time.Time) string {
	canonical := fmt.Sprintf("%s|%s|%s|%.2f|%s|%s",
		rec.ID,
		rec.VolunteerID,
		req.OrganizationID,
		rec.Hours,
		rec.ActivityDate.UTC().Format(time.RFC3339),
		approvedAt.UTC().Format(time.RFC3339),
	)
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}
