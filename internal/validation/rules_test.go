package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"server/internal/domain"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func validInput() Input {
	org := "7f8c9a10-1111-4222-8333-444455556666"
	return Input{
		VolunteerID:    "vol-1",
		OrganizationID: &org,
		ActivityDate:   testNow.AddDate(0, 0, -3),
		Hours:          4,
		ActivityType:   "tutoring",
		Description:    "Helped with weekend math tutoring sessions",
	}
}

func TestValidateInput(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Input)
		wantErr bool
	}{
		{"valid", func(in *Input) {}, false},
		{"no organization is fine", func(in *Input) { in.OrganizationID = nil }, false},
		{"hours below minimum", func(in *Input) { in.Hours = 0.25 }, true},
		{"hours above maximum", func(in *Input) { in.Hours = 24.5 }, true},
		{"hours at bounds", func(in *Input) { in.Hours = MaxHours }, false},
		{"description too short", func(in *Input) { in.Description = "short" }, true},
		{"description too long", func(in *Input) { in.Description = strings.Repeat("x", MaxDescriptionLen+1) }, true},
		{"future activity date", func(in *Input) { in.ActivityDate = testNow.Add(time.Hour) }, true},
		{"zero activity date", func(in *Input) { in.ActivityDate = time.Time{} }, true},
		{"missing activity type", func(in *Input) { in.ActivityType = "  " }, true},
		{"malformed organization id", func(in *Input) { bad := "not-a-uuid"; in.OrganizationID = &bad }, true},
		{"missing volunteer", func(in *Input) { in.VolunteerID = "" }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			err := ValidateInput(in, testNow)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if !errors.Is(err, domain.ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestAssignStatus(t *testing.T) {
	window := 30 * 24 * time.Hour

	recent := testNow.AddDate(0, 0, -3)
	stale := testNow.AddDate(0, 0, -31)

	if got := AssignStatus(true, recent, testNow, window); got != domain.HoursPending {
		t.Fatalf("verified org within window: got %s, want pending", got)
	}
	if got := AssignStatus(false, recent, testNow, window); got != domain.HoursUnvalidated {
		t.Fatalf("no verified org: got %s, want unvalidated", got)
	}
	if got := AssignStatus(true, stale, testNow, window); got != domain.HoursExpired {
		t.Fatalf("elapsed window: got %s, want expired", got)
	}
	// Deadline itself counts as elapsed.
	boundary := testNow.Add(-window)
	if got := AssignStatus(true, boundary, testNow, window); got != domain.HoursExpired {
		t.Fatalf("deadline boundary: got %s, want expired", got)
	}
}

func TestEffectiveStatus(t *testing.T) {
	window := 30 * 24 * time.Hour
	rec := domain.SelfReportedHours{
		Status:       domain.HoursPending,
		ActivityDate: testNow.AddDate(0, 0, -40),
	}
	if got := EffectiveStatus(rec, testNow, window); got != domain.HoursExpired {
		t.Fatalf("pending past window: got %s, want expired", got)
	}

	rec.Status = domain.HoursValidated
	if got := EffectiveStatus(rec, testNow, window); got != domain.HoursValidated {
		t.Fatalf("validated records never expire on read: got %s", got)
	}
}

func TestVerificationHashStable(t *testing.T) {
	rec := domain.SelfReportedHours{
		ID:           "hours-1",
		VolunteerID:  "vol-1",
		Hours:        4,
		ActivityDate: testNow.AddDate(0, 0, -3),
	}
	req := domain.ValidationRequest{OrganizationID: "org-1"}

	a := VerificationHash(rec, req, testNow)
	b := VerificationHash(rec, req, testNow)
	if a != b {
		t.Fatalf("hash not deterministic: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected hex sha256 length 64, got %d", len(a))
	}

	rec.Hours = 5
	if c := VerificationHash(rec, req, testNow); c == a {
		t.Fatalf("hash did not change with record contents")
	}
}
