package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimitKey(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		orgID   string
		forward string
		want    string
	}{
		{
			name:   "user header wins",
			userID: "vol-1",
			orgID:  "org-1",
			want:   "u:vol-1",
		},
		{
			name:  "org header when no user",
			orgID: "org-1",
			want:  "o:org-1",
		},
		{
			name:    "anonymous falls back to ip",
			forward: "203.0.113.1",
			want:    "203.0.113.1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "198.51.100.10:1234"
			if tc.userID != "" {
				req.Header.Set(HeaderUserID, tc.userID)
			}
			if tc.orgID != "" {
				req.Header.Set(HeaderOrganizationID, tc.orgID)
			}
			if tc.forward != "" {
				req.Header.Set("X-Forwarded-For", tc.forward)
			}
			if got := rateLimitKey(req); got != tc.want {
				t.Fatalf("rateLimitKey() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRateLimitBucketsPerIdentity(t *testing.T) {
	handler := RateLimit(1, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(userID string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "198.51.100.10:1234"
		req.Header.Set(HeaderUserID, userID)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	if code := do("vol-1"); code != http.StatusOK {
		t.Fatalf("first request for vol-1: got %d, want 200", code)
	}
	if code := do("vol-1"); code != http.StatusTooManyRequests {
		t.Fatalf("second request for vol-1: got %d, want 429", code)
	}
	// Same client address, different user: separate budget.
	if code := do("vol-2"); code != http.StatusOK {
		t.Fatalf("first request for vol-2: got %d, want 200", code)
	}
}

func TestClientIPForRateLimit(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		remoteAddr string
		want       string
	}{
		{
			name:       "single ip",
			header:     "203.0.113.1",
			remoteAddr: "198.51.100.10:1234",
			want:       "203.0.113.1",
		},
		{
			name:       "multiple ips use first",
			header:     " 203.0.113.1 , 198.51.100.2 ",
			remoteAddr: "198.51.100.10:1234",
			want:       "203.0.113.1",
		},
		{
			name:       "invalid forwarded falls back",
			header:     "invalid",
			remoteAddr: "198.51.100.10:1234",
			want:       "198.51.100.10",
		},
		{
			name:       "empty forwarded uses remote host",
			header:     "",
			remoteAddr: "198.51.100.10:1234",
			want:       "198.51.100.10",
		},
		{
			name:       "ipv6 forwarded",
			header:     "2001:db8::1",
			remoteAddr: net.JoinHostPort("2001:db8::2", "443"),
			want:       "2001:db8::1",
		},
		{
			name:       "ipv6 remote fallback",
			header:     "invalid",
			remoteAddr: net.JoinHostPort("2001:db8::2", "443"),
			want:       "2001:db8::2",
		},
		{
			name:       "remote without port",
			header:     "invalid",
			remoteAddr: "203.0.113.1",
			want:       "203.0.113.1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.header != "" {
				req.Header.Set("X-Forwarded-For", tc.header)
			}
			if got := clientIPForRateLimit(req); got != tc.want {
				t.Fatalf("clientIPForRateLimit() = %q, want %q", got, tc.want)
			}
		})
	}
}
