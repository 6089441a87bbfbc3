package httpapi

import "testing"

func TestShouldCreateHTTPAPISpan(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"httpapi.Handler.GetLeaderboard", true},
		{"httpapi.writeJSON", false},
		{"httpapi.mapError", false},
	}

	for _, tc := range cases {
		if got := shouldCreateHTTPAPISpan(tc.name); got != tc.want {
			t.Errorf("shouldCreateHTTPAPISpan(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestShouldTraceRequest(t *testing.T) {
	if shouldTraceRequest("/healthz") {
		t.Error("health checks should not be traced")
	}
	if !shouldTraceRequest("/v1/leaderboard") {
		t.Error("domain routes should be traced")
	}
}
