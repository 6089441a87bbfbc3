package app

import (
	"strings"
	"testing"
)

func TestNormalizeDBURL(t *testing.T) {
	t.Parallel()

	base := "postgres://pool.example.com:6543/playoffs?sslmode=require"

	if got := normalizeDBURL(base, false); got != base {
		t.Fatalf("disabled flag must not rewrite the URL, got %q", got)
	}

	got := normalizeDBURL(base, true)
	if !strings.Contains(got, "disable_prepared_binary_result=yes") {
		t.Fatalf("expected disable_prepared_binary_result=yes in %q", got)
	}

	already := base + "&disable_prepared_binary_result=no"
	if got := normalizeDBURL(already, true); strings.Count(got, "disable_prepared_binary_result") != 1 {
		t.Fatalf("existing parameter must be preserved, got %q", got)
	}
}

func TestDBNameFromURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want string
	}{
		{"postgres://host:5432/playoffs?sslmode=disable", "playoffs"},
		{"host=localhost dbname=playoffs user=pool", "playoffs"},
		{"postgres://host:5432/", ""},
	}

	for _, tc := range cases {
		if got := dbNameFromURL(tc.raw); got != tc.want {
			t.Errorf("dbNameFromURL(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestFormatDBQueryForTrace_TruncatesAndCollapses(t *testing.T) {
	t.Parallel()

	got := formatDBQueryForTrace("SELECT id,\n\temail\nFROM entries")
	if got != "SELECT id, email FROM entries" {
		t.Fatalf("unexpected normalized query: %q", got)
	}

	long := strings.Repeat("SELECT 1 ", 200)
	got = formatDBQueryForTrace(long)
	if len(got) != maxTracedQueryLength+3 || !strings.HasSuffix(got, "...") {
		t.Fatalf("expected truncated query with ellipsis, got length %d", len(got))
	}
}
