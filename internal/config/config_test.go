package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.AppEnv != EnvDev {
		t.Errorf("AppEnv = %q, want %q", cfg.AppEnv, EnvDev)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.MaxTeamsPerPerson != 5 {
		t.Errorf("MaxTeamsPerPerson = %d, want 5", cfg.MaxTeamsPerPerson)
	}
	if cfg.EntryFee != 10 {
		t.Errorf("EntryFee = %v, want 10", cfg.EntryFee)
	}
	if len(cfg.PayoutSplit) != 2 || cfg.PayoutSplit[0] != 0.9 || cfg.PayoutSplit[1] != 0.1 {
		t.Errorf("PayoutSplit = %v, want [0.9 0.1]", cfg.PayoutSplit)
	}
	if cfg.RosterCacheTTL != 24*time.Hour {
		t.Errorf("RosterCacheTTL = %v, want 24h", cfg.RosterCacheTTL)
	}
	if got := cfg.Window(); got.SeasonType != "post" || len(got.Weeks) != 4 {
		t.Errorf("Window = %+v", got)
	}
}

func TestLoad_ScoringWeeks(t *testing.T) {
	t.Setenv("SCORING_WEEKS", "1, 2 ,3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.ScoringWeeks) != 3 || cfg.ScoringWeeks[2] != 3 {
		t.Errorf("ScoringWeeks = %v", cfg.ScoringWeeks)
	}
}

func TestLoad_InvalidSeasonType(t *testing.T) {
	t.Setenv("SEASON_TYPE", "preseason")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid SEASON_TYPE")
	}
}

func TestLoad_PayoutSplitMustSumToOne(t *testing.T) {
	t.Setenv("PAYOUT_SPLIT", "0.8,0.1")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when PAYOUT_SPLIT does not sum to 1.0")
	}
}

func TestLoad_SubmissionDeadline(t *testing.T) {
	t.Setenv("SUBMISSION_DEADLINE", "2025-01-11T18:00:00Z")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := time.Date(2025, 1, 11, 18, 0, 0, 0, time.UTC)
	if !cfg.SubmissionDeadline.Equal(want) {
		t.Errorf("SubmissionDeadline = %v, want %v", cfg.SubmissionDeadline, want)
	}
}

func TestLoad_UptraceDSNRequiredWhenEnabled(t *testing.T) {
	t.Setenv("UPTRACE_ENABLED", "true")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when UPTRACE_ENABLED without UPTRACE_DSN")
	}
}

func TestPlayoffTeamSet(t *testing.T) {
	t.Setenv("PLAYOFF_TEAMS", "kc,buf")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	set := cfg.PlayoffTeamSet()
	if _, ok := set["KC"]; !ok {
		t.Error("expected PLAYOFF_TEAMS to be upper-cased")
	}
	if len(set) != 2 {
		t.Errorf("set size = %d, want 2", len(set))
	}
}
