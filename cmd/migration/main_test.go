package main

import "testing"

func TestParseSteps(t *testing.T) {
	if got, err := parseSteps(nil); err != nil || got != 1 {
		t.Fatalf("expected default of 1 step, got %d %v", got, err)
	}
	if got, err := parseSteps([]string{" 3 "}); err != nil || got != 3 {
		t.Fatalf("expected 3 steps, got %d %v", got, err)
	}
	for _, raw := range []string{"0", "-1", "x"} {
		if _, err := parseSteps([]string{raw}); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestDatabaseURL_PrefersDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://primary/tendalyze")
	t.Setenv("DB_URL", "postgres://legacy/tendalyze")
	if got := databaseURL(); got != "postgres://primary/tendalyze" {
		t.Fatalf("unexpected url: %q", got)
	}

	t.Setenv("DATABASE_URL", "")
	if got := databaseURL(); got != "postgres://legacy/tendalyze" {
		t.Fatalf("expected DB_URL fallback, got %q", got)
	}
}

func TestNormalizeDBURL(t *testing.T) {
	t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "true")
	got := normalizeDBURL("postgres://u:p@localhost:5432/tendalyze?sslmode=disable")
	if got != "postgres://u:p@localhost:5432/tendalyze?disable_prepared_binary_result=yes&sslmode=disable" {
		t.Fatalf("unexpected url: %q", got)
	}
}
