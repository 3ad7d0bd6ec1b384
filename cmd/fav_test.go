package cmd

import (
	"strings"
	"testing"
)

func TestFavLifecycle(t *testing.T) {
	isolate(t)

	out, err := executeCommand(rootCmd, "fav")
	if err != nil {
		t.Fatalf("fav: %v", err)
	}
	if !strings.Contains(out, "No favorites yet") {
		t.Errorf("expected empty hint, got: %q", out)
	}

	if _, err := executeCommand(rootCmd, "fav", "add", "daily standup notes"); err != nil {
		t.Fatalf("fav add: %v", err)
	}
	if _, err := executeCommand(rootCmd, "fav", "add", "inbox zero"); err != nil {
		t.Fatalf("fav add: %v", err)
	}
	// Duplicates are silently kept unique.
	if _, err := executeCommand(rootCmd, "fav", "add", "inbox zero"); err != nil {
		t.Fatalf("fav add duplicate: %v", err)
	}

	out, err = executeCommand(rootCmd, "fav")
	if err != nil {
		t.Fatalf("fav list: %v", err)
	}
	if !strings.Contains(out, "1. daily standup notes") || !strings.Contains(out, "2. inbox zero") {
		t.Errorf("expected both favorites listed once, got:\n%s", out)
	}
	if strings.Count(out, "inbox zero") != 1 {
		t.Errorf("duplicate add should not create a second entry:\n%s", out)
	}

	out, err = executeCommand(rootCmd, "fav", "rm", "inbox zero")
	if err != nil {
		t.Fatalf("fav rm: %v", err)
	}
	if !strings.Contains(out, "Favorite removed.") {
		t.Errorf("expected removal confirmation, got: %q", out)
	}

	out, err = executeCommand(rootCmd, "fav", "rm", "never existed")
	if err != nil {
		t.Fatalf("fav rm absent: %v", err)
	}
	if !strings.Contains(out, "No such favorite.") {
		t.Errorf("expected no-such-favorite message, got: %q", out)
	}
}
