package main

import (
	"bytes"
	"strings"
	"testing"

	httpadapter "dungeoncore/internal/adapter/http"

	"github.com/fatih/color"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestTokenCommand_MintsVerifiableToken(t *testing.T) {
	t.Setenv("DUNGEON_AUTH_JWT_SECRET", "cli-secret")
	out, err := runCLI(t, "token", "player-1", "--ttl", "1h")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	sid, err := httpadapter.Authenticator{Secret: []byte("cli-secret")}.Verify(strings.TrimSpace(out))
	if err != nil || sid != "player-1" {
		t.Fatalf("expected player-1, got %q err=%v", sid, err)
	}
}

func TestTokenCommand_RequiresSecret(t *testing.T) {
	t.Setenv("DUNGEON_AUTH_JWT_SECRET", "")
	if _, err := runCLI(t, "token", "player-1"); err == nil {
		t.Fatalf("expected error without secret")
	}
}

func TestCatalogShow_BuiltInCatalog(t *testing.T) {
	out, err := runCLI(t, "catalog", "show")
	if err != nil {
		t.Fatalf("catalog show: %v", err)
	}
	for _, want := range []string{"Undead", "Skeleton", "SPECIES_COST_UNDEAD = 600"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestCatalogSeed_RejectsStaticTarget(t *testing.T) {
	if _, err := runCLI(t, "catalog", "seed", "--target", "static"); err == nil {
		t.Fatalf("expected error for static seed target")
	}
}

func TestResetCommand_NeedsDatabase(t *testing.T) {
	if _, err := runCLI(t, "reset", "some-session"); err == nil {
		t.Fatalf("expected error with the memory driver")
	}
}
