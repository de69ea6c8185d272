package auth

import (
	"testing"
	"time"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", "quantum-trade", time.Hour)
	tok, err := tm.Generate("profile-123")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	got, err := tm.Parse(tok)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got != "profile-123" {
		t.Fatalf("profile mismatch: got %q want %q", got, "profile-123")
	}
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", "quantum-trade", -time.Minute)
	tok, err := tm.Generate("p1")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if _, err := tm.Parse(tok); err != ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParse_Rejects(t *testing.T) {
	t.Parallel()

	issuer := NewTokenManager("right-secret", "quantum-trade", time.Hour)
	tok, err := issuer.Generate("p2")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	cases := map[string]struct {
		tm    *TokenManager
		token string
	}{
		"wrong secret": {NewTokenManager("wrong-secret", "quantum-trade", time.Hour), tok},
		"wrong issuer": {NewTokenManager("right-secret", "someone-else", time.Hour), tok},
		"garbage":      {issuer, "not-a-jwt"},
		"empty":        {issuer, ""},
	}
	for name, tc := range cases {
		if _, err := tc.tm.Parse(tc.token); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestParse_MissingSubject(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", "quantum-trade", time.Hour)
	tok, err := tm.Generate("")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if _, err := tm.Parse(tok); err == nil {
		t.Fatal("expected error for token without subject")
	}
}
