package security

import (
	"errors"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret")

	raw, err := tm.Issue("u1", "Alice Smith", "alice@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := tm.Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if claims.Subject != "u1" {
		t.Fatalf("expected subject u1, got %q", claims.Subject)
	}
	if claims.Fullname != "Alice Smith" {
		t.Fatalf("expected fullname, got %q", claims.Fullname)
	}
	if claims.Email != "alice@example.com" {
		t.Fatalf("expected email, got %q", claims.Email)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	raw, err := NewTokenManager("secret-a").Issue("u1", "Alice", "a@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := NewTokenManager("secret-b").Parse(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret")

	for _, raw := range []string{"", "not.a.token", "eyJhbGciOiJub25lIn0.e30."} {
		if _, err := tm.Parse(raw); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Parse(%q): expected ErrInvalidToken, got %v", raw, err)
		}
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "hunter2hunter2" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !ComparePassword(hash, "hunter2hunter2") {
		t.Fatal("correct password must verify")
	}
	if ComparePassword(hash, "wrong") {
		t.Fatal("wrong password must not verify")
	}
}
