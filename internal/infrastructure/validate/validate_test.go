package validate

import (
	"strings"
	"testing"
)

func TestFieldPrefixesErrors(t *testing.T) {
	v := Field("email", Required())

	err := v("")
	if err == nil {
		t.Fatal("expected an error for empty value")
	}
	if !strings.Contains(err.Error(), "email") {
		t.Fatalf("error should name the field, got %q", err.Error())
	}
}

func TestComposeFirstErrorWins(t *testing.T) {
	v := Compose(MinLength(3), MaxLength(5))

	if err := v("ab"); err == nil || !strings.Contains(err.Error(), "at least 3") {
		t.Fatalf("expected the min-length error, got %v", err)
	}
	if err := v("abcdef"); err == nil || !strings.Contains(err.Error(), "no more than 5") {
		t.Fatalf("expected the max-length error, got %v", err)
	}
	if err := v("abcd"); err != nil {
		t.Fatalf("valid value should pass, got %v", err)
	}
}

func TestEmail(t *testing.T) {
	v := Email()

	if err := v("alice@example.com"); err != nil {
		t.Fatalf("valid email rejected: %v", err)
	}
	if err := v("not-an-email"); err == nil {
		t.Fatal("invalid email accepted")
	}
	// Empty is left to Required.
	if err := v(""); err != nil {
		t.Fatalf("empty value should pass Email alone, got %v", err)
	}
}

func TestNoSpaces(t *testing.T) {
	v := NoSpaces()

	if err := v("nospaces"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v("has space"); err == nil {
		t.Fatal("value with a space accepted")
	}
}
