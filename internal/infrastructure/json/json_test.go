package json

import (
	"net/http/httptest"
	"strings"
	"testing"
)

type testBody struct {
	Name string `json:"name"`
}

func TestReadDecodesBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"alice"}`))

	var dst testBody
	if err := Read(r, &dst); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if dst.Name != "alice" {
		t.Fatalf("expected alice, got %q", dst.Name)
	}
}

func TestReadRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"alice","extra":true}`))

	var dst testBody
	if err := Read(r, &dst); err == nil {
		t.Fatal("unknown fields must be rejected")
	}
}

func TestReadRejectsTrailingDocument(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"a"}{"name":"b"}`))

	var dst testBody
	if err := Read(r, &dst); err == nil {
		t.Fatal("a second JSON document must be rejected")
	}
}

func TestWriteErrorEnvelope(t *testing.T) {
	w := httptest.NewRecorder()

	WriteError(w, 400, nil, "bad input")

	if w.Code != 400 {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected json content type, got %q", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"success":false`) || !strings.Contains(body, "bad input") {
		t.Fatalf("unexpected envelope: %s", body)
	}
}
