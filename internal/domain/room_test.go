package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestNewRoomGeneratesJoinCode(t *testing.T) {
	room, err := NewRoom("Period 3 Biology", "owner-1")
	if err != nil {
		t.Fatalf("NewRoom failed: %v", err)
	}

	if len(room.Code) != 6 {
		t.Fatalf("expected 6 character code, got %q", room.Code)
	}
	for _, ch := range room.Code {
		if !strings.ContainsRune(joinCodeChars, ch) {
			t.Fatalf("code %q contains %q outside the charset", room.Code, ch)
		}
	}

	if !room.IsOwner("owner-1") {
		t.Fatal("creator must be the owner")
	}
	if !room.IsMember("owner-1") {
		t.Fatal("owner must be a member")
	}
}

func TestNewRoomValidatesName(t *testing.T) {
	if _, err := NewRoom("", "owner-1"); err == nil {
		t.Fatal("empty name must be rejected")
	}
	if _, err := NewRoom("x", "owner-1"); err == nil {
		t.Fatal("one character name must be rejected")
	}
	if _, err := NewRoom("Biology", ""); err == nil {
		t.Fatal("missing owner must be rejected")
	}
}

func TestAddMemberIsIdempotent(t *testing.T) {
	room, _ := NewRoom("Biology", "owner-1")

	room.AddMember("u2")
	room.AddMember("u2")
	room.AddMember("")

	if len(room.MemberIDs) != 2 {
		t.Fatalf("expected 2 members, got %v", room.MemberIDs)
	}
}

func TestRemoveMember(t *testing.T) {
	room, _ := NewRoom("Biology", "owner-1")
	room.AddMember("u2")

	if err := room.RemoveMember("owner-1"); !errors.Is(err, ErrOwnerNotKickable) {
		t.Fatalf("expected ErrOwnerNotKickable, got %v", err)
	}
	if err := room.RemoveMember("ghost"); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}

	if err := room.RemoveMember("u2"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if room.IsMember("u2") {
		t.Fatal("u2 should be gone")
	}
}

func TestIsOwnerRejectsEmptyID(t *testing.T) {
	room := &Room{OwnerID: ""}
	if room.IsOwner("") {
		t.Fatal("empty user id must never be the owner")
	}
}
