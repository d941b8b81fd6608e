package ws

import "testing"

func TestRosterJoinReturnsSnapshot(t *testing.T) {
	roster := NewRoster()

	got := roster.Join("ch-1", "room-1", Identity{UserID: "u1", Fullname: "Alice"})
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	if got[0].UserID != "u1" || got[0].SocketID != "ch-1" {
		t.Fatalf("unexpected entry: %+v", got[0])
	}

	got = roster.Join("ch-2", "room-1", Identity{UserID: "u2", Fullname: "Bob"})
	if len(got) != 2 {
		t.Fatalf("expected 2 entries after second join, got %d", len(got))
	}
}

func TestRosterJoinDedupesByUser(t *testing.T) {
	roster := NewRoster()

	roster.Join("ch-1", "room-1", Identity{UserID: "u1", Fullname: "Alice"})

	// A refresh yields a new channel for the same user.
	got := roster.Join("ch-2", "room-1", Identity{UserID: "u1", Fullname: "Alice"})
	if len(got) != 1 {
		t.Fatalf("rejoin should replace, got %d entries", len(got))
	}
	if got[0].SocketID != "ch-2" {
		t.Fatalf("expected the newer channel to win, got %s", got[0].SocketID)
	}
}

func TestRosterJoinRejectsEmptyInputs(t *testing.T) {
	roster := NewRoster()

	if got := roster.Join("", "room-1", Identity{UserID: "u1"}); got != nil {
		t.Fatalf("expected nil for empty channel, got %v", got)
	}
	if got := roster.Join("ch-1", "", Identity{UserID: "u1"}); got != nil {
		t.Fatalf("expected nil for empty room, got %v", got)
	}
	if got := roster.Join("ch-1", "room-1", Identity{}); got != nil {
		t.Fatalf("expected nil for empty user, got %v", got)
	}
	if got := roster.Snapshot("room-1"); len(got) != 0 {
		t.Fatalf("no-op joins must not mutate the roster, got %v", got)
	}
}

func TestRosterLeaveIsKeyedByChannel(t *testing.T) {
	roster := NewRoster()

	// Same user live twice in the same room through distinct rooms is not
	// possible, but two different users share the room.
	roster.Join("ch-1", "room-1", Identity{UserID: "u1", Fullname: "Alice"})
	roster.Join("ch-2", "room-1", Identity{UserID: "u2", Fullname: "Bob"})

	roomID, remaining, removed := roster.Leave("ch-1")
	if !removed {
		t.Fatal("expected removal")
	}
	if roomID != "room-1" {
		t.Fatalf("expected room-1, got %s", roomID)
	}
	if len(remaining) != 1 || remaining[0].UserID != "u2" {
		t.Fatalf("expected only u2 to remain, got %+v", remaining)
	}
}

func TestRosterLeaveUnknownChannel(t *testing.T) {
	roster := NewRoster()
	roster.Join("ch-1", "room-1", Identity{UserID: "u1"})

	if _, _, removed := roster.Leave("ch-unknown"); removed {
		t.Fatal("unknown channel must not remove anything")
	}
	if got := roster.Snapshot("room-1"); len(got) != 1 {
		t.Fatalf("roster should be untouched, got %v", got)
	}
}

func TestRosterEmptyRoomIsDropped(t *testing.T) {
	roster := NewRoster()
	roster.Join("ch-1", "room-1", Identity{UserID: "u1"})

	if _, _, removed := roster.Leave("ch-1"); !removed {
		t.Fatal("expected removal")
	}

	roster.mu.RLock()
	_, exists := roster.rooms["room-1"]
	roster.mu.RUnlock()

	if exists {
		t.Fatal("empty room should be deleted from the table")
	}
}

func TestRosterSnapshotIsACopy(t *testing.T) {
	roster := NewRoster()
	roster.Join("ch-1", "room-1", Identity{UserID: "u1", Fullname: "Alice"})

	snap := roster.Snapshot("room-1")
	snap[0].Fullname = "Mallory"

	if got := roster.Snapshot("room-1"); got[0].Fullname != "Alice" {
		t.Fatalf("snapshot mutation leaked into the roster: %+v", got[0])
	}
}
