package ws

import "sync"

// Roster is the presence table: roomId → ordered entries of who is live in
// that room. It is derived state, rebuilt from joins after a restart, and is
// mutated only by join and disconnect handling.
type Roster struct {
	rooms map[string][]PresenceEntry
	mu    sync.RWMutex
}

func NewRoster() *Roster {
	return &Roster{
		rooms: make(map[string][]PresenceEntry),
	}
}

// Join binds a channel to a room and returns the post-join roster snapshot.
// A second join by the same user replaces the prior entry, so a page refresh
// never duplicates a participant. Empty inputs are a silent no-op (nil).
func (r *Roster) Join(channelID, roomID string, user Identity) []PresenceEntry {
	if channelID == "" || roomID == "" || user.UserID == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entries := r.rooms[roomID]

	// Dedupe on userId: a rejoin replaces, not duplicates.
	kept := entries[:0]
	for _, e := range entries {
		if e.UserID != user.UserID {
			kept = append(kept, e)
		}
	}

	kept = append(kept, PresenceEntry{
		UserID:   user.UserID,
		Fullname: user.Fullname,
		SocketID: channelID,
	})
	r.rooms[roomID] = kept

	return snapshot(kept)
}

// Leave removes the entry held by channelID, if any, and returns the room it
// was removed from plus the post-removal roster. Removal is keyed by
// channelId, not userId, so a user's second live session survives the
// first one's disconnect.
func (r *Roster) Leave(channelID string) (roomID string, roster []PresenceEntry, removed bool) {
	if channelID == "" {
		return "", nil, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for room, entries := range r.rooms {
		for i, e := range entries {
			if e.SocketID != channelID {
				continue
			}

			entries = append(entries[:i], entries[i+1:]...)
			if len(entries) == 0 {
				delete(r.rooms, room)
			} else {
				r.rooms[room] = entries
			}

			return room, snapshot(entries), true
		}
	}

	return "", nil, false
}

// Snapshot returns a copy of a room's roster safe to hand to encoders.
func (r *Roster) Snapshot(roomID string) []PresenceEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return snapshot(r.rooms[roomID])
}

func snapshot(entries []PresenceEntry) []PresenceEntry {
	out := make([]PresenceEntry, len(entries))
	copy(out, entries)
	return out
}
