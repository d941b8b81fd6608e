package ws

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/nexgen/taskbuddy/internal/domain"
	"github.com/nexgen/taskbuddy/internal/infrastructure/logging"
)

type nopLogger struct{}

func (nopLogger) Init() {}

func (nopLogger) Debug(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any) {}
func (nopLogger) Debugf(string, ...any)                                                         {}
func (nopLogger) Info(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any)  {}
func (nopLogger) Infof(string, ...any)                                                          {}
func (nopLogger) Warn(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any)  {}
func (nopLogger) Warnf(string, ...any)                                                          {}
func (nopLogger) Error(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any) {}
func (nopLogger) Errorf(string, ...any)                                                         {}
func (nopLogger) Fatal(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any) {}
func (nopLogger) Fatalf(string, ...any)                                                         {}

func nopTestLogger() logging.Logger { return nopLogger{} }

// fakeMessageStore is an in-memory MessageRepository; counts always reflect
// completed inserts, like a real store.
type fakeMessageStore struct {
	mu       sync.Mutex
	messages map[string][]domain.ChatMessage

	countErr  error
	insertErr error
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{messages: make(map[string][]domain.ChatMessage)}
}

func (s *fakeMessageStore) Insert(ctx context.Context, msg *domain.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.insertErr != nil {
		return s.insertErr
	}
	s.messages[msg.RoomID] = append(s.messages[msg.RoomID], *msg)
	return nil
}

func (s *fakeMessageStore) CountByRoom(ctx context.Context, roomID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.countErr != nil {
		return 0, s.countErr
	}
	return int64(len(s.messages[roomID])), nil
}

func (s *fakeMessageStore) GetByRoom(ctx context.Context, roomID string, limit int64) ([]domain.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.messages[roomID]
	if int64(len(msgs)) > limit {
		msgs = msgs[:limit]
	}
	out := make([]domain.ChatMessage, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (s *fakeMessageStore) DeleteByRoom(ctx context.Context, roomID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := int64(len(s.messages[roomID]))
	delete(s.messages, roomID)
	return n, nil
}

func (s *fakeMessageStore) EnsureIndexes(ctx context.Context) error { return nil }

func (s *fakeMessageStore) seed(roomID string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < n; i++ {
		s.messages[roomID] = append(s.messages[roomID], domain.ChatMessage{RoomID: roomID})
	}
}

func (s *fakeMessageStore) count(roomID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages[roomID])
}

type fakeRoomLookup struct {
	room *domain.Room
	err  error
}

func (f *fakeRoomLookup) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.room, nil
}

// fakeSender records the relay's fan-out decisions.
type fakeSender struct {
	mu        sync.Mutex
	toRoom    []*Envelope
	toChannel map[string][]*Envelope
}

func newFakeSender() *fakeSender {
	return &fakeSender{toChannel: make(map[string][]*Envelope)}
}

func (f *fakeSender) ToRoom(roomID string, env *Envelope) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toRoom = append(f.toRoom, env)
}

func (f *fakeSender) ToChannel(channelID string, env *Envelope) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toChannel[channelID] = append(f.toChannel[channelID], env)
}

func (f *fakeSender) roomBroadcasts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.toRoom)
}

func (f *fakeSender) channelEvents(channelID string) []*Envelope {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.toChannel[channelID]
}

func newTestChatRelay(store *fakeMessageStore, rooms domain.RoomOwnerLookup, sender *fakeSender) *ChatRelay {
	return NewChatRelay(store, rooms, sender, nopTestLogger())
}

func TestChatRelayPostPersistsAndBroadcasts(t *testing.T) {
	store := newFakeMessageStore()
	sender := newFakeSender()
	relay := newTestChatRelay(store, &fakeRoomLookup{}, sender)

	relay.Post(context.Background(), "ch-1", "room-1", ChatCandidate{
		SenderID:  "u1",
		Sender:    "Alice",
		Text:      "hello",
		Timestamp: "10:42 AM",
	})

	if store.count("room-1") != 1 {
		t.Fatalf("expected 1 stored message, got %d", store.count("room-1"))
	}
	if sender.roomBroadcasts() != 1 {
		t.Fatalf("expected 1 broadcast, got %d", sender.roomBroadcasts())
	}

	env := sender.toRoom[0]
	if env.Event != EventChatMessage {
		t.Fatalf("expected %s, got %s", EventChatMessage, env.Event)
	}

	msg, ok := env.Data.(*domain.ChatMessage)
	if !ok {
		t.Fatalf("expected broadcast to carry the persisted message, got %T", env.Data)
	}
	if msg.ID == "" {
		t.Fatal("persisted message must carry its durable id")
	}
	if msg.Timestamp != "10:42 AM" {
		t.Fatalf("client timestamp must be carried verbatim, got %q", msg.Timestamp)
	}
}

func TestChatRelayPostDropsInvalidCandidates(t *testing.T) {
	store := newFakeMessageStore()
	sender := newFakeSender()
	relay := newTestChatRelay(store, &fakeRoomLookup{}, sender)

	relay.Post(context.Background(), "ch-1", "", ChatCandidate{SenderID: "u1", Text: "x"})
	relay.Post(context.Background(), "ch-1", "room-1", ChatCandidate{Text: "x"})
	relay.Post(context.Background(), "ch-1", "room-1", ChatCandidate{SenderID: "u1", Text: "   "})

	if store.count("room-1") != 0 {
		t.Fatalf("invalid candidates must not persist, got %d", store.count("room-1"))
	}
	if sender.roomBroadcasts() != 0 {
		t.Fatal("invalid candidates must not broadcast")
	}
}

func TestChatRelayCapRejectsAtLimit(t *testing.T) {
	store := newFakeMessageStore()
	store.seed("room-1", domain.ChatHistoryLimit)

	sender := newFakeSender()
	relay := newTestChatRelay(store, &fakeRoomLookup{}, sender)

	relay.Post(context.Background(), "ch-1", "room-1", ChatCandidate{SenderID: "u1", Text: "one too many"})

	if store.count("room-1") != domain.ChatHistoryLimit {
		t.Fatalf("cap breached: %d messages stored", store.count("room-1"))
	}
	if sender.roomBroadcasts() != 0 {
		t.Fatal("rejected post must not broadcast")
	}

	events := sender.channelEvents("ch-1")
	if len(events) != 1 || events[0].Event != EventChatError {
		t.Fatalf("expected a single chatError to the sender, got %+v", events)
	}
}

func TestChatRelayCapUnderConcurrency(t *testing.T) {
	store := newFakeMessageStore()
	store.seed("room-1", domain.ChatHistoryLimit-1)

	sender := newFakeSender()
	relay := newTestChatRelay(store, &fakeRoomLookup{}, sender)

	const writers = 16

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			relay.Post(context.Background(), "ch-x", "room-1", ChatCandidate{SenderID: "u1", Text: "race"})
		}()
	}
	wg.Wait()

	// Exactly one writer wins the last slot; everyone else gets the cap error.
	if store.count("room-1") != domain.ChatHistoryLimit {
		t.Fatalf("expected exactly %d messages, got %d", domain.ChatHistoryLimit, store.count("room-1"))
	}
	if sender.roomBroadcasts() != 1 {
		t.Fatalf("expected exactly 1 broadcast, got %d", sender.roomBroadcasts())
	}
	if got := len(sender.channelEvents("ch-x")); got != writers-1 {
		t.Fatalf("expected %d cap errors, got %d", writers-1, got)
	}
}

func TestChatRelayCountFailureIsSwallowed(t *testing.T) {
	store := newFakeMessageStore()
	store.countErr = errors.New("store down")

	sender := newFakeSender()
	relay := newTestChatRelay(store, &fakeRoomLookup{}, sender)

	relay.Post(context.Background(), "ch-1", "room-1", ChatCandidate{SenderID: "u1", Text: "hi"})

	if store.count("room-1") != 0 {
		t.Fatal("message must not persist when the cap check fails")
	}
	if sender.roomBroadcasts() != 0 {
		t.Fatal("nothing should broadcast when the cap check fails")
	}
}

func TestChatRelayClearIsOwnerGated(t *testing.T) {
	store := newFakeMessageStore()
	store.seed("room-1", 5)

	rooms := &fakeRoomLookup{room: &domain.Room{ID: "room-1", OwnerID: "owner"}}
	relay := newTestChatRelay(store, rooms, newFakeSender())

	if _, err := relay.Clear(context.Background(), "room-1", "intruder"); !errors.Is(err, domain.ErrNotRoomOwner) {
		t.Fatalf("expected ErrNotRoomOwner, got %v", err)
	}
	if store.count("room-1") != 5 {
		t.Fatal("non-owner clear must not delete anything")
	}

	deleted, err := relay.Clear(context.Background(), "room-1", "owner")
	if err != nil {
		t.Fatalf("owner clear failed: %v", err)
	}
	if deleted != 5 {
		t.Fatalf("expected 5 deleted, got %d", deleted)
	}
	if store.count("room-1") != 0 {
		t.Fatal("history should be empty after clear")
	}
}

func TestChatRelayClearWrapsRoomError(t *testing.T) {
	rooms := &fakeRoomLookup{err: domain.ErrRoomNotFound}
	relay := newTestChatRelay(newFakeMessageStore(), rooms, newFakeSender())

	if _, err := relay.Clear(context.Background(), "room-x", "owner"); !errors.Is(err, domain.ErrRoomNotFound) {
		t.Fatalf("expected wrapped ErrRoomNotFound, got %v", err)
	}
}

func TestChatRelayHistoryHonorsLimit(t *testing.T) {
	store := newFakeMessageStore()
	store.seed("room-1", domain.ChatHistoryLimit+20)

	relay := newTestChatRelay(store, &fakeRoomLookup{}, newFakeSender())

	msgs, err := relay.History(context.Background(), "room-1")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(msgs) != domain.ChatHistoryLimit {
		t.Fatalf("expected %d messages, got %d", domain.ChatHistoryLimit, len(msgs))
	}
}
