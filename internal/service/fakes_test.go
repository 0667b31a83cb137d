package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/adboard/chat-service/internal/domain"
)

// fakePresence mimics the redis hash layout: one map per user keyed by
// client id, last write wins.
type fakePresence struct {
	mu      sync.Mutex
	entries map[int]map[string]string
}

func newFakePresence() *fakePresence {
	return &fakePresence{entries: make(map[int]map[string]string)}
}

func (f *fakePresence) Register(_ context.Context, userID int, clientID, handle string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.entries[userID] == nil {
		f.entries[userID] = make(map[string]string)
	}
	f.entries[userID][clientID] = handle
	return nil
}

func (f *fakePresence) Unregister(_ context.Context, userID int, clientID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries[userID], clientID)
	return nil
}

func (f *fakePresence) ActiveHandles(_ context.Context, userID int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	handles := make([]string, 0, len(f.entries[userID]))
	for _, handle := range f.entries[userID] {
		handles = append(handles, handle)
	}
	return handles, nil
}

type emission struct {
	handle  string
	payload map[string]any
}

type fakeEmitter struct {
	mu         sync.Mutex
	emissions  []emission
	broadcasts []map[string]any
}

func (f *fakeEmitter) EmitTo(_ context.Context, handle string, payload map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emissions = append(f.emissions, emission{handle: handle, payload: payload})
	return nil
}

func (f *fakeEmitter) Broadcast(_ context.Context, payload map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.broadcasts = append(f.broadcasts, payload)
	return nil
}

func (f *fakeEmitter) toHandle(handle string) []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []map[string]any
	for _, e := range f.emissions {
		if e.handle == handle {
			out = append(out, e.payload)
		}
	}
	return out
}

func (f *fakeEmitter) byType(t domain.EventType) []emission {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []emission
	for _, e := range f.emissions {
		if e.payload["type"] == string(t) {
			out = append(out, e)
		}
	}
	return out
}

type fakeChatStore struct {
	mu           sync.Mutex
	failCreate   bool
	nextID       int
	messages     map[int]*domain.Message
	translations map[string]*domain.TranslatedMessage
	peers        map[int]map[int]int // chat id -> member -> peer
	chatLists    map[int][]domain.ChatSummary
	histories    map[int][]domain.Message
	summaries    map[int]*domain.ChatSummary
	createdChats []createdChat
}

type createdChat struct {
	entityID, userID, peerID int
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{
		nextID:       100,
		messages:     make(map[int]*domain.Message),
		translations: make(map[string]*domain.TranslatedMessage),
		peers:        make(map[int]map[int]int),
		chatLists:    make(map[int][]domain.ChatSummary),
		histories:    make(map[int][]domain.Message),
		summaries:    make(map[int]*domain.ChatSummary),
	}
}

func (f *fakeChatStore) setPeers(chatID, a, b int) {
	f.peers[chatID] = map[int]int{a: b, b: a}
}

func (f *fakeChatStore) CreateMessage(_ context.Context, in *domain.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return fmt.Errorf("storage unavailable")
	}
	f.nextID++
	in.ID = f.nextID
	in.CreatedAt = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	stored := *in
	f.messages[in.ID] = &stored
	return nil
}

func (f *fakeChatStore) SetMessageFlag(_ context.Context, messageID int, action domain.Action) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg, ok := f.messages[messageID]
	if !ok {
		return nil
	}
	switch action {
	case domain.ActionViewed:
		msg.Viewed = true
	case domain.ActionDelivered:
		msg.Delivered = true
	}
	return nil
}

func (f *fakeChatStore) CreateChat(_ context.Context, entityID, userID, peerID int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	chatID := f.nextID
	f.createdChats = append(f.createdChats, createdChat{entityID, userID, peerID})
	if f.peers[chatID] == nil {
		f.peers[chatID] = map[int]int{userID: peerID, peerID: userID}
	}
	f.summaries[chatID] = &domain.ChatSummary{ChatID: chatID, EntityID: entityID, WithUserID: peerID}
	return chatID, nil
}

func (f *fakeChatStore) UserChats(_ context.Context, userID int) ([]domain.ChatSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.chatLists[userID], nil
}

func (f *fakeChatStore) ChatSummary(_ context.Context, _, chatID int) (*domain.ChatSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	summary, ok := f.summaries[chatID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return summary, nil
}

func (f *fakeChatStore) ChatMessages(_ context.Context, chatID int) ([]domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.histories[chatID], nil
}

func (f *fakeChatStore) ChatPeer(_ context.Context, chatID, userID int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	peer, ok := f.peers[chatID][userID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return peer, nil
}

func (f *fakeChatStore) CreateTranslation(_ context.Context, in *domain.TranslatedMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := fmt.Sprintf("%d:%s", in.MessageID, in.Language)
	if _, ok := f.translations[key]; ok {
		return nil
	}
	stored := *in
	f.translations[key] = &stored
	return nil
}

type fakeDirectory struct {
	mu     sync.Mutex
	users  map[int]*domain.User
	tokens map[int][]string
	titles map[string]string
	online map[int]bool
}

func newFakeDirectory(users ...*domain.User) *fakeDirectory {
	f := &fakeDirectory{
		users:  make(map[int]*domain.User),
		tokens: make(map[int][]string),
		titles: map[string]string{"en": "New message"},
		online: make(map[int]bool),
	}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeDirectory) GetUser(_ context.Context, userID int) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (f *fakeDirectory) SetOnline(_ context.Context, userID int, online bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.online[userID] = online
	return nil
}

func (f *fakeDirectory) PushTokens(_ context.Context, userID int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tokens[userID], nil
}

func (f *fakeDirectory) PushTitle(_ context.Context, language string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	title, ok := f.titles[language]
	if !ok {
		return "", domain.ErrNotFound
	}
	return title, nil
}

type fakeTranslator struct {
	mu    sync.Mutex
	fail  bool
	calls int
}

func (f *fakeTranslator) Translate(_ context.Context, text, target, source string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail {
		return "", "", fmt.Errorf("provider unavailable")
	}
	return "[" + target + "] " + text, source, nil
}

type sentPush struct {
	token, title, body string
	data               map[string]string
}

type fakePusher struct {
	mu         sync.Mutex
	failTokens map[string]bool
	sent       []sentPush
}

func (f *fakePusher) Send(_ context.Context, token, title, body string, data map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTokens[token] {
		return fmt.Errorf("token rejected")
	}
	f.sent = append(f.sent, sentPush{token: token, title: title, body: body, data: data})
	return nil
}
