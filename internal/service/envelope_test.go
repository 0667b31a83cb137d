package service

import (
	"testing"
	"time"

	"github.com/adboard/chat-service/internal/domain"
)

func TestContentPayloadOmitsAbsentFields(t *testing.T) {
	p := ContentEnvelope{Text: "hi"}.Payload()

	if p["type"] != string(domain.EventMessage) {
		t.Errorf("expected message discriminator, got %v", p["type"])
	}
	if p["text"] != "hi" {
		t.Errorf("expected text, got %v", p["text"])
	}
	for _, key := range []string{"sender", "chat_id", "message_id", "timestamp", "time", "translated", "extKey"} {
		if _, ok := p[key]; ok {
			t.Errorf("expected %q omitted from payload, got %v", key, p[key])
		}
	}
}

func TestContentPayloadCarriesAssignedFields(t *testing.T) {
	ts := time.Date(2026, 3, 14, 10, 30, 45, 0, time.UTC)
	p := ContentEnvelope{
		From:       &Participant{ID: 1, Language: "en"},
		To:         &Participant{ID: 2, Language: "ru"},
		ChatID:     7,
		MessageID:  101,
		Text:       "hi",
		Translated: "привет",
		ExtKey:     "tmp-42",
		Timestamp:  ts,
	}.Payload()

	if p["sender"] != 1 {
		t.Errorf("expected sender 1, got %v", p["sender"])
	}
	if p["chat_id"] != 7 || p["message_id"] != 101 {
		t.Errorf("expected chat/message ids, got %v / %v", p["chat_id"], p["message_id"])
	}
	if p["timestamp"] != "2026-03-14 10:30:45" {
		t.Errorf("unexpected timestamp rendering: %v", p["timestamp"])
	}
	if p["time"] != "10:30" {
		t.Errorf("unexpected short time rendering: %v", p["time"])
	}
	if p["translated"] != "привет" || p["extKey"] != "tmp-42" {
		t.Errorf("expected translated/extKey passthrough, got %v / %v", p["translated"], p["extKey"])
	}
}

func TestActionPayloadCarriesActionCode(t *testing.T) {
	counter := 5
	p := ActionEnvelope{
		From:          &Participant{ID: 1},
		Action:        domain.ActionLoadChats,
		Chats:         []domain.ChatSummary{{ChatID: 7}},
		UnseenCounter: &counter,
	}.Payload()

	if p["type"] != string(domain.EventAction) {
		t.Errorf("expected action discriminator, got %v", p["type"])
	}
	if p["action"] != string(domain.ActionLoadChats) {
		t.Errorf("expected action code, got %v", p["action"])
	}
	if p["unseen_counter"] != 5 {
		t.Errorf("expected counter 5, got %v", p["unseen_counter"])
	}
}

func TestReversedSwapsDirectionWithoutAliasing(t *testing.T) {
	orig := ActionEnvelope{
		From: &Participant{ID: 1},
		To:   &Participant{ID: 2},
	}

	rev := orig.Reversed()

	if rev.From.ID != 2 || rev.To.ID != 1 {
		t.Errorf("expected swapped direction, got from=%v to=%v", rev.From, rev.To)
	}
	if orig.From.ID != 1 || orig.To.ID != 2 {
		t.Error("Reversed must not mutate the source envelope")
	}
}

func TestAnonymizedClearsSenderWithoutAliasing(t *testing.T) {
	orig := ActionEnvelope{
		From: &Participant{ID: 1},
		To:   &Participant{ID: 2},
	}

	anon := orig.Anonymized()

	if anon.Sender() != nil {
		t.Error("expected sender cleared")
	}
	if orig.From == nil {
		t.Error("Anonymized must not mutate the source envelope")
	}
	if _, ok := anon.Payload()["sender"]; ok {
		t.Error("anonymized payload must omit the sender field")
	}
}
