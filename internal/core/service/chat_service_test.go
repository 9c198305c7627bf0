package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/homeservices/booking-app/internal/core/domain"
	"github.com/homeservices/booking-app/internal/core/ports"
)

func newChatService(clock *fakeClock, devices ChatDevices) *ChatService {
	return NewChatService(clock, devices, ChatConfig{ReplyDelay: time.Second}, discardLogger)
}

// ---------------------------------------------------------------------------
// Reply rules
// ---------------------------------------------------------------------------

func TestGenerateReply_Rules(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"What's the price?", "The cost of Plumber varies"},
		{"how much does it COST", "The cost of Plumber varies"},
		{"Are you available tomorrow?", "We are available 24/7 for Plumber"},
		{"timing please", "We are available 24/7 for Plumber"},
		{"How much experience do you have", "highly experienced in Plumber"},
		{"I want an appointment", "You can book a Plumber service"},
		{"Hello there", "Hello! How can we assist you with Plumber"},
		{"ok bye", "You're welcome!"},
		{"Thank You", "You're welcome!"},
		{"qwerty", "We're happy to assist you with Plumber"},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			got := GenerateReply(tc.text, "Plumber")
			if !strings.Contains(got, tc.want) {
				t.Fatalf("GenerateReply(%q) = %q, want substring %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestGenerateReply_PriorityOrder(t *testing.T) {
	// pricing outranks the greeting even when both keywords occur
	got := GenerateReply("hi, what is the price to book?", "Electrician")
	if !strings.Contains(got, "The cost of Electrician") {
		t.Fatalf("expected pricing reply, got %q", got)
	}

	// "this" contains "hi"
	got = GenerateReply("this works", "Painting")
	if !strings.HasPrefix(got, "Hello!") {
		t.Fatalf("expected greeting reply, got %q", got)
	}
}

// ---------------------------------------------------------------------------
// Text messages
// ---------------------------------------------------------------------------

func TestChatService_SendMessageSchedulesReply(t *testing.T) {
	clock := newFakeClock()
	svc := newChatService(clock, ChatDevices{})
	conv := svc.Open("Plumber")

	msg, err := svc.SendMessage(context.Background(), conv.ID, "  What's the price?  ")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if msg == nil || msg.Text != "  What's the price?  " || msg.Sender != domain.SenderUser || msg.Type != domain.MessageText {
		t.Fatalf("unexpected message: %+v", msg)
	}

	msgs, _ := svc.Messages(conv.ID)
	if len(msgs) != 1 {
		t.Fatalf("reply must wait for the delay, got %d messages", len(msgs))
	}

	clock.Advance(time.Second)
	msgs, _ = svc.Messages(conv.ID)
	if len(msgs) != 2 {
		t.Fatalf("expected reply after delay, got %d messages", len(msgs))
	}
	reply := msgs[1]
	if reply.Sender != domain.SenderService || !strings.Contains(reply.Text, "Plumber") {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	if reply.ID == msgs[0].ID {
		t.Fatalf("message ids must be unique")
	}
}

func TestChatService_BlankInputIgnored(t *testing.T) {
	clock := newFakeClock()
	svc := newChatService(clock, ChatDevices{})
	conv := svc.Open("Plumber")

	msg, err := svc.SendMessage(context.Background(), conv.ID, "   \t ")
	if err != nil || msg != nil {
		t.Fatalf("expected nil message and error, got %+v %v", msg, err)
	}
	if clock.pending() != 0 {
		t.Fatalf("blank input must not schedule a reply")
	}
	msgs, _ := svc.Messages(conv.ID)
	if len(msgs) != 0 {
		t.Fatalf("expected empty transcript")
	}
}

func TestChatService_DefaultServiceName(t *testing.T) {
	clock := newFakeClock()
	svc := newChatService(clock, ChatDevices{})
	conv := svc.Open("")
	if conv.ServiceName != domain.DefaultServiceName {
		t.Fatalf("unexpected service name: %s", conv.ServiceName)
	}

	_, _ = svc.SendMessage(context.Background(), conv.ID, "hello")
	clock.Advance(time.Second)
	msgs, _ := svc.Messages(conv.ID)
	if !strings.Contains(msgs[1].Text, "Service Provider") {
		t.Fatalf("unexpected reply: %s", msgs[1].Text)
	}
}

func TestChatService_CloseCancelsPendingReply(t *testing.T) {
	clock := newFakeClock()
	svc := newChatService(clock, ChatDevices{})
	conv := svc.Open("Plumber")
	_, _ = svc.SendMessage(context.Background(), conv.ID, "hello")

	if err := svc.Close(conv.ID); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if clock.pending() != 0 {
		t.Fatalf("expected pending replies to be cancelled")
	}
	clock.Advance(time.Minute)

	if _, err := svc.Messages(conv.ID); err != domain.ErrConversationNotFound {
		t.Fatalf("expected ErrConversationNotFound, got %v", err)
	}
	if err := svc.Close(conv.ID); err != domain.ErrConversationNotFound {
		t.Fatalf("expected ErrConversationNotFound on second close, got %v", err)
	}
}

func TestChatService_UnknownConversation(t *testing.T) {
	svc := newChatService(newFakeClock(), ChatDevices{})

	if _, err := svc.SendMessage(context.Background(), "missing", "hi"); err != domain.ErrConversationNotFound {
		t.Fatalf("expected ErrConversationNotFound, got %v", err)
	}
	if _, _, err := svc.Subscribe("missing"); err != domain.ErrConversationNotFound {
		t.Fatalf("expected ErrConversationNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Attachments
// ---------------------------------------------------------------------------

func TestChatService_PickMedia(t *testing.T) {
	picker := &stubMediaPicker{asset: ports.MediaAsset{URI: "file:///img.jpg", Kind: ports.MediaImage}}
	svc := newChatService(newFakeClock(), ChatDevices{Media: picker})
	conv := svc.Open("Painting")

	msg, err := svc.PickMedia(context.Background(), conv.ID)
	if err != nil {
		t.Fatalf("PickMedia: %v", err)
	}
	if msg.Type != domain.MessageImage || msg.URI != "file:///img.jpg" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if picker.fromCamera {
		t.Fatalf("chat attachments come from the library")
	}

	picker.asset = ports.MediaAsset{URI: "file:///clip.mp4", Kind: ports.MediaVideo}
	msg, _ = svc.PickMedia(context.Background(), conv.ID)
	if msg.Type != domain.MessageVideo {
		t.Fatalf("expected video, got %s", msg.Type)
	}
}

func TestChatService_CancelledPicksAppendNothing(t *testing.T) {
	media := &stubMediaPicker{asset: ports.MediaAsset{Cancelled: true}}
	docs := &stubDocumentPicker{asset: ports.DocumentAsset{Cancelled: true}}
	svc := newChatService(newFakeClock(), ChatDevices{Media: media, Documents: docs})
	conv := svc.Open("Painting")

	if msg, err := svc.PickMedia(context.Background(), conv.ID); msg != nil || err != nil {
		t.Fatalf("expected nothing, got %+v %v", msg, err)
	}
	if msg, err := svc.PickDocument(context.Background(), conv.ID); msg != nil || err != nil {
		t.Fatalf("expected nothing, got %+v %v", msg, err)
	}
	msgs, _ := svc.Messages(conv.ID)
	if len(msgs) != 0 {
		t.Fatalf("expected empty transcript, got %d", len(msgs))
	}
}

func TestChatService_PickDocument(t *testing.T) {
	docs := &stubDocumentPicker{asset: ports.DocumentAsset{URI: "file:///quote.pdf", Name: "quote.pdf"}}
	svc := newChatService(newFakeClock(), ChatDevices{Documents: docs})
	conv := svc.Open("Painting")

	msg, err := svc.PickDocument(context.Background(), conv.ID)
	if err != nil {
		t.Fatalf("PickDocument: %v", err)
	}
	if msg.Type != domain.MessageDocument || msg.Name != "quote.pdf" {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestChatService_VoiceRecording(t *testing.T) {
	rec := &stubRecorder{uri: "file:///voice.m4a"}
	svc := newChatService(newFakeClock(), ChatDevices{Recorder: rec})
	conv := svc.Open("Mechanic")

	if msg, err := svc.StopRecording(context.Background(), conv.ID); msg != nil || err != nil {
		t.Fatalf("stop without recording must be a no-op, got %+v %v", msg, err)
	}

	if err := svc.StartRecording(context.Background(), conv.ID); err != nil {
		t.Fatalf("StartRecording: %v", err)
	}
	msg, err := svc.StopRecording(context.Background(), conv.ID)
	if err != nil {
		t.Fatalf("StopRecording: %v", err)
	}
	if msg.Type != domain.MessageVoice || msg.URI != "file:///voice.m4a" {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestChatService_RecordingPermissionDenied(t *testing.T) {
	svc := newChatService(newFakeClock(), ChatDevices{Recorder: &stubRecorder{err: domain.ErrPermissionDenied}})
	conv := svc.Open("Mechanic")

	if err := svc.StartRecording(context.Background(), conv.ID); err != domain.ErrPermissionDenied {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if msg, _ := svc.StopRecording(context.Background(), conv.ID); msg != nil {
		t.Fatalf("expected no voice message")
	}
}

// ---------------------------------------------------------------------------
// Subscriptions
// ---------------------------------------------------------------------------

func TestChatService_SubscribeReceivesNewMessages(t *testing.T) {
	clock := newFakeClock()
	svc := newChatService(clock, ChatDevices{})
	conv := svc.Open("Plumber")

	ch, cancel, err := svc.Subscribe(conv.ID)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer cancel()

	_, _ = svc.SendMessage(context.Background(), conv.ID, "hi")
	clock.Advance(time.Second)

	first := <-ch
	second := <-ch
	if first.Sender != domain.SenderUser || second.Sender != domain.SenderService {
		t.Fatalf("unexpected order: %+v %+v", first, second)
	}
}

func TestChatService_CloseEndsSubscriptions(t *testing.T) {
	svc := newChatService(newFakeClock(), ChatDevices{})
	conv := svc.Open("Plumber")
	ch, cancel, _ := svc.Subscribe(conv.ID)

	_ = svc.Close(conv.ID)
	if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel")
	}
	cancel()
}
