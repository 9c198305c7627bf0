package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/homeservices/booking-app/internal/core/domain"
	"github.com/homeservices/booking-app/internal/core/ports"
)

const (
	defaultReplyDelay = time.Second
	subscriberBuffer  = 16
)

type replyRule struct {
	keywords []string
	template string
}

// replyRules are evaluated top to bottom; the first rule with a keyword
// contained in the lowercased text wins.
var replyRules = []replyRule{
	{[]string{"price", "cost"}, "The cost of %s varies based on work. Would you like an estimate? 😊"},
	{[]string{"available", "timing"}, "We are available 24/7 for %s. Want to book? 📅"},
	{[]string{"experience"}, "Our professionals are highly experienced in %s. Need reviews? ⭐"},
	{[]string{"book", "appointment"}, "You can book a %s service anytime. Please provide your preferred date. 📅"},
	{[]string{"hello", "hi"}, "Hello! How can we assist you with %s today? 😊"},
	{[]string{"bye", "thank you"}, "You're welcome! Let us know if you need %s in the future. 🌟"},
}

const genericReply = "We're happy to assist you with %s. How can we help? 😊"

// GenerateReply picks the automated provider answer for a user message.
func GenerateReply(text, serviceName string) string {
	lower := strings.ToLower(text)
	for _, r := range replyRules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return fmt.Sprintf(r.template, serviceName)
			}
		}
	}
	return fmt.Sprintf(genericReply, serviceName)
}

// ChatConfig tunes the chat simulator.
type ChatConfig struct {
	ReplyDelay time.Duration
}

// ChatDevices groups the device shims used for message attachments.
type ChatDevices struct {
	Media     ports.MediaPicker
	Documents ports.DocumentPicker
	Recorder  ports.AudioRecorder
}

type conversation struct {
	id          string
	serviceName string
	messages    []domain.ChatMessage
	replies     map[*replyTimer]struct{}
	recording   ports.Recording
	subs        map[int]chan domain.ChatMessage
	nextSub     int
	closed      bool
}

type replyTimer struct {
	t ports.Timer
}

// ChatService keeps in-memory conversations with a simulated provider.
// Nothing is persisted; closing a conversation drops its transcript.
type ChatService struct {
	clock   ports.Clock
	devices ChatDevices
	delay   time.Duration
	newID   func() string
	log     zerolog.Logger

	mu    sync.Mutex
	convs map[string]*conversation
}

func NewChatService(clock ports.Clock, devices ChatDevices, cfg ChatConfig, log zerolog.Logger) *ChatService {
	if cfg.ReplyDelay <= 0 {
		cfg.ReplyDelay = defaultReplyDelay
	}
	return &ChatService{
		clock:   clock,
		devices: devices,
		delay:   cfg.ReplyDelay,
		newID:   messageID,
		log:     log,
		convs:   make(map[string]*conversation),
	}
}

// messageID returns a time-ordered identifier.
func messageID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (s *ChatService) Open(serviceName string) ports.Conversation {
	if strings.TrimSpace(serviceName) == "" {
		serviceName = domain.DefaultServiceName
	}
	c := &conversation{
		id:          uuid.NewString(),
		serviceName: serviceName,
		replies:     make(map[*replyTimer]struct{}),
		subs:        make(map[int]chan domain.ChatMessage),
	}

	s.mu.Lock()
	s.convs[c.id] = c
	s.mu.Unlock()

	s.log.Debug().Str("conversation_id", c.id).Str("service", serviceName).Msg("chat opened")
	return ports.Conversation{ID: c.id, ServiceName: serviceName}
}

// Close cancels pending replies, discards any in-flight recording and ends
// all subscriptions.
func (s *ChatService) Close(id string) error {
	s.mu.Lock()
	c, ok := s.convs[id]
	if !ok {
		s.mu.Unlock()
		return domain.ErrConversationNotFound
	}
	delete(s.convs, id)
	c.closed = true
	for rt := range c.replies {
		rt.t.Stop()
	}
	c.replies = nil
	rec := c.recording
	c.recording = nil
	for sid, ch := range c.subs {
		close(ch)
		delete(c.subs, sid)
	}
	s.mu.Unlock()

	if rec != nil {
		if _, err := rec.Stop(context.Background()); err != nil {
			s.log.Warn().Err(err).Str("conversation_id", id).Msg("discard recording failed")
		}
	}
	s.log.Debug().Str("conversation_id", id).Msg("chat closed")
	return nil
}

// SendMessage appends a user text message and schedules the provider reply.
// Blank input returns a nil message. The text is stored as typed.
func (s *ChatService) SendMessage(_ context.Context, id, text string) (*domain.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.convs[id]
	if !ok {
		return nil, domain.ErrConversationNotFound
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	msg := s.appendLocked(c, domain.ChatMessage{Sender: domain.SenderUser, Type: domain.MessageText, Text: text})

	reply := GenerateReply(text, c.serviceName)
	rt := &replyTimer{}
	rt.t = s.clock.AfterFunc(s.delay, func() { s.deliverReply(c, rt, reply) })
	c.replies[rt] = struct{}{}

	return &msg, nil
}

func (s *ChatService) deliverReply(c *conversation, rt *replyTimer, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.closed {
		return
	}
	delete(c.replies, rt)
	s.appendLocked(c, domain.ChatMessage{Sender: domain.SenderService, Type: domain.MessageText, Text: text})
}

// PickMedia attaches an image or video from the media library.
func (s *ChatService) PickMedia(ctx context.Context, id string) (*domain.ChatMessage, error) {
	if _, err := s.conversation(id); err != nil {
		return nil, err
	}
	asset, err := s.devices.Media.PickMedia(ctx, false)
	if err != nil {
		s.log.Warn().Err(err).Str("conversation_id", id).Msg("media pick failed")
		return nil, err
	}
	if asset.Cancelled || asset.URI == "" {
		return nil, nil
	}
	kind := domain.MessageVideo
	if asset.Kind == ports.MediaImage {
		kind = domain.MessageImage
	}
	return s.append(id, domain.ChatMessage{Sender: domain.SenderUser, Type: kind, URI: asset.URI})
}

func (s *ChatService) PickDocument(ctx context.Context, id string) (*domain.ChatMessage, error) {
	if _, err := s.conversation(id); err != nil {
		return nil, err
	}
	doc, err := s.devices.Documents.PickDocument(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("conversation_id", id).Msg("document pick failed")
		return nil, err
	}
	if doc.Cancelled || doc.URI == "" {
		return nil, nil
	}
	return s.append(id, domain.ChatMessage{Sender: domain.SenderUser, Type: domain.MessageDocument, URI: doc.URI, Name: doc.Name})
}

// StartRecording begins a voice capture. Starting while one is active is a
// no-op.
func (s *ChatService) StartRecording(ctx context.Context, id string) error {
	c, err := s.conversation(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	active := c.recording != nil
	s.mu.Unlock()
	if active {
		return nil
	}

	rec, err := s.devices.Recorder.StartRecording(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrPermissionDenied) {
			s.log.Info().Str("conversation_id", id).Msg("microphone permission denied")
		} else {
			s.log.Error().Err(err).Str("conversation_id", id).Msg("start recording failed")
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c.closed || c.recording != nil {
		_, _ = rec.Stop(ctx)
		return nil
	}
	c.recording = rec
	return nil
}

// StopRecording finishes the active capture and appends it as a voice
// message. Without an active recording it returns a nil message.
func (s *ChatService) StopRecording(ctx context.Context, id string) (*domain.ChatMessage, error) {
	c, err := s.conversation(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	rec := c.recording
	c.recording = nil
	s.mu.Unlock()
	if rec == nil {
		return nil, nil
	}

	uri, err := rec.Stop(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("conversation_id", id).Msg("stop recording failed")
		return nil, err
	}
	return s.append(id, domain.ChatMessage{Sender: domain.SenderUser, Type: domain.MessageVoice, URI: uri})
}

func (s *ChatService) Messages(id string) ([]domain.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.convs[id]
	if !ok {
		return nil, domain.ErrConversationNotFound
	}
	out := make([]domain.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out, nil
}

// Subscribe streams messages appended after the call. A subscriber that
// falls behind drops messages rather than stalling the conversation.
func (s *ChatService) Subscribe(id string) (<-chan domain.ChatMessage, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.convs[id]
	if !ok {
		return nil, nil, domain.ErrConversationNotFound
	}
	sid := c.nextSub
	c.nextSub++
	ch := make(chan domain.ChatMessage, subscriberBuffer)
	c.subs[sid] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if sub, ok := c.subs[sid]; ok {
				delete(c.subs, sid)
				close(sub)
			}
		})
	}
	return ch, cancel, nil
}

func (s *ChatService) conversation(id string) (*conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.convs[id]
	if !ok {
		return nil, domain.ErrConversationNotFound
	}
	return c, nil
}

func (s *ChatService) append(id string, msg domain.ChatMessage) (*domain.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.convs[id]
	if !ok {
		return nil, domain.ErrConversationNotFound
	}
	out := s.appendLocked(c, msg)
	return &out, nil
}

// appendLocked must be called with mu held.
func (s *ChatService) appendLocked(c *conversation, msg domain.ChatMessage) domain.ChatMessage {
	msg.ID = s.newID()
	msg.SentAt = s.clock.Now()
	c.messages = append(c.messages, msg)
	for _, ch := range c.subs {
		select {
		case ch <- msg:
		default:
			s.log.Warn().Str("conversation_id", c.id).Msg("chat subscriber lagging, message dropped")
		}
	}
	return msg
}
