package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"cempagamez/internal/domain"
	applog "cempagamez/internal/log"
	"cempagamez/internal/metrics"
	"cempagamez/internal/validate"
)

const (
	Apology           = "I'm having a bit of trouble connecting to the mainframe right now. Please try again later."
	EmptyReply        = "I'm speechless!"
	FallbackRecommend = "Check out our featured section for great deals!"
)

// ErrBusy means the session already has an assistant request in flight.
var ErrBusy = errors.New("assistant request already in progress")

// ChatRequest is a visitor's message as submitted by the chat form.
type ChatRequest struct {
	Message string `validate:"required,max=1000"`
}

// Service turns visitor messages into assistant replies. It never surfaces
// upstream failures: the visitor always gets a displayable message.
type Service struct {
	gen     Generator
	timeout time.Duration

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewService(gen Generator, timeout time.Duration) *Service {
	return &Service{gen: gen, timeout: timeout, inflight: make(map[string]struct{})}
}

// Begin claims the session's single in-flight slot. The returned func releases it.
func (s *Service) Begin(sid string) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[sid]; busy {
		metrics.AssistantRequests.WithLabelValues("busy").Inc()
		return nil, ErrBusy
	}
	s.inflight[sid] = struct{}{}
	return func() {
		s.mu.Lock()
		delete(s.inflight, sid)
		s.mu.Unlock()
	}, nil
}

// Chat sends message with the prior conversation and returns the reply text.
// Errors are only ErrBusy and validation errors; everything else becomes Apology.
func (s *Service) Chat(ctx context.Context, sid string, prior []domain.ChatMessage, message string, games domain.Catalog) (string, error) {
	if err := validate.Struct(ChatRequest{Message: strings.TrimSpace(message)}); err != nil {
		return "", err
	}
	release, err := s.Begin(sid)
	if err != nil {
		return "", err
	}
	defer release()
	return s.Reply(ctx, prior, message, games), nil
}

// Reply runs one exchange without the in-flight guard; callers hold the slot.
func (s *Service) Reply(ctx context.Context, prior []domain.ChatMessage, message string, games domain.Catalog) string {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	contents := append(history(prior), textContent("user", message))
	text, err := s.gen.Generate(ctx, SystemInstruction(games), contents)
	if err != nil {
		metrics.AssistantRequests.WithLabelValues("fallback").Inc()
		applog.Warn(nil, "assistant.error", err, map[string]any{"turns": len(contents)})
		return Apology
	}
	metrics.AssistantRequests.WithLabelValues("ok").Inc()
	if strings.TrimSpace(text) == "" {
		return EmptyReply
	}
	return text
}

// Recommend suggests one catalog game the visitor does not own yet.
func (s *Service) Recommend(ctx context.Context, owned []string, games domain.Catalog) string {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	prompt := RecommendationPrompt(owned, games)
	text, err := s.gen.Generate(ctx, SystemInstruction(games), []Content{textContent("user", prompt)})
	if err != nil || strings.TrimSpace(text) == "" {
		metrics.AssistantRequests.WithLabelValues("fallback").Inc()
		if err != nil {
			applog.Warn(nil, "assistant.recommend.error", err, nil)
		}
		return FallbackRecommend
	}
	metrics.AssistantRequests.WithLabelValues("ok").Inc()
	return text
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
