// Package chat answers website visitor questions through a chain of LLM
// providers, ending in a local keyword-routed answer table that never fails.
package chat

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"clinic-content-api/internal/domain"
)

const (
	// SourceFallback marks answers taken from the local rule table.
	SourceFallback = "fallback"
	// HistoryLimit is how many prior turns are forwarded to a provider.
	HistoryLimit = 10

	RoleUser      = "user"
	RoleAssistant = "assistant"
)

const systemPrompt = `You are the virtual assistant of a surgical clinic website. Answer general questions about the clinic's surgical services (hernia, gallbladder, piles, laparoscopic and robotic surgery), recovery and booking consultations.
Keep answers short, warm and factual. Never diagnose, prescribe or give personalised medical advice; suggest booking a consultation instead. In an emergency tell the visitor to contact emergency services immediately.`

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider produces a completion for a conversation.
type Provider interface {
	Name() string
	Complete(ctx context.Context, system string, history []Message, message string) (string, error)
}

// Reply is the answer returned to the visitor.
type Reply struct {
	Response string `json:"response"`
	Source   string `json:"source"`
	Fallback bool   `json:"fallback"`
}

// Service tries each provider in order and falls back to the rule table.
type Service struct {
	providers []Provider
	rules     []Rule
	timeout   time.Duration
	logger    *zap.Logger
}

// New creates a Service. Each provider attempt is bounded by timeout and
// never retried.
func New(providers []Provider, timeout time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{providers: providers, rules: DefaultRules, timeout: timeout, logger: logger}
}

// Reply answers message. It only fails when message is blank; provider
// errors are logged and masked.
func (s *Service) Reply(ctx context.Context, message string, history []Message) (*Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, domain.MissingFields("message")
	}
	history = normalizeHistory(history)

	for _, p := range s.providers {
		text, err := s.attempt(ctx, p, history, message)
		if err != nil {
			s.logger.Warn("chat provider failed", zap.String("provider", p.Name()), zap.Error(err))
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			return &Reply{Response: text, Source: p.Name()}, nil
		}
		s.logger.Warn("chat provider returned empty answer", zap.String("provider", p.Name()))
	}
	return &Reply{Response: Match(s.rules, message), Source: SourceFallback, Fallback: true}, nil
}

func (s *Service) attempt(ctx context.Context, p Provider, history []Message, message string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return p.Complete(ctx, systemPrompt, history, message)
}

// normalizeHistory keeps the last HistoryLimit non-empty turns and maps
// client role names onto user and assistant.
func normalizeHistory(in []Message) []Message {
	out := make([]Message, 0, len(in))
	for _, m := range in {
		content := strings.TrimSpace(m.Content)
		if content == "" {
			continue
		}
		role := RoleUser
		switch strings.ToLower(m.Role) {
		case "assistant", "bot", "model":
			role = RoleAssistant
		}
		out = append(out, Message{Role: role, Content: content})
	}
	if len(out) > HistoryLimit {
		out = out[len(out)-HistoryLimit:]
	}
	return out
}
