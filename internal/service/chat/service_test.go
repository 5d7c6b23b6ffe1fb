package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"clinic-content-api/internal/domain"
)

type stubProvider struct {
	name    string
	answer  string
	err     error
	block   bool
	calls   int
	history []Message
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Complete(ctx context.Context, _ string, history []Message, _ string) (string, error) {
	p.calls++
	p.history = history
	if p.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return p.answer, p.err
}

func TestReply_FirstProviderWins(t *testing.T) {
	first := &stubProvider{name: "openai", answer: "from openai"}
	second := &stubProvider{name: "gemini", answer: "from gemini"}
	svc := New([]Provider{first, second}, time.Second, nil)

	r, err := svc.Reply(context.Background(), "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, &Reply{Response: "from openai", Source: "openai"}, r)
	assert.Equal(t, 0, second.calls)
}

func TestReply_FallsThroughChain(t *testing.T) {
	first := &stubProvider{name: "openai", err: errors.New("quota exceeded")}
	second := &stubProvider{name: "gemini", answer: "  "}
	svc := New([]Provider{first, second}, time.Second, nil)

	r, err := svc.Reply(context.Background(), "How much does hernia surgery cost?", nil)
	require.NoError(t, err)
	assert.True(t, r.Fallback)
	assert.Equal(t, SourceFallback, r.Source)
	assert.Equal(t, Match(DefaultRules, "cost"), r.Response)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestReply_TimeoutMasksProvider(t *testing.T) {
	defer goleak.VerifyNone(t)

	slow := &stubProvider{name: "openai", block: true}
	svc := New([]Provider{slow}, 20*time.Millisecond, nil)

	r, err := svc.Reply(context.Background(), "hi", nil)
	require.NoError(t, err)
	assert.True(t, r.Fallback)
}

func TestReply_EmptyMessage(t *testing.T) {
	svc := New(nil, time.Second, nil)
	_, err := svc.Reply(context.Background(), "   ", nil)
	assert.True(t, domain.IsValidation(err))
}

func TestReply_HistoryTrimmed(t *testing.T) {
	p := &stubProvider{name: "openai", answer: "ok"}
	svc := New([]Provider{p}, time.Second, nil)

	var history []Message
	for i := 0; i < 15; i++ {
		history = append(history, Message{Role: "bot", Content: fmt.Sprintf("turn %d", i)})
	}
	history = append(history, Message{Role: "user", Content: "  "})

	_, err := svc.Reply(context.Background(), "next", history)
	require.NoError(t, err)
	require.Len(t, p.history, HistoryLimit)
	assert.Equal(t, "turn 5", p.history[0].Content)
	assert.Equal(t, RoleAssistant, p.history[0].Role)
}

func TestMatch_Precedence(t *testing.T) {
	byName := map[string]string{}
	for _, r := range DefaultRules {
		byName[r.Name] = r.Response
	}

	cases := []struct {
		msg  string
		rule string
	}{
		{"I need an emergency appointment", "emergency"},
		{"Can I book a consultation?", "appointment"},
		{"Is this covered by insurance?", "cost"},
		{"Tell me about inguinal hernias", "hernia"},
		{"I have gallstones", "gallbladder"},
		{"What is laparoscopic surgery?", "minimally-invasive"},
		{"How long is recovery after post-op?", "recovery"},
		{"Hi there", "greeting"},
		{"Thanks a lot", "thanks"},
	}
	for _, tc := range cases {
		assert.Equal(t, byName[tc.rule], Match(DefaultRules, tc.msg), tc.msg)
	}
	assert.Equal(t, DefaultResponse, Match(DefaultRules, "this is about my hip"))
}
