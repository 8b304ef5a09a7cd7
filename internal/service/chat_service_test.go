package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Eursukkul/nexo-service/pkg/aichat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockChatClient struct {
	completeFn func(ctx context.Context, model string, messages []aichat.Message) (string, string, error)
}

func (m *mockChatClient) Complete(ctx context.Context, model string, messages []aichat.Message) (string, string, error) {
	return m.completeFn(ctx, model, messages)
}

func TestChatSend_Success(t *testing.T) {
	var sent []aichat.Message
	client := &mockChatClient{
		completeFn: func(ctx context.Context, model string, messages []aichat.Message) (string, string, error) {
			sent = messages
			return "Namaste!", "gpt-4o-mini", nil
		},
	}

	reply, err := NewChatService(client, testLog).Send(context.Background(), "hello", "gpt-4o-mini")

	require.NoError(t, err)
	assert.Equal(t, "Namaste!", reply.Response)
	assert.Equal(t, "gpt-4o-mini", reply.Model)
	require.Len(t, sent, 2)
	assert.Equal(t, "system", sent[0].Role)
	assert.Equal(t, aichat.Message{Role: "user", Content: "hello"}, sent[1])
}

func TestChatSend_NotConfigured(t *testing.T) {
	client := &mockChatClient{
		completeFn: func(ctx context.Context, model string, messages []aichat.Message) (string, string, error) {
			return "", "gpt-3.5-turbo", aichat.ErrNotConfigured
		},
	}

	reply, err := NewChatService(client, testLog).Send(context.Background(), "hello", "")

	require.NoError(t, err)
	assert.Equal(t, "Chat service is not configured. Please set OPENAI_API_KEY.", reply.Response)
}

func TestChatSend_UpstreamError(t *testing.T) {
	client := &mockChatClient{
		completeFn: func(ctx context.Context, model string, messages []aichat.Message) (string, string, error) {
			return "", "gpt-3.5-turbo", errors.New("429 too many requests")
		},
	}

	reply, err := NewChatService(client, testLog).Send(context.Background(), "hello", "")

	assert.ErrorIs(t, err, ErrChatUpstream)
	assert.Nil(t, reply)
}
