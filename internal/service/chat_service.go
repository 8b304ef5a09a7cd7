package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Eursukkul/nexo-service/pkg/aichat"
	"github.com/Eursukkul/nexo-service/pkg/logger"
)

const (
	chatSystemPrompt = "You are the NEXO assistant. You help with travel bookings, the Nexo Paisa wallet, " +
		"agriculture, education and general health information. You do not give medical advice."
	chatNotConfiguredReply = "Chat service is not configured. Please set OPENAI_API_KEY."
)

type ChatClient interface {
	Complete(ctx context.Context, model string, messages []aichat.Message) (string, string, error)
}

type ChatReply struct {
	Response string
	Model    string
}

type ChatService interface {
	Send(ctx context.Context, message, model string) (*ChatReply, error)
}

type chatService struct {
	client ChatClient
	log    *logger.Logger
}

func NewChatService(client ChatClient, log *logger.Logger) ChatService {
	return &chatService{client: client, log: log}
}

// Send asks the provider once. An unconfigured provider is not an error: the
// reply explains how to enable it.
func (s *chatService) Send(ctx context.Context, message, model string) (*ChatReply, error) {
	reply, usedModel, err := s.client.Complete(ctx, model, []aichat.Message{
		{Role: "system", Content: chatSystemPrompt},
		{Role: "user", Content: message},
	})
	if err != nil {
		if errors.Is(err, aichat.ErrNotConfigured) {
			return &ChatReply{Response: chatNotConfiguredReply, Model: usedModel}, nil
		}
		s.log.Error("chat completion failed", "model", usedModel, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrChatUpstream, err)
	}
	return &ChatReply{Response: reply, Model: usedModel}, nil
}
