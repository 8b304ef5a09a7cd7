package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/Eursukkul/nexo-service/internal/dto"
	"github.com/Eursukkul/nexo-service/internal/models"
	"github.com/Eursukkul/nexo-service/internal/repository"
	"github.com/Eursukkul/nexo-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_Handler(t *testing.T) {
	svc := &mockAdminService{
		dashboardFn: func(ctx context.Context, actor *models.User) (*service.Dashboard, error) {
			return &service.Dashboard{
				Statistics:  repository.DashboardStats{Users: 4, Cars: 2},
				GeneratedAt: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
				Cached:      true,
			}, nil
		},
	}
	e := newEcho()
	c, rec := newContext(e, http.MethodGet, "/admin/dashboard", "", admin)

	require.NoError(t, NewAdminHandler(svc).Dashboard(c))

	var resp dto.DashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(4), resp.Statistics.Users)
	assert.True(t, resp.Cached)
}

func TestDashboard_Handler_Forbidden(t *testing.T) {
	svc := &mockAdminService{
		dashboardFn: func(ctx context.Context, actor *models.User) (*service.Dashboard, error) {
			return nil, service.ErrForbidden
		},
	}
	e := newEcho()
	c, _ := newContext(e, http.MethodGet, "/admin/dashboard", "", alice)

	assert.Equal(t, http.StatusForbidden, httpCode(NewAdminHandler(svc).Dashboard(c)))
}

func TestSendMessage_Handler(t *testing.T) {
	svc := &mockChatService{
		sendFn: func(ctx context.Context, message, model string) (*service.ChatReply, error) {
			return &service.ChatReply{Response: "echo: " + message, Model: "gpt-3.5-turbo"}, nil
		},
	}
	e := newEcho()
	c, rec := newContext(e, http.MethodPost, "/chat/message", `{"message":"hi"}`, alice)

	require.NoError(t, NewChatHandler(svc).SendMessage(c))

	assert.JSONEq(t, `{"response":"echo: hi","model":"gpt-3.5-turbo"}`, rec.Body.String())
}

func TestSendMessage_Handler_UpstreamFailure(t *testing.T) {
	svc := &mockChatService{
		sendFn: func(ctx context.Context, message, model string) (*service.ChatReply, error) {
			return nil, errors.Join(service.ErrChatUpstream, errors.New("status 500"))
		},
	}
	e := newEcho()
	c, _ := newContext(e, http.MethodPost, "/chat/message", `{"message":"hi"}`, alice)

	assert.Equal(t, http.StatusBadGateway, httpCode(NewChatHandler(svc).SendMessage(c)))
}

func TestSendMessage_Handler_EmptyMessage(t *testing.T) {
	e := newEcho()
	c, _ := newContext(e, http.MethodPost, "/chat/message", `{"message":""}`, alice)

	assert.Error(t, NewChatHandler(&mockChatService{}).SendMessage(c))
}
