package controllers

import (
	"context"

	"relay/relay/auth"
	"relay/relay/services/agent"
	"relay/relay/types"
)

type ChatController struct {
	gateway *agent.Gateway
}

func NewChatController(gateway *agent.Gateway) *ChatController {
	return &ChatController{gateway: gateway}
}

// Chat forwards one message to the agent. An omitted session id falls back
// to a per-identity default so successive turns share one conversation.
func (c *ChatController) Chat(ctx context.Context, ident *auth.Identity, req types.ChatRequest) (*types.ChatResponse, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = agent.DefaultSessionID(ident.Sub)
	}

	reply, err := c.gateway.Send(ctx, sessionID, req.Message)
	if err != nil {
		return nil, err
	}

	user := ident.Email
	if user == "" {
		user = ident.Username
	}
	return &types.ChatResponse{
		Response:  reply,
		SessionID: sessionID,
		User:      user,
	}, nil
}
