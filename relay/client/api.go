package client

import (
	"context"
	"net/http"

	"relay/relay/types"
	httputils "relay/relay/utils/http"
)

// EmptyReply stands in for a blank completion, mirroring the server's own
// fallback wording.
const EmptyReply = "No response from assistant."

// API calls the backend's chat endpoint with a bearer credential.
type API struct {
	baseURL string
	token   func() string
	client  *http.Client
}

// NewAPI builds a client for the given server base URL. token is consulted
// per request so a rotated credential is picked up without a new client.
func NewAPI(baseURL string, token func() string) *API {
	return &API{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{},
	}
}

// Send implements Sender against POST /api/chat.
func (a *API) Send(ctx context.Context, sessionID, message string) (string, error) {
	req := types.ChatRequest{Message: message, SessionID: sessionID}
	var resp types.ChatResponse
	bearer := ""
	if a.token != nil {
		bearer = a.token()
	}
	if err := httputils.PostJSON(ctx, a.client, a.baseURL+"/api/chat", bearer, req, &resp); err != nil {
		return "", err
	}
	if resp.Response == "" {
		return EmptyReply, nil
	}
	return resp.Response, nil
}
