package types

// ChatRequest is the body of POST /api/chat. SessionID is optional; when
// omitted the server derives one from the caller's identity.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
}

type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"sessionId"`
	User      string `json:"user"`
}

type CustomerSearchRequest struct {
	Query string `json:"query"`
}

type Customer struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

type CustomerSearchResponse struct {
	Query   string     `json:"query"`
	Results []Customer `json:"results"`
}
