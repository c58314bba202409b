package types

// RateLimit is the request budget tied to a caller's group memberships.
type RateLimit struct {
	Requests int    `json:"requests"`
	Window   string `json:"window"`
}

type ProfileResponse struct {
	Email     string    `json:"email"`
	Sub       string    `json:"sub"`
	Groups    []string  `json:"groups"`
	Username  string    `json:"username"`
	RateLimit RateLimit `json:"rateLimit"`
	Timestamp string    `json:"timestamp"`
}
