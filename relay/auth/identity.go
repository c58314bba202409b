package auth

// Identity is the set of claims extracted from a verified credential.
// It lives for one request.
type Identity struct {
	Email    string   `json:"email"`
	Sub      string   `json:"sub"`
	Groups   []string `json:"groups"`
	Username string   `json:"username"`
}
