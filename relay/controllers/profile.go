package controllers

import (
	"time"

	"relay/relay/auth"
	"relay/relay/middlewares"
	"relay/relay/types"
)

type ProfileController struct{}

func NewProfileController() *ProfileController {
	return &ProfileController{}
}

func (c *ProfileController) Profile(ident *auth.Identity) types.ProfileResponse {
	return types.ProfileResponse{
		Email:     ident.Email,
		Sub:       ident.Sub,
		Groups:    ident.Groups,
		Username:  ident.Username,
		RateLimit: middlewares.RateLimitFor(ident),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
