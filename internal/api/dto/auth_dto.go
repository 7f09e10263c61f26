package dto

import "time"

// AgentLoginRequest payload.
type AgentLoginRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// AdminUnlockRequest payload.
type AdminUnlockRequest struct {
	Password string `json:"password"`
}

// AuthResponse carries the issued token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
