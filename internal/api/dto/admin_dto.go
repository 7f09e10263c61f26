package dto

import "time"

// AddAgentRequest payload.
type AddAgentRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// AgentResponse is a roster row; the code hash never leaves the service.
type AgentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
