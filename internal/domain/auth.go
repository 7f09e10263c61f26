package domain

import "time"

// SubjectType differentiates agent vs admin tokens.
type SubjectType string

const (
	SubjectTypeAgent SubjectType = "AGENT"
	SubjectTypeAdmin SubjectType = "ADMIN"
)

// Session represents a live login tracked server-side.
type Session struct {
	ID        string
	Subject   SubjectType
	AgentName string
	ExpiresAt time.Time
	IssuedAt  time.Time
}
