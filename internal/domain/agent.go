package domain

import "time"

// Agent models a sales agent on the roster. The name doubles as the login
// key; the access code is stored only as a bcrypt hash.
type Agent struct {
	ID        string
	Name      string
	CodeHash  string
	CreatedAt time.Time
}
