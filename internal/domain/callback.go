package domain

import "time"

// CallbackType classifies prospect interest (lead temperature).
type CallbackType string

const (
	CallbackTypeCold CallbackType = "cold"
	CallbackTypeWarm CallbackType = "warm"
	CallbackTypeHot  CallbackType = "hot"
)

// ValidCallbackType reports whether t is one of the known temperatures.
func ValidCallbackType(t CallbackType) bool {
	switch t {
	case CallbackTypeCold, CallbackTypeWarm, CallbackTypeHot:
		return true
	}
	return false
}

// DateLayout is the text form all calendar dates are persisted in.
const DateLayout = "2006-01-02"

// Callback is a scheduled follow-up contact with a prospective client.
// DOB and CallbackDate are YYYY-MM-DD strings, matching the tabular store
// convention the records migrated from.
type Callback struct {
	ID                string
	AgentName         string
	FullName          string
	Address           string
	MCN               string
	DOB               string
	PhoneNumber       string
	Notes             string
	MedicalConditions string
	CallbackDate      string
	CallbackTiming    string
	CallbackType      CallbackType
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
