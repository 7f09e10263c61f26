package dto

import (
	"time"

	"github.com/spec-kit/callback-service/internal/domain"
)

// SubmitCallbackRequest payload. Shared by submit and edit.
type SubmitCallbackRequest struct {
	FullName          string              `json:"full_name"`
	Address           string              `json:"address"`
	MCN               string              `json:"mcn"`
	DOB               string              `json:"dob"`
	PhoneNumber       string              `json:"phone_number"`
	Notes             string              `json:"notes"`
	MedicalConditions string              `json:"medical_conditions"`
	CallbackDate      string              `json:"callback_date"`
	CallbackTiming    string              `json:"callback_timing"`
	CallbackType      domain.CallbackType `json:"callback_type"`
}

// CallbackSummaryResponse is a dashboard card row.
type CallbackSummaryResponse struct {
	ID                       string              `json:"id"`
	AgentName                string              `json:"agent_name"`
	FullName                 string              `json:"full_name"`
	Address                  string              `json:"address"`
	MCN                      string              `json:"mcn"`
	DOB                      string              `json:"dob"`
	PhoneNumber              string              `json:"phone_number"`
	NotesPreview             string              `json:"notes_preview"`
	MedicalConditionsPreview string              `json:"medical_conditions_preview"`
	CallbackDate             string              `json:"callback_date"`
	CallbackTiming           string              `json:"callback_timing"`
	CallbackType             domain.CallbackType `json:"callback_type"`
	CreatedAt                time.Time           `json:"created_at"`
}

// CallbackResponse is the full record.
type CallbackResponse struct {
	ID                string              `json:"id"`
	AgentName         string              `json:"agent_name"`
	FullName          string              `json:"full_name"`
	Address           string              `json:"address"`
	MCN               string              `json:"mcn"`
	DOB               string              `json:"dob"`
	PhoneNumber       string              `json:"phone_number"`
	Notes             string              `json:"notes"`
	MedicalConditions string              `json:"medical_conditions"`
	CallbackDate      string              `json:"callback_date"`
	CallbackTiming    string              `json:"callback_timing"`
	CallbackType      domain.CallbackType `json:"callback_type"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// FromCallback maps a domain record to the full response.
func FromCallback(callback domain.Callback) CallbackResponse {
	return CallbackResponse{
		ID:                callback.ID,
		AgentName:         callback.AgentName,
		FullName:          callback.FullName,
		Address:           callback.Address,
		MCN:               callback.MCN,
		DOB:               callback.DOB,
		PhoneNumber:       callback.PhoneNumber,
		Notes:             callback.Notes,
		MedicalConditions: callback.MedicalConditions,
		CallbackDate:      callback.CallbackDate,
		CallbackTiming:    callback.CallbackTiming,
		CallbackType:      callback.CallbackType,
		CreatedAt:         callback.CreatedAt,
		UpdatedAt:         callback.UpdatedAt,
	}
}

// SubmitCheckRequest payload.
type SubmitCheckRequest struct {
	Plan domain.CheckPlan `json:"plan"`
	Date string           `json:"date"`
}

// CheckResponse is the full check record.
type CheckResponse struct {
	ID        string           `json:"id"`
	AgentName string           `json:"agent_name"`
	Plan      domain.CheckPlan `json:"plan"`
	Date      string           `json:"date"`
	CreatedAt time.Time        `json:"created_at"`
}

// FromCheck maps a domain check to its response.
func FromCheck(check domain.Check) CheckResponse {
	return CheckResponse{
		ID:        check.ID,
		AgentName: check.AgentName,
		Plan:      check.Plan,
		Date:      check.Date,
		CreatedAt: check.CreatedAt,
	}
}
