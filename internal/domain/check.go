package domain

import "time"

// CheckPlan enumerates coverage plans a check can be recorded against.
type CheckPlan string

const (
	CheckPlanHMO   CheckPlan = "HMO"
	CheckPlanPPO   CheckPlan = "PPO"
	CheckPlanOPlan CheckPlan = "OPlan"
)

// ValidCheckPlan reports whether p is a known plan.
func ValidCheckPlan(p CheckPlan) bool {
	switch p {
	case CheckPlanHMO, CheckPlanPPO, CheckPlanOPlan:
		return true
	}
	return false
}

// Check records a plan enrollment check performed by an agent.
type Check struct {
	ID        string
	AgentName string
	Plan      CheckPlan
	Date      string
	CreatedAt time.Time
}
