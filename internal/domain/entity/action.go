package entity

import "fmt"

// Action acción que autoriza un enlace firmado enviado por email.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// ParseAction valida la acción recibida en un enlace.
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionApprove, ActionReject:
		return a, nil
	default:
		return "", fmt.Errorf("acción desconocida %q", s)
	}
}

// TargetStatus estado terminal al que lleva la acción.
func (a Action) TargetStatus() CompanyStatus {
	if a == ActionApprove {
		return CompanyStatusApproved
	}
	return CompanyStatusRejected
}
