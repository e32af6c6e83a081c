package dto

import "github.com/hugh/cardlink/internal/auth"

type SessionRequest struct {
	Role   string `json:"role"`
	CardID int64  `json:"card_id,string,omitempty"`
}

func (r SessionRequest) Validate() map[string]string {
	errors := make(map[string]string)

	role := auth.Role(r.Role)
	if r.Role == "" {
		errors["role"] = "is required"
	} else if !role.Valid() {
		errors["role"] = "must be one of: company, designer, hr, employee"
	}

	switch {
	case role == auth.RoleEmployee && r.CardID == 0:
		errors["card_id"] = "is required for employee sessions"
	case role != auth.RoleEmployee && r.CardID != 0:
		errors["card_id"] = "is only allowed for employee sessions"
	}

	return errors
}

type SessionResponse struct {
	Token  string `json:"token"`
	Role   string `json:"role"`
	CardID string `json:"card_id,omitempty"`
}
