package handler

import "github.com/roamstead/camper-rentals/internal/core/domain"

type profileSetupRequest struct {
	Name string `json:"name" validate:"required"`
	Role string `json:"role" validate:"required,oneof=owner customer"`
}

type roleHintRequest struct {
	Role string `json:"role" validate:"required,oneof=owner customer"`
}

type pendingIdentityResponse struct {
	SubjectID     string `json:"subject_id"`
	Email         string `json:"email"`
	DisplayName   string `json:"display_name"`
	AvatarURL     string `json:"avatar,omitempty"`
	PreferredRole string `json:"preferred_role,omitempty"`
}

type resolutionStateResponse struct {
	Phase   string                   `json:"phase"`
	Pending *pendingIdentityResponse `json:"pending,omitempty"`
	Profile *domain.Profile          `json:"profile,omitempty"`
}

// toStateResponse maps the published resolution state to the JSON contract.
func toStateResponse(state domain.ResolutionState) resolutionStateResponse {
	resp := resolutionStateResponse{Phase: string(state.Phase), Profile: state.Profile}
	if state.Pending != nil {
		resp.Pending = &pendingIdentityResponse{
			SubjectID:     state.Pending.SubjectID,
			Email:         state.Pending.Email,
			DisplayName:   state.Pending.DisplayName,
			AvatarURL:     state.Pending.AvatarURL,
			PreferredRole: state.Pending.PreferredRole,
		}
	}
	return resp
}
