package dto

type UpdateMembershipRequest struct {
	Role string `json:"role"`
}

type UpdateStatsRequest struct {
	DisplayName *string  `json:"display_name,omitempty"`
	BodyWeight  *float64 `json:"body_weight,omitempty"`
	BackSquat   *float64 `json:"back_squat,omitempty"`
	Deadlift    *float64 `json:"deadlift,omitempty"`
	Clean       *float64 `json:"clean,omitempty"`
	Snatch      *float64 `json:"snatch,omitempty"`
}
