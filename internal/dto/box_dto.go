package dto

type CreateBoxRequest struct {
	Name     string `json:"name"`
	OwnerUID string `json:"owner_uid"`
	Address  string `json:"address,omitempty"`
}

type UpdateBoxRequest struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
}
