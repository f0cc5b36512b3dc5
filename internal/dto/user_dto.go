package dto

import "github.com/google/uuid"

type UpdateProfileRequest struct {
	Name string `json:"name"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// AssignGroupRequest moves a user into a group; a nil GrupoID removes them.
type AssignGroupRequest struct {
	GrupoID *uuid.UUID `json:"grupo_id"`
}

type SeedRequest struct {
	Admins    *int `json:"admins,omitempty"`
	Pastors   *int `json:"pastors,omitempty"`
	Leaders   *int `json:"leaders,omitempty"`
	Members   *int `json:"members,omitempty"`
	Locations *int `json:"locations,omitempty"`
}

